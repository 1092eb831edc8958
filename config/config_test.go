package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		cfg, err := Load(noEnvFile(t))
		require.NoError(t, err)

		assert.Equal(t, ":8000", cfg.Addr)
		assert.Equal(t, logrus.InfoLevel, cfg.Level())
		assert.Equal(t, BackendFile, cfg.RankingBackend)
		assert.Equal(t, "makao.log", cfg.RankingFile)
		assert.Equal(t, "makao:ranking", cfg.RedisKey)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	})

	t.Run("reads the environment", func(t *testing.T) {
		t.Setenv("MAKAO_ADDR", ":9000")
		t.Setenv("MAKAO_LOG_LEVEL", "debug")
		t.Setenv("MAKAO_RANKING_BACKEND", "redis")
		t.Setenv("MAKAO_REDIS_ADDR", "localhost:6379")
		t.Setenv("MAKAO_ALLOWED_ORIGINS", "https://a.example;https://b.example")

		cfg, err := Load(noEnvFile(t))
		require.NoError(t, err)

		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, logrus.DebugLevel, cfg.Level())
		assert.Equal(t, BackendRedis, cfg.RankingBackend)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	})

	t.Run("reads an env file without overriding the environment", func(t *testing.T) {
		t.Setenv("MAKAO_ADDR", ":9100")
		t.Cleanup(func() {
			os.Unsetenv("MAKAO_RANKING_FILE")
		})

		path := filepath.Join(t.TempDir(), ".env")
		contents := "MAKAO_ADDR=:7000\nMAKAO_RANKING_FILE=/tmp/scores.log\n"
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9100", cfg.Addr)
		assert.Equal(t, "/tmp/scores.log", cfg.RankingFile)
	})

	t.Run("rejects bad settings", func(t *testing.T) {
		tt := []struct {
			name string
			env  map[string]string
			want error
		}{
			{"unknown backend", map[string]string{"MAKAO_RANKING_BACKEND": "floppy"}, ErrUnknownBackend},
			{"redis without address", map[string]string{"MAKAO_RANKING_BACKEND": "redis"}, ErrMissingSetting},
			{"postgres without dsn", map[string]string{"MAKAO_RANKING_BACKEND": "postgres"}, ErrMissingSetting},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				for k, v := range tc.env {
					t.Setenv(k, v)
				}
				_, err := Load(noEnvFile(t))
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("rejects an unknown log level", func(t *testing.T) {
		t.Setenv("MAKAO_LOG_LEVEL", "loud")

		_, err := Load(noEnvFile(t))
		assert.Error(t, err)
	})
}

func TestOpenRankingStore(t *testing.T) {
	t.Run("opens the ranking file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "makao.log")
		cfg := Config{RankingBackend: BackendFile, RankingFile: path}

		store, release, err := cfg.OpenRankingStore(t.Context())
		require.NoError(t, err)
		defer release()

		require.NoError(t, store.Save(t.Context(), map[string]int{"ada": 3}))
		scores, err := store.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"ada": 3}, scores)
	})

	t.Run("keeps scores in memory", func(t *testing.T) {
		cfg := Config{RankingBackend: BackendMemory}

		store, release, err := cfg.OpenRankingStore(t.Context())
		require.NoError(t, err)
		defer release()

		scores, err := store.Load(t.Context())
		require.NoError(t, err)
		assert.Empty(t, scores)
	})

	t.Run("rejects an unknown backend", func(t *testing.T) {
		cfg := Config{RankingBackend: "floppy"}

		_, _, err := cfg.OpenRankingStore(t.Context())
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
