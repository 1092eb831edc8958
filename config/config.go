package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Ranking backends
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var (
	ErrUnknownBackend = errors.New("unknown ranking backend")
	ErrMissingSetting = errors.New("missing setting")
)

// Config is read from the environment, optionally seeded from a .env file
type Config struct {
	Addr     string `env:"MAKAO_ADDR,default=:8000"`
	LogLevel string `env:"MAKAO_LOG_LEVEL,default=info"`

	RankingBackend string `env:"MAKAO_RANKING_BACKEND,default=file"`
	RankingFile    string `env:"MAKAO_RANKING_FILE,default=makao.log"`
	RedisAddr      string `env:"MAKAO_REDIS_ADDR"`
	RedisKey       string `env:"MAKAO_REDIS_KEY,default=makao:ranking"`
	PostgresDSN    string `env:"MAKAO_POSTGRES_DSN"`

	// separated by ";"
	AllowedOrigins []string `env:"MAKAO_ALLOWED_ORIGINS,default=*"`
}

// Load reads the given .env files, if they exist, and then the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading env file: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the chosen ranking backend has what it needs
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.RankingBackend {
	case BackendFile:
		if c.RankingFile == "" {
			return fmt.Errorf("%w: MAKAO_RANKING_FILE", ErrMissingSetting)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: MAKAO_REDIS_ADDR", ErrMissingSetting)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: MAKAO_POSTGRES_DSN", ErrMissingSetting)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.RankingBackend)
	}

	return nil
}

// Level is the parsed log level, info when unset
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
