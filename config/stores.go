package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/minaorangina/makao/ranking"
)

// OpenRankingStore connects the configured ranking backend. The returned
// func releases its connections.
func (c Config) OpenRankingStore(ctx context.Context) (ranking.Store, func(), error) {
	switch c.RankingBackend {
	case BackendFile:
		return ranking.NewFileStore(c.RankingFile), func() {}, nil

	case BackendMemory:
		return ranking.NewMemoryStore(nil), func() {}, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return ranking.NewRedisStore(client, c.RedisKey), func() { client.Close() }, nil

	case BackendPostgres:
		store, err := ranking.NewPostgresStore(ctx, c.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.RankingBackend)
}
