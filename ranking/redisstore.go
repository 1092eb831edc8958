package ranking

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the ranking in a single Redis hash, player -> score.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (map[string]int, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int, len(values))
	for player, raw := range values {
		score, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrMalformedRecord, player, raw)
		}
		scores[player] = score
	}
	return scores, nil
}

// Save swaps the whole hash in one MULTI/EXEC.
func (s *RedisStore) Save(ctx context.Context, scores map[string]int) error {
	fields := make(map[string]interface{}, len(scores))
	for player, score := range scores {
		fields[player] = score
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	if len(fields) > 0 {
		pipe.HSet(ctx, s.key, fields)
	}
	_, err := pipe.Exec(ctx)
	return err
}
