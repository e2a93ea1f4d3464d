package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/observe"
)

// RedisStore keeps the whole AppState as one JSON value under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
	l      *observe.Logger
}

func NewRedisStore(addr, password string, db int, key string, l *observe.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		key: key,
		l:   l,
	}
}

func (s *RedisStore) Load(ctx context.Context) (*models.AppState, error) {
	blob, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get state")
	}

	var state models.AppState
	if err := json.Unmarshal(blob, &state); err != nil {
		// Corrupt blob: reset to defaults rather than failing startup.
		s.l.Warning("discarding corrupt persisted state", map[string]any{
			"key": s.key,
			"err": err.Error(),
		})
		return nil, nil
	}
	if state.Cities == nil {
		state.Cities = []models.City{}
	}

	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state *models.AppState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	if err := s.client.Set(ctx, s.key, blob, 0).Err(); err != nil {
		return errors.Wrap(err, "redis set state")
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
