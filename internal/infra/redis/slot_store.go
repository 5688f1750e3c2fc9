package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"quizzle/internal/domain"
)

// SlotStore keeps save slots in Redis, one namespace per device.
// Each Set is a single SET, so a slot is always replaced whole.
type SlotStore struct {
	client    *redis.Client
	ttl       time.Duration
	namespace string
}

func NewSlotStore(client *redis.Client, ttl time.Duration) *SlotStore {
	return &SlotStore{
		client:    client,
		ttl:       ttl,
		namespace: "quizzle:",
	}
}

// Device returns a store whose keys live under quizzle:device:{id}:.
func (s *SlotStore) Device(id string) *SlotStore {
	return &SlotStore{
		client:    s.client,
		ttl:       s.ttl,
		namespace: "quizzle:device:" + id + ":",
	}
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrSlotNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *SlotStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *SlotStore) key(key string) string {
	return s.namespace + key
}
