package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/redis"
)

// RedisStore keeps one durable slot per shopper in Redis.
type RedisStore struct {
	client slotClient
	ttl    time.Duration
}

// NewRedisStore wraps the redis client as a cart slot store. A zero TTL keeps
// blobs until cleared.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Load returns the shopper's blob or ErrSlotEmpty when the key is missing.
func (s *RedisStore) Load(ctx context.Context, shopperID string) ([]byte, error) {
	blob, err := s.client.Get(ctx, s.client.CartSlotKey(shopperID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("load cart slot: %w", err)
	}
	return []byte(blob), nil
}

// Save overwrites the shopper's slot.
func (s *RedisStore) Save(ctx context.Context, shopperID string, blob []byte) error {
	if err := s.client.Set(ctx, s.client.CartSlotKey(shopperID), string(blob), s.ttl); err != nil {
		return fmt.Errorf("save cart slot: %w", err)
	}
	return nil
}

// Clear removes the shopper's slot entirely.
func (s *RedisStore) Clear(ctx context.Context, shopperID string) error {
	if err := s.client.Del(ctx, s.client.CartSlotKey(shopperID)); err != nil {
		return fmt.Errorf("clear cart slot: %w", err)
	}
	return nil
}
