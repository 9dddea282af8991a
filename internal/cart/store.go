package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// EnvelopeVersion tags persisted cart blobs so the layout can migrate
// without breaking carts already in the store.
const EnvelopeVersion = 1

// ErrSlotEmpty is returned by Load when no blob exists for the shopper.
var ErrSlotEmpty = fmt.Errorf("cart slot empty")

type envelope struct {
	Version int    `json:"version"`
	Items   []Line `json:"items"`
}

// EncodeItems serializes the item list into the versioned envelope.
func EncodeItems(items []Line) ([]byte, error) {
	if items == nil {
		items = []Line{}
	}
	return json.Marshal(envelope{Version: EnvelopeVersion, Items: items})
}

// DecodeItems parses a persisted blob back into an item list. Blobs with an
// unknown version or broken JSON return an error; callers treat that as an
// empty cart.
func DecodeItems(blob []byte) ([]Line, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("decode cart blob: %w", err)
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("unsupported cart blob version %d", env.Version)
	}
	return env.Items, nil
}

// Store is the durable slot behind the cart engine. One blob per shopper.
type Store interface {
	Load(ctx context.Context, shopperID string) ([]byte, error)
	Save(ctx context.Context, shopperID string, blob []byte) error
	Clear(ctx context.Context, shopperID string) error
}

// MemoryStore keeps blobs in process memory. Used in tests and as a fallback
// when no Redis is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Load returns the blob for the shopper or ErrSlotEmpty.
func (s *MemoryStore) Load(_ context.Context, shopperID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[shopperID]
	if !ok {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Save overwrites the shopper's blob.
func (s *MemoryStore) Save(_ context.Context, shopperID string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[shopperID] = stored
	return nil
}

// Clear erases the shopper's blob entirely.
func (s *MemoryStore) Clear(_ context.Context, shopperID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, shopperID)
	return nil
}

// slotClient is the subset of the redis client the store needs.
type slotClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartSlotKey(shopperID string) string
}
