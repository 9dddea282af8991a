package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/redis"
)

var errNil = redis.Nil

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := &RedisStore{client: &fakeSlotClient{data: map[string]string{}}}

	if _, err := store.Load(ctx, "s1"); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty for missing key, got %v", err)
	}

	if err := store.Save(ctx, "s1", []byte(`{"version":1,"items":[]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(blob) != `{"version":1,"items":[]}` {
		t.Fatalf("unexpected blob %q", blob)
	}

	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(ctx, "s1"); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty after clear, got %v", err)
	}
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	if _, err := NewRedisStore(nil, 0); err == nil {
		t.Fatal("expected error for nil client")
	}
}
