package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/errors"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/logger"
)

// Service exposes the cart engine keyed by shopper. Cart mutations never fail
// on cart grounds: quantities are clamped, misses are no-ops, and a broken
// persisted blob falls back to an empty cart. The only errors surfaced are
// input validation on the shopper id.
type Service interface {
	Get(ctx context.Context, shopperID string) (State, error)
	Add(ctx context.Context, shopperID string, input LineInput) (State, error)
	Remove(ctx context.Context, shopperID string, productID int64, attrs map[string]string) (State, error)
	UpdateQuantity(ctx context.Context, shopperID string, productID int64, quantity int, attrs map[string]string) (State, error)
	Clear(ctx context.Context, shopperID string) (State, error)
	Toggle(ctx context.Context, shopperID string) (State, error)
	Open(ctx context.Context, shopperID string) (State, error)
	Close(ctx context.Context, shopperID string) (State, error)
}

type service struct {
	mu      sync.Mutex
	engines map[string]*Engine
	store   Store
	logg    *logger.Logger
	async   bool
	wg      sync.WaitGroup
}

// NewService builds a cart service backed by the provided slot store. With
// async set, persistence is write-behind: the in-memory engine is the source
// of truth and store writes happen off the request path.
func NewService(store Store, logg *logger.Logger, async bool) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		engines: make(map[string]*Engine),
		store:   store,
		logg:    logg,
		async:   async,
	}, nil
}

func (s *service) Get(ctx context.Context, shopperID string) (State, error) {
	return s.command(ctx, shopperID, nil)
}

func (s *service) Add(ctx context.Context, shopperID string, input LineInput) (State, error) {
	return s.mutate(ctx, shopperID, func(e *Engine) { e.Add(input) })
}

func (s *service) Remove(ctx context.Context, shopperID string, productID int64, attrs map[string]string) (State, error) {
	return s.mutate(ctx, shopperID, func(e *Engine) { e.Remove(productID, attrs) })
}

func (s *service) UpdateQuantity(ctx context.Context, shopperID string, productID int64, quantity int, attrs map[string]string) (State, error) {
	return s.mutate(ctx, shopperID, func(e *Engine) { e.UpdateQuantity(productID, quantity, attrs) })
}

// Clear erases the persisted blob entirely rather than writing an empty list.
func (s *service) Clear(ctx context.Context, shopperID string) (State, error) {
	shopperID, err := normalizeShopperID(shopperID)
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	engine := s.engine(ctx, shopperID)
	engine.Clear()
	s.eraseSlot(ctx, shopperID)
	return engine.Snapshot(), nil
}

func (s *service) Toggle(ctx context.Context, shopperID string) (State, error) {
	return s.command(ctx, shopperID, func(e *Engine) { e.Toggle() })
}

func (s *service) Open(ctx context.Context, shopperID string) (State, error) {
	return s.command(ctx, shopperID, func(e *Engine) { e.Open() })
}

func (s *service) Close(ctx context.Context, shopperID string) (State, error) {
	return s.command(ctx, shopperID, func(e *Engine) { e.Close() })
}

// command runs an operation that does not touch the persisted slot.
// Visibility is ephemeral.
func (s *service) command(ctx context.Context, shopperID string, op func(*Engine)) (State, error) {
	shopperID, err := normalizeShopperID(shopperID)
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	engine := s.engine(ctx, shopperID)
	if op != nil {
		op(engine)
	}
	return engine.Snapshot(), nil
}

// mutate runs an item-level operation and persists the resulting item list.
func (s *service) mutate(ctx context.Context, shopperID string, op func(*Engine)) (State, error) {
	shopperID, err := normalizeShopperID(shopperID)
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	engine := s.engine(ctx, shopperID)
	op(engine)
	snapshot := engine.Snapshot()
	s.persist(ctx, shopperID, snapshot.Items)
	return snapshot, nil
}

// engine returns the shopper's engine, hydrating it from the store on first
// use. A missing or malformed blob yields an empty cart, never an error.
func (s *service) engine(ctx context.Context, shopperID string) *Engine {
	if e, ok := s.engines[shopperID]; ok {
		return e
	}

	e := NewEngine()
	blob, err := s.store.Load(ctx, shopperID)
	switch {
	case err == nil:
		items, decodeErr := DecodeItems(blob)
		if decodeErr != nil {
			s.logg.Warn(s.cartCtx(ctx, shopperID), fmt.Sprintf("discarding malformed cart blob: %v", decodeErr))
		} else {
			e.Restore(items)
		}
	case errors.Is(err, ErrSlotEmpty):
		// first visit, nothing persisted yet
	default:
		s.logg.Error(s.cartCtx(ctx, shopperID), "cart slot load failed, starting empty", err)
	}

	s.engines[shopperID] = e
	return e
}

func (s *service) persist(ctx context.Context, shopperID string, items []Line) {
	blob, err := EncodeItems(items)
	if err != nil {
		s.logg.Error(s.cartCtx(ctx, shopperID), "encoding cart blob failed", err)
		return
	}
	if s.async {
		bg := context.WithoutCancel(ctx)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.store.Save(bg, shopperID, blob); err != nil {
				s.logg.Error(s.cartCtx(bg, shopperID), "cart slot save failed", err)
			}
		}()
		return
	}
	if err := s.store.Save(ctx, shopperID, blob); err != nil {
		s.logg.Error(s.cartCtx(ctx, shopperID), "cart slot save failed", err)
	}
}

func (s *service) eraseSlot(ctx context.Context, shopperID string) {
	if s.async {
		bg := context.WithoutCancel(ctx)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.store.Clear(bg, shopperID); err != nil {
				s.logg.Error(s.cartCtx(bg, shopperID), "cart slot clear failed", err)
			}
		}()
		return
	}
	if err := s.store.Clear(ctx, shopperID); err != nil {
		s.logg.Error(s.cartCtx(ctx, shopperID), "cart slot clear failed", err)
	}
}

// Flush waits for in-flight write-behind persistence. Called on shutdown.
func (s *service) Flush() {
	s.wg.Wait()
}

func (s *service) cartCtx(ctx context.Context, shopperID string) context.Context {
	return s.logg.WithShopperID(ctx, shopperID)
}

func normalizeShopperID(shopperID string) (string, error) {
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}
	return shopperID, nil
}
