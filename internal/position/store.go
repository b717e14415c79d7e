package position

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrPositionExists is returned when opening into an occupied slot.
	ErrPositionExists = errors.New("position already open for this key")
	// ErrPositionNotFound is returned when closing or reading an empty slot.
	ErrPositionNotFound = errors.New("no open position for this key")
)

// Store persists open positions and records closes. Implementations must
// enforce the one-open-position-per-key invariant atomically.
type Store interface {
	// Get returns the open position in the slot, or ErrPositionNotFound.
	Get(ctx context.Context, key Key) (Position, error)

	// Open records a new open position. Fails with ErrPositionExists if the
	// slot is occupied.
	Open(ctx context.Context, pos Position) error

	// Close closes the open position in the slot at the given exit price
	// and returns the realized profit.
	Close(ctx context.Context, key Key, exitPrice float64, closedAt time.Time) (float64, error)
}

// MemoryStore is an in-process Store. Suitable for single-instance bots
// and for tests.
type MemoryStore struct {
	mu   sync.Mutex
	open map[Key]Position
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{open: make(map[Key]Position)}
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.open[key]
	if !ok {
		return Position{}, ErrPositionNotFound
	}
	return pos, nil
}

func (s *MemoryStore) Open(ctx context.Context, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pos.Key()
	if _, ok := s.open[key]; ok {
		return ErrPositionExists
	}
	s.open[key] = pos
	return nil
}

func (s *MemoryStore) Close(ctx context.Context, key Key, exitPrice float64, closedAt time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.open[key]
	if !ok {
		return 0, ErrPositionNotFound
	}
	delete(s.open, key)
	return pos.RealizedProfit(exitPrice), nil
}
