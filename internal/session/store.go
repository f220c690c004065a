package session

import (
	"context"
	"errors"
	"sync"
)

// ErrUnnamedSystem is returned when a system without a name is looked up or
// saved.
var ErrUnnamedSystem = errors.New("star system has no name")

// Repository stores star systems by name. Implementations must not let
// callers alias their storage.
type Repository interface {
	GetOrCreate(ctx context.Context, name string) (*StarSystem, error)
	Save(ctx context.Context, sys *StarSystem) error
}

// MemoryRepository is an in-process Repository. It hands out and keeps
// copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	systems map[string]*StarSystem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		systems: make(map[string]*StarSystem),
	}
}

func (r *MemoryRepository) GetOrCreate(ctx context.Context, name string) (*StarSystem, error) {
	if name == "" {
		return nil, ErrUnnamedSystem
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sys, ok := r.systems[name]
	if !ok {
		sys = &StarSystem{Name: name}
		r.systems[name] = sys
	}
	return sys.Clone(), nil
}

func (r *MemoryRepository) Save(ctx context.Context, sys *StarSystem) error {
	if sys == nil || sys.Name == "" {
		return ErrUnnamedSystem
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems[sys.Name] = sys.Clone()
	return nil
}

// Get returns a copy of a stored system without creating it.
func (r *MemoryRepository) Get(name string) (*StarSystem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sys, ok := r.systems[name]
	if !ok {
		return nil, false
	}
	return sys.Clone(), true
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.systems)
}
