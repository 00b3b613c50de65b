// Package settings persists the per-category pack load preferences.
package settings

import (
	"context"
	"sync"

	"github.com/jonwraymond/compendium/pack"
)

// Store gets and sets the pack settings blob.
type Store interface {
	Get(ctx context.Context) (pack.Settings, error)
	Set(ctx context.Context, s pack.Settings) error
}

// MemoryStore keeps settings in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	settings pack.Settings
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{settings: pack.Settings{}}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context) (pack.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Clone(), ctx.Err()
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, s pack.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.settings = s.Clone()
	m.mu.Unlock()
	return nil
}
