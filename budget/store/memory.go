// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/budget-ledger/budget"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	snap  budget.Snapshot
	saved bool
	saves int
}

func NewMemory() *Memory {
	return &Memory{}
}

// Save keeps a deep copy so later ledger mutations don't leak in.
func (m *Memory) Save(_ context.Context, snap budget.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = snap.Clone()
	m.saved = true
	m.saves++
	return nil
}

func (m *Memory) Load(_ context.Context) (budget.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.saved {
		return budget.Snapshot{}, budget.NewStoreError("load", "memory", budget.ErrNotFound, nil)
	}
	return m.snap.Clone(), nil
}

// Saves returns how many times Save has succeeded.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
