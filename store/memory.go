package store

import (
	"context"
	"sort"
	"sync"

	"github.com/manali-mahadik-10/FinAgent/core"
)

// MemoryStore is an in-memory TransactionStore for tests and demos.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	txs    []core.Transaction
}

// NewMemoryStore creates an empty in-memory transaction store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// List returns matching transactions ordered by date then id.
func (m *MemoryStore) List(ctx context.Context, kind core.TxKind) ([]core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Transaction, 0, len(m.txs))
	for _, tx := range m.txs {
		if kind == "" || tx.Kind == kind {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Append stores a transaction and returns its assigned id.
func (m *MemoryStore) Append(ctx context.Context, tx core.Transaction) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx.ID = m.nextID
	m.nextID++
	m.txs = append(m.txs, tx)
	return tx.ID, nil
}
