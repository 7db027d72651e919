// internal/app/storage/memory.go
package storage

import (
	"context"
	"sync"

	"github.com/dalemusser/coachhub/internal/domain/models"
)

// Memory keeps the snapshot in process memory. It exists for tests and
// for running the server with persistence disabled; a restart loses
// everything.
type Memory struct {
	mu   sync.Mutex
	snap *models.Snapshot
}

// NewMemory returns an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, ErrNotFound
	}
	return m.snap.Clone(), nil
}

func (m *Memory) Save(ctx context.Context, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	return nil
}

// Saved reports whether a snapshot has been stored yet.
func (m *Memory) Saved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap != nil
}
