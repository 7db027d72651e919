// internal/app/storage/storage.go

// Package storage persists the state store's snapshot. Each Save writes
// the entire entity set as one envelope, so a crash can never leave two
// collections mutually inconsistent on the next load. Backends: a local
// JSON file (default) and a single MongoDB document.
package storage

import (
	"context"
	"errors"

	"github.com/dalemusser/coachhub/internal/domain/models"
)

// ErrNotFound is returned by Load when no snapshot has been saved yet.
// The store treats it as "first run" and seeds the default data set.
var ErrNotFound = errors.New("storage: no snapshot found")

// Adapter mirrors the in-memory snapshot to durable storage. Save is
// called with a clone, never the live snapshot, and must replace the
// previous envelope atomically.
type Adapter interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}
