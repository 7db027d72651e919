// internal/app/storage/mongo.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/coachhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotDocID = "state"

// Mongo stores the snapshot as one document in the snapshots
// collection. The envelope is kept as a JSON payload string so the
// durable form is byte-identical to the file backend's, and a single
// ReplaceOne keeps the whole entity set atomic.
type Mongo struct {
	c *mongo.Collection
}

// snapshotDoc is the stored document shape.
type snapshotDoc struct {
	ID      string    `bson:"_id"`
	SavedAt time.Time `bson:"saved_at"`
	Payload string    `bson:"payload"`
}

// NewMongo returns a mongo-backed adapter using db's "snapshots"
// collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection("snapshots")}
}

func (m *Mongo) Load(ctx context.Context) (*models.Snapshot, error) {
	var doc snapshotDoc
	err := m.c.FindOne(ctx, bson.M{"_id": snapshotDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(doc.Payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (m *Mongo) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	doc := snapshotDoc{
		ID:      snapshotDocID,
		SavedAt: time.Now().UTC(),
		Payload: string(data),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.c.ReplaceOne(ctx, bson.M{"_id": snapshotDocID}, doc, opts); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
