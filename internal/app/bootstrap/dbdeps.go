// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the persistence backends for the app: the snapshot
// adapter, the state store built on it, and the Mongo client when the
// mongo backend is selected (nil otherwise).
type DBDeps struct {
	MongoClient *mongo.Client
	Snapshots   storage.Adapter
	Store       *state.Store
}
