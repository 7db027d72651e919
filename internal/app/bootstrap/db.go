// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/coachhub/internal/app/state"
	"github.com/dalemusser/coachhub/internal/app/storage"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB builds the snapshot adapter for the configured backend and
// the state store on top of it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	switch appCfg.SnapshotBackend {
	case "file":
		deps.Snapshots = storage.NewFile(appCfg.SnapshotPath)
		logger.Info("using file snapshot backend", zap.String("path", appCfg.SnapshotPath))

	case "mongo":
		opts := options.Client().
			ApplyURI(appCfg.MongoURI).
			SetMaxPoolSize(appCfg.MongoMaxPoolSize)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return deps, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return deps, fmt.Errorf("ping mongo: %w", err)
		}
		deps.MongoClient = client
		deps.Snapshots = storage.NewMongo(client.Database(appCfg.MongoDatabase))
		logger.Info("using mongo snapshot backend", zap.String("database", appCfg.MongoDatabase))

	case "memory":
		deps.Snapshots = storage.NewMemory()

	default:
		return deps, fmt.Errorf("unknown snapshot_backend %q", appCfg.SnapshotBackend)
	}

	deps.Store = state.New(deps.Snapshots, logger, state.Options{
		TypingTTL:    appCfg.TypingTTL,
		SaveDebounce: appCfg.SaveDebounce,
	})
	return deps, nil
}

// EnsureSchema rehydrates the store from the snapshot backend, seeding
// the demo data set on first run.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Store.Load(ctx); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return nil
}
