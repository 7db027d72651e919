// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the snapshot
// is loaded but before the HTTP handler is built. It launches the
// store's background persister.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	deps.Store.Start()
	logger.Info("state store started",
		zap.String("backend", appCfg.SnapshotBackend),
		zap.Duration("save_debounce", appCfg.SaveDebounce))
	return nil
}
