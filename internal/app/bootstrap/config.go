// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CoachHub, loaded
// via WAFFLE's config system from config files, COACHHUB_* environment
// variables, or command-line flags.
var appConfigKeys = []config.AppKey{
	{Name: "snapshot_backend", Default: "file", Desc: "Snapshot persistence backend: 'file', 'mongo', or 'memory'"},
	{Name: "snapshot_path", Default: "./data/snapshot.json", Desc: "Snapshot file path (file backend)"},
	{Name: "save_debounce", Default: "250ms", Desc: "Coalescing window for snapshot writes (0 disables debouncing)"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (mongo backend)"},
	{Name: "mongo_database", Default: "coachhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "coachhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "jwt_key", Default: "", Desc: "Bearer token signing key (blank falls back to session_key)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Bearer token lifetime"},

	{Name: "admin_phones", Default: "", Desc: "Comma-separated phone numbers granted the admin role on login"},
	{Name: "admin_emails", Default: "", Desc: "Comma-separated email addresses allowed to log in as admin"},
	{Name: "admin_password_hash", Default: "", Desc: "bcrypt hash admin email logins must match"},
	{Name: "demo_otp", Default: "123456", Desc: "Verification code accepted for phone logins"},

	{Name: "upload_dir", Default: "./uploads/media", Desc: "Local storage path for uploaded media"},
	{Name: "upload_url", Default: "/files/media", Desc: "URL prefix for serving uploaded media"},

	{Name: "typing_ttl", Default: "3s", Desc: "How long a typing indicator stays visible"},
}

// LoadConfig loads WAFFLE core config and app-specific config. Merging
// precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COACHHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SnapshotBackend: appValues.String("snapshot_backend"),
		SnapshotPath:    appValues.String("snapshot_path"),
		SaveDebounce:    appValues.Duration("save_debounce", 250*time.Millisecond),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		JWTKey:        appValues.String("jwt_key"),
		JWTTTL:        appValues.Duration("jwt_ttl", 24*time.Hour),

		AdminPhones:       appValues.String("admin_phones"),
		AdminEmails:       appValues.String("admin_emails"),
		AdminPasswordHash: appValues.String("admin_password_hash"),
		DemoOTP:           appValues.String("demo_otp"),

		UploadDir: appValues.String("upload_dir"),
		UploadURL: appValues.String("upload_url"),

		TypingTTL: appValues.Duration("typing_ttl", 3*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backend is touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.SnapshotBackend {
	case "file":
		if appCfg.SnapshotPath == "" {
			return fmt.Errorf("snapshot_path is required for the file backend")
		}
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	case "memory":
		logger.Warn("memory snapshot backend selected; state is lost on restart")
	default:
		return fmt.Errorf("unknown snapshot_backend %q (want file, mongo, or memory)", appCfg.SnapshotBackend)
	}
	return nil
}
