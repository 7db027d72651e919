// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports,
// TLS, logging, CORS, body limits); AppConfig is everything specific
// to this application: where the snapshot lives, who the admins are,
// session and token secrets, and upload storage.
type AppConfig struct {
	// Snapshot persistence. Backend selects the adapter: "file",
	// "mongo", or "memory" (no persistence across restarts).
	SnapshotBackend string
	SnapshotPath    string        // file backend: path of the JSON envelope
	SaveDebounce    time.Duration // coalescing window for snapshot writes

	// MongoDB, used when SnapshotBackend is "mongo".
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64

	// Session and bearer-token configuration.
	SessionKey    string // secret key for signing session cookies
	SessionName   string // cookie name (default: coachhub-session)
	SessionDomain string // cookie domain (blank means current host)
	JWTKey        string // bearer-token signing key (blank falls back to SessionKey)
	JWTTTL        time.Duration

	// Identity configuration. Comma-separated phone numbers and email
	// addresses that resolve to the admin role, the bcrypt hash admin
	// email logins must match, and the demo OTP for phone logins.
	AdminPhones       string
	AdminEmails       string
	AdminPasswordHash string
	DemoOTP           string

	// Upload storage.
	UploadDir string // local directory for uploaded media
	UploadURL string // URL prefix the files are served under

	// TypingTTL is how long a typing indicator stays visible.
	TypingTTL time.Duration
}
