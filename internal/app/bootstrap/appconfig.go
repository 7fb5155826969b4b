// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig carries everything specific to the dashboard: where the models
// backend lives, how browser sessions are signed, and how long idle views
// are kept.
type AppConfig struct {
	// Models backend
	APIBase     string // Resolved backend root, e.g. http://localhost:5000/api
	APIBaseDev  string // Backend root used when env is not prod
	APIBaseProd string // Backend root used when env is prod

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: modeldash-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection for the retry form
	CSRFKey string // 32-byte key; blank generates a per-process key

	// Mounted view lifetime
	ViewIdleTTL       time.Duration // Views unseen for this long are dropped
	ViewSweepInterval time.Duration // How often idle views are swept
	MountRateLimit    int           // Max views one client IP may mount per minute
	TrustProxy        bool          // Take the client IP from X-Real-IP/X-Forwarded-For (only behind a trusted proxy)

	// Health probe against the models backend
	HealthTimeout time.Duration
}
