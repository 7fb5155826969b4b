// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const (
	defaultAPIBaseDev  = "http://localhost:5000/api"
	defaultAPIBaseProd = "https://ai-models-dashboard.uc.r.appspot.com/api"
)

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base, session_name, etc.
//   - Environment variables: MODELDASH_API_BASE, MODELDASH_SESSION_NAME, etc.
//   - Command-line flags: --api_base, --session_name, etc.
var appConfigKeys = []config.AppKey{
	// Models backend
	{Name: "api_base", Default: "", Desc: "Models backend root; overrides api_base_dev/api_base_prod when set"},
	{Name: "api_base_dev", Default: defaultAPIBaseDev, Desc: "Models backend root used outside prod"},
	{Name: "api_base_prod", Default: defaultAPIBaseProd, Desc: "Models backend root used in prod"},

	// Sessions
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "modeldash-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// CSRF
	{Name: "csrf_key", Default: "", Desc: "32-byte CSRF key (blank generates one per process)"},

	// Views
	{Name: "view_idle_ttl", Default: "30m", Desc: "Drop dashboard views unseen for this long (e.g., 30m, 2h)"},
	{Name: "view_sweep_interval", Default: "1m", Desc: "How often idle dashboard views are swept"},
	{Name: "mount_rate_limit", Default: 30, Desc: "Max dashboard views one client IP may open per minute"},
	{Name: "trust_proxy", Default: false, Desc: "Trust X-Real-IP/X-Forwarded-For for the client IP (enable only behind a reverse proxy)"},

	// Health
	{Name: "health_timeout", Default: "2s", Desc: "Timeout for the models backend health probe"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, MODELDASH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MODELDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseDev:  appValues.String("api_base_dev"),
		APIBaseProd: appValues.String("api_base_prod"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		CSRFKey: appValues.String("csrf_key"),

		ViewIdleTTL:       appValues.Duration("view_idle_ttl", 30*time.Minute),
		ViewSweepInterval: appValues.Duration("view_sweep_interval", time.Minute),
		MountRateLimit:    appValues.Int("mount_rate_limit"),
		TrustProxy:        appValues.Bool("trust_proxy"),

		HealthTimeout: appValues.Duration("health_timeout", 2*time.Second),
	}
	appCfg.APIBase = ResolveAPIBase(coreCfg.Env, appValues.String("api_base"), appCfg.APIBaseDev, appCfg.APIBaseProd)

	logger.Info("models backend selected",
		zap.String("env", coreCfg.Env),
		zap.String("api_base", appCfg.APIBase))

	return coreCfg, appCfg, nil
}

// ResolveAPIBase picks the models backend root: an explicit override wins,
// otherwise prod uses prodBase and every other env uses devBase.
func ResolveAPIBase(env, override, devBase, prodBase string) string {
	switch {
	case override != "":
		return override
	case env == "prod":
		return prodBase
	default:
		return devBase
	}
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The backend root must be an absolute http(s) URL, and the view lifetimes
// and the mount limit must be positive.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateAPIBase(appCfg.APIBase); err != nil {
		logger.Error("invalid models backend URL", zap.String("api_base", appCfg.APIBase), zap.Error(err))
		return fmt.Errorf("invalid api_base: %w", err)
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must be set")
	}
	if n := len(appCfg.CSRFKey); n != 0 && n != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", n)
	}

	if appCfg.ViewIdleTTL <= 0 {
		return fmt.Errorf("view_idle_ttl must be positive")
	}
	if appCfg.ViewSweepInterval <= 0 {
		return fmt.Errorf("view_sweep_interval must be positive")
	}
	if appCfg.MountRateLimit <= 0 {
		return fmt.Errorf("mount_rate_limit must be positive")
	}

	return nil
}

func validateAPIBase(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
