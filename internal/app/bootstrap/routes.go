// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/modeldash/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/modeldash/internal/app/features/errors"
	healthfeature "github.com/dalemusser/modeldash/internal/app/features/health"
	"github.com/dalemusser/modeldash/internal/app/system/viewdata"
	"github.com/dalemusser/modeldash/internal/app/system/viewsession"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup, and Startup have
// completed. It boots the template engine, installs CSRF protection for the
// retry form, and mounts health, metrics, static assets, and the dashboard.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := viewsession.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errorsHandler := errorsfeature.NewHandler(logger)

	r := chi.NewRouter()

	r.Use(clientIPMiddlewares(appCfg)...)
	if !secure {
		r.Use(plaintextRequests)
	}
	r.Use(csrf.Protect(csrfKey(appCfg, logger),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName(viewdata.CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(errorsHandler.Forbidden)),
	))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ModelsAPI, deps.Views, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Dashboard views
	dashboardHandler := dashboardfeature.NewHandler(deps.ModelsAPI, deps.Views, sessionMgr, logger)
	var mountGuard func(http.Handler) http.Handler
	if deps.Mounts != nil {
		mountGuard = deps.Mounts.Middleware(http.HandlerFunc(errorsHandler.TooManyRequests))
	}
	r.Mount("/", dashboardfeature.Routes(dashboardHandler, mountGuard))

	r.NotFound(errorsHandler.NotFound)

	return r, nil
}

// csrfKey returns the configured CSRF key, or a random per-process key when
// none is set. A random key invalidates outstanding forms on restart.
func csrfKey(appCfg AppConfig, logger *zap.Logger) []byte {
	if appCfg.CSRFKey != "" {
		return []byte(appCfg.CSRFKey)
	}
	logger.Warn("csrf_key not set; generating a per-process key")
	return securecookie.GenerateRandomKey(32)
}

// clientIPMiddlewares returns the middleware that rewrites RemoteAddr from
// forwarding headers. Client IPs key the mount limit, so the headers are
// honored only when a trusted proxy sets them.
func clientIPMiddlewares(appCfg AppConfig) []func(http.Handler) http.Handler {
	if !appCfg.TrustProxy {
		return nil
	}
	return []func(http.Handler) http.Handler{middleware.RealIP}
}

// plaintextRequests marks requests as plain HTTP so gorilla/csrf skips its
// TLS-only referer checks in dev.
func plaintextRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
