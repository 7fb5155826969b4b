// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard at the site root. The caller applies CSRF
// protection to the router these routes are mounted on. mountGuard, when
// non-nil, wraps only the mount route (it is the one that allocates a view).
func Routes(h *Handler, mountGuard func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	if mountGuard != nil {
		r.With(mountGuard).Get("/", h.ServeMount)
	} else {
		r.Get("/", h.ServeMount)
	}
	r.Route("/views/{viewID}", func(vr chi.Router) {
		vr.Get("/", h.ServeView)
		vr.Get("/state", h.ServeState)
		vr.Post("/retry", h.ServeRetry)
	})
	return r
}
