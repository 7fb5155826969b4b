// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/modeldash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading string
	Message string
	BackURL string
}

// Handler is the errors feature handler.
// No backend needed; it just renders templates.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound renders a friendly "page not found" page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Not found"),
		Heading: "Page not found",
		Message: "There is nothing at this address.",
		BackURL: "/",
	}

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", data)
}

// Forbidden renders the page shown when a form post fails CSRF validation,
// typically because the page was left open long enough for the token to go
// stale. It is installed as the gorilla/csrf error handler.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.Log.Warn("request rejected by CSRF protection",
		zap.String("path", r.URL.Path),
		zap.NamedError("reason", csrf.FailureReason(r)))

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Request expired"),
		Heading: "Request expired",
		Message: "This page is out of date. Reload the dashboard and try again.",
		BackURL: "/",
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_page", data)
}

// TooManyRequests renders the page shown when a client opens dashboards
// faster than the mount limit allows.
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.Log.Info("dashboard mount rate limited", zap.String("path", r.URL.Path))

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Slow down"),
		Heading: "Too many dashboards",
		Message: "You have opened a lot of dashboards in a short time. Wait a minute and try again.",
		BackURL: "/",
	}

	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	templates.Render(w, r, "error_page", data)
}
