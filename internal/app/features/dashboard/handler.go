// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/dalemusser/modeldash/internal/app/system/viewsession"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	_ "github.com/dalemusser/modeldash/internal/app/features/dashboard/views"
)

// Handler serves the dashboard views.
type Handler struct {
	Models   Fetcher
	Views    *Registry
	Sessions *viewsession.Manager
	Log      *zap.Logger
}

func NewHandler(fetcher Fetcher, views *Registry, sessions *viewsession.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Models:   fetcher,
		Views:    views,
		Sessions: sessions,
		Log:      logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – mount a new view and start its first fetch                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeMount(w http.ResponseWriter, r *http.Request) {
	owner, err := h.Sessions.Owner(w, r)
	if err != nil {
		h.Log.Error("dashboard mount: session unavailable", zap.Error(err))
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	ctrl := NewController(h.Models, h.Log)
	id := h.Views.Add(owner, ctrl)
	ctrl.Load()

	h.Log.Info("dashboard view mounted",
		zap.String("view_id", id),
		zap.Int("active_views", h.Views.Len()))

	http.Redirect(w, r, ViewPath(id), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /views/{viewID} – render the view by state                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	ctrl, ok := h.lookup(r, id)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := NewPageVM(r, id, ctrl.State())
	templates.Render(w, r, "dashboard", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /views/{viewID}/retry – refetch after a failure                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRetry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	ctrl, ok := h.lookup(r, id)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctrl.Retry()
	h.Log.Info("dashboard retry requested", zap.String("view_id", id))

	http.Redirect(w, r, ViewPath(id), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /views/{viewID}/state – JSON view of the fetch state                    |
*─────────────────────────────────────────────────────────────────────────────*/

// stateResponse is the JSON body of the state endpoint. Payload is set only
// when ready, Message only when failed.
type stateResponse struct {
	ViewID   string      `json:"view_id"`
	State    string      `json:"state"`
	Message  string      `json:"message,omitempty"`
	Sections []SectionVM `json:"sections,omitempty"`
}

func (h *Handler) ServeState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := chi.URLParam(r, "viewID")
	ctrl, ok := h.lookup(r, id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"view not found"}`))
		return
	}

	st := ctrl.State()
	resp := stateResponse{ViewID: id, State: st.Kind()}
	switch s := st.(type) {
	case Failed:
		resp.Message = s.Message
	case Ready:
		resp.Sections = BuildSections(s.Payload)
	}

	if err := sonic.ConfigDefault.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Warn("dashboard state: encode failed", zap.Error(err))
	}
}

func (h *Handler) lookup(r *http.Request, id string) (*Controller, bool) {
	owner := h.Sessions.PeekOwner(r)
	ctrl, ok := h.Views.Lookup(id, owner)
	if !ok {
		h.Log.Debug("dashboard view not found for session", zap.String("view_id", id))
	}
	return ctrl, ok
}

// ViewPath returns the URL path of a mounted view.
func ViewPath(id string) string {
	return "/views/" + id
}
