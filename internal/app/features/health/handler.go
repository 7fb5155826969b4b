package health

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/dalemusser/modeldash/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Prober reports the status of the models backend.
type Prober interface {
	Health(ctx context.Context) (string, error)
}

// ViewCounter reports how many dashboard views are mounted.
type ViewCounter interface {
	Len() int
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	API   Prober
	Views ViewCounter
	Log   *zap.Logger
}

// NewHandler constructs a health Handler with the backend prober and logger.
func NewHandler(api Prober, views ViewCounter, logger *zap.Logger) *Handler {
	return &Handler{
		API:   api,
		Views: views,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	API     string `json:"api"`
	Views   int    `json:"views"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "api":"healthy", "views":3 }
//
// On backend failure: 503 and
//
//	{ "status":"error", "api":"unreachable", "views":3, "message":"Models backend unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.Log, "models backend health")
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{Status: "ok"}
	if h.Views != nil {
		resp.Views = h.Views.Len()
	}

	status, err := h.API.Health(ctx)
	if err != nil {
		h.Log.Error("health-check: models backend probe failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.API = "unreachable"
		resp.Message = "Models backend unavailable"
		resp.Error = err.Error()
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(resp)
		return
	}

	resp.API = status
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(resp)
}
