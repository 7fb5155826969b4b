package dashboard

import (
	"sync"
	"time"

	"github.com/dalemusser/modeldash/internal/app/system/fetchmetrics"
	"github.com/google/uuid"
)

// Registry holds the mounted dashboard views. Each view belongs to the
// browser session (owner) that mounted it.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*view
	now   func() time.Time
}

type view struct {
	owner    string
	ctrl     *Controller
	lastSeen time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]*view),
		now:   time.Now,
	}
}

// Add stores ctrl under a new view ID owned by owner and returns the ID.
func (r *Registry) Add(owner string, ctrl *Controller) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.views[id] = &view{owner: owner, ctrl: ctrl, lastSeen: r.now()}
	n := len(r.views)
	r.mu.Unlock()

	fetchmetrics.SetActiveViews(n)
	return id
}

// Lookup returns the controller for id if it exists and belongs to owner,
// and marks the view as recently seen.
func (r *Registry) Lookup(id, owner string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[id]
	if !ok || owner == "" || v.owner != owner {
		return nil, false
	}
	v.lastSeen = r.now()
	return v.ctrl, true
}

// Len returns the number of mounted views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Sweep drops views not seen for longer than idle and returns how many were
// removed. In-flight fetches of dropped views still run to completion.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	removed := 0
	for id, v := range r.views {
		if v.lastSeen.Before(cutoff) {
			delete(r.views, id)
			removed++
		}
	}
	n := len(r.views)
	r.mu.Unlock()

	fetchmetrics.SetActiveViews(n)
	return removed
}
