// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/modeldash/internal/app/features/dashboard"
	"github.com/dalemusser/modeldash/internal/app/system/modelsapi"
	"github.com/dalemusser/modeldash/internal/app/system/ratelimit"
	"github.com/dalemusser/modeldash/internal/app/system/workers"
)

// DBDeps holds the back-end dependencies for the app. The dashboard keeps no
// database; its backend is the models API plus in-memory view bookkeeping.
type DBDeps struct {
	ModelsAPI *modelsapi.Client
	Views     *dashboard.Registry
	Mounts    *ratelimit.Limiter
	Sweeper   *workers.ViewSweeper
}
