// internal/app/system/workers/viewsweeper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops idle entries and reports how many were removed.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// Pruner drops expired bookkeeping and reports how many entries went.
type Pruner interface {
	Prune() int
}

// ViewSweeper is a background worker that forgets dashboard views nobody
// has looked at for a while.
type ViewSweeper struct {
	views    Sweeper
	pruners  []Pruner
	log      *zap.Logger
	interval time.Duration
	idle     time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewViewSweeper creates a new view sweeper.
//
// Parameters:
//   - views: the view registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idle: how long a view must go unseen before it is dropped (e.g., 30 minutes)
//   - pruners: extra per-client state (such as rate-limit windows) pruned on the same tick
func NewViewSweeper(views Sweeper, logger *zap.Logger, interval, idle time.Duration, pruners ...Pruner) *ViewSweeper {
	return &ViewSweeper{
		views:    views,
		pruners:  pruners,
		log:      logger,
		interval: interval,
		idle:     idle,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *ViewSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("view sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_ttl", w.idle))
}

// Stop signals the worker to stop and waits for it to finish.
// Calling Stop more than once is safe.
func (w *ViewSweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("view sweeper stopped")
	})
}

func (w *ViewSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *ViewSweeper) sweep() {
	if n := w.views.Sweep(w.idle); n > 0 {
		w.log.Info("dropped idle dashboard views", zap.Int("count", n))
	}
	for _, p := range w.pruners {
		if n := p.Prune(); n > 0 {
			w.log.Debug("pruned expired entries", zap.Int("count", n))
		}
	}
}
