package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/modeldash/internal/app/system/fetchmetrics"
	"github.com/dalemusser/modeldash/internal/app/system/modelsapi"
	"github.com/dalemusser/modeldash/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher retrieves the full category payload.
type Fetcher interface {
	FetchModels(ctx context.Context) (models.Payload, error)
}

// Controller owns the fetch lifecycle of one dashboard view.
//
// Transitions: Loading -> Ready | Failed on resolution, and any state ->
// Loading on Load/Retry. Requests are never cancelled. Each request carries a
// generation number; a result is applied unless a newer request has already
// resolved, so the view always converges on the newest resolved request.
type Controller struct {
	fetcher Fetcher
	log     *zap.Logger

	mu      sync.Mutex
	state   State
	issued  uint64 // generation of the most recently issued request
	applied uint64 // generation of the most recently applied result
}

// NewController returns a controller in the Loading state. Nothing is
// fetched until Load is called.
func NewController(fetcher Fetcher, logger *zap.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		log:     logger,
		state:   Loading{},
	}
}

// State returns the current fetch state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load enters Loading and issues one request. The returned channel is closed
// once that request has resolved, whether or not its result was applied.
func (c *Controller) Load() <-chan struct{} {
	return c.start("load")
}

// Retry is Load triggered by the visitor. There is no backoff, limit, or
// deduplication; each call is an independent request.
func (c *Controller) Retry() <-chan struct{} {
	return c.start("retry")
}

func (c *Controller) start(reason string) <-chan struct{} {
	c.mu.Lock()
	c.issued++
	gen := c.issued
	c.state = Loading{}
	c.mu.Unlock()

	fetchID := uuid.NewString()
	c.log.Debug("models fetch issued",
		zap.String("fetch_id", fetchID),
		zap.String("reason", reason),
		zap.Uint64("generation", gen))

	done := make(chan struct{})
	go func() {
		defer close(done)
		started := time.Now()
		// The fetch outlives the HTTP request that triggered it.
		payload, err := c.fetcher.FetchModels(context.Background())
		fetchmetrics.ObserveFetch(modelsapi.Outcome(err), time.Since(started))
		c.resolve(gen, fetchID, payload, err)
	}()
	return done
}

func (c *Controller) resolve(gen uint64, fetchID string, payload models.Payload, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen < c.applied {
		fetchmetrics.ObserveDiscard()
		c.log.Debug("stale models fetch discarded",
			zap.String("fetch_id", fetchID),
			zap.Uint64("generation", gen),
			zap.Uint64("applied", c.applied))
		return
	}
	c.applied = gen

	if err != nil {
		c.log.Warn("models fetch failed",
			zap.String("fetch_id", fetchID),
			zap.String("outcome", modelsapi.Outcome(err)),
			zap.Error(err))
		c.state = Failed{Message: FetchFailedMessage}
		return
	}

	c.log.Debug("models fetch succeeded",
		zap.String("fetch_id", fetchID),
		zap.Int("categories", len(payload)))
	c.state = Ready{Payload: payload}
}
