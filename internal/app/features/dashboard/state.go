package dashboard

import "github.com/dalemusser/modeldash/internal/domain/models"

// FetchFailedMessage is the only error text a visitor ever sees.
const FetchFailedMessage = "Unable to fetch model data. Please check if the backend server is running."

// State is the fetch state of one dashboard view. It is exactly one of
// Loading, Ready, or Failed.
type State interface {
	// Kind returns "loading", "ready", or "failed".
	Kind() string
	sealed()
}

// Loading means a request is in flight and nothing has resolved since it
// was issued.
type Loading struct{}

// Ready holds the last successfully fetched payload, verbatim.
type Ready struct {
	Payload models.Payload
}

// Failed holds the user-facing message for the last failed fetch.
type Failed struct {
	Message string
}

func (Loading) Kind() string { return "loading" }
func (Ready) Kind() string   { return "ready" }
func (Failed) Kind() string  { return "failed" }

func (Loading) sealed() {}
func (Ready) sealed()   {}
func (Failed) sealed()  {}
