package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// Backend is a fake models backend serving GET /api/models and GET /api/health.
type Backend struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	gate   chan struct{}

	hits atomic.Int64
}

// NewBackend starts a fake backend that answers /api/models with status and
// body. Held requests are released and the server closed when the test ends.
func NewBackend(t *testing.T, status int, body string) *Backend {
	t.Helper()
	b := &Backend{status: status, body: body}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models", b.serveModels)
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	b.Server = httptest.NewServer(mux)
	t.Cleanup(func() {
		b.Release()
		b.Close()
	})
	return b
}

// APIBase returns the base URL a models client should be built with.
func (b *Backend) APIBase() string {
	return b.URL + "/api"
}

// Respond changes the answer for subsequent /api/models requests.
func (b *Backend) Respond(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status, b.body = status, body
}

// Hold makes /api/models block until Release is called.
func (b *Backend) Hold() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gate = make(chan struct{})
}

// Release unblocks requests parked by Hold.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gate != nil {
		close(b.gate)
		b.gate = nil
	}
}

// Hits returns how many /api/models requests were received.
func (b *Backend) Hits() int64 {
	return b.hits.Load()
}

func (b *Backend) serveModels(w http.ResponseWriter, r *http.Request) {
	b.hits.Add(1)

	b.mu.Lock()
	gate, status, body := b.gate, b.status, b.body
	b.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
