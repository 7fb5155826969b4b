package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dalemusser/modeldash/internal/app/features/dashboard"
	"github.com/dalemusser/modeldash/internal/app/system/modelsapi"
	"github.com/dalemusser/modeldash/internal/app/system/ratelimit"
	"github.com/dalemusser/modeldash/internal/app/system/viewsession"
	"github.com/dalemusser/modeldash/internal/testutil"
	"go.uber.org/zap"
)

type stateBody struct {
	ViewID   string                `json:"view_id"`
	State    string                `json:"state"`
	Message  string                `json:"message"`
	Sections []dashboard.SectionVM `json:"sections"`
}

type testEnv struct {
	backend *testutil.Backend
	handler *dashboard.Handler
	router  http.Handler
}

func newTestEnv(t *testing.T, status int, body string) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	backend := testutil.NewBackend(t, status, body)
	sessions, err := viewsession.NewManager("test-session-key-must-be-32-chars-long", "test-view", "", false, logger)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	h := dashboard.NewHandler(modelsapi.New(backend.APIBase(), nil), dashboard.NewRegistry(), sessions, logger)
	return &testEnv{backend: backend, handler: h, router: dashboard.Routes(h, nil)}
}

// mount performs GET / and returns the view path and session cookies.
func (e *testEnv) mount(t *testing.T) (string, []*http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("mount: expected %d, got %d", http.StatusSeeOther, rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/views/") {
		t.Fatalf("mount: unexpected Location %q", loc)
	}
	return loc, rec.Result().Cookies()
}

func (e *testEnv) do(method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) state(t *testing.T, viewPath string, cookies []*http.Cookie) stateBody {
	t.Helper()
	rec := e.do(http.MethodGet, viewPath+"/state", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var body stateBody
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("state: decode failed: %v", err)
	}
	return body
}

// waitState polls the state endpoint until it reports want.
func (e *testEnv) waitState(t *testing.T, viewPath string, cookies []*http.Cookie, want string) stateBody {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		body := e.state(t, viewPath, cookies)
		if body.State == want {
			return body
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for state %q, last %q", want, body.State)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewHandler(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	if env.handler == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestMount_IssuesOneRequestAndBecomesReady(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, testutil.TwoLanguageModelsJSON)
	env.backend.Hold()

	viewPath, cookies := env.mount(t)
	if len(cookies) == 0 {
		t.Fatal("expected session cookie on mount")
	}

	if got := env.state(t, viewPath, cookies).State; got != "loading" {
		t.Errorf("expected loading while backend is held, got %q", got)
	}

	env.backend.Release()
	body := env.waitState(t, viewPath, cookies, "ready")

	if env.backend.Hits() != 1 {
		t.Errorf("expected exactly one backend request, got %d", env.backend.Hits())
	}
	if len(body.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(body.Sections))
	}
	if body.Sections[0].Key != "language_models" || len(body.Sections[0].Cards) != 2 {
		t.Errorf("unexpected section: %+v", body.Sections[0])
	}
}

func TestMount_FailureThenRetry(t *testing.T) {
	env := newTestEnv(t, http.StatusServiceUnavailable, `down`)

	viewPath, cookies := env.mount(t)
	body := env.waitState(t, viewPath, cookies, "failed")
	if body.Message != dashboard.FetchFailedMessage {
		t.Errorf("Message: got %q", body.Message)
	}
	if len(body.Sections) != 0 {
		t.Error("expected no sections for a failed view")
	}

	env.backend.Respond(http.StatusOK, testutil.TwoLanguageModelsJSON)
	env.backend.Hold()

	rec := env.do(http.MethodPost, viewPath+"/retry", cookies)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != viewPath {
		t.Fatalf("retry: got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	if got := env.state(t, viewPath, cookies).State; got != "loading" {
		t.Errorf("expected loading after retry, got %q", got)
	}

	env.backend.Release()
	env.waitState(t, viewPath, cookies, "ready")
	if env.backend.Hits() != 2 {
		t.Errorf("expected 2 backend requests, got %d", env.backend.Hits())
	}
}

func TestMalformedBodyFails(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"language_models": "nope"`)
	viewPath, cookies := env.mount(t)
	env.waitState(t, viewPath, cookies, "failed")
}

func TestView_ForeignSessionRedirectsHome(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	viewPath, _ := env.mount(t)

	rec := env.do(http.MethodGet, viewPath, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to /, got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRetry_UnknownViewRedirectsHome(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	_, cookies := env.mount(t)

	rec := env.do(http.MethodPost, "/views/does-not-exist/retry", cookies)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to /, got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestState_UnknownViewIs404(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	rec := env.do(http.MethodGet, "/views/does-not-exist/state", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestServeView_OwnedView(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	viewPath, cookies := env.mount(t)

	// Handler will try to render a template which may panic without initialized templates
	func() {
		defer func() {
			if r := recover(); r != nil {
				// Template rendering may panic in tests - that's expected
			}
		}()
		rec := env.do(http.MethodGet, viewPath, cookies)
		if rec.Code == http.StatusSeeOther {
			t.Error("owned view should render, not redirect")
		}
	}()
}

func TestRoutes(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	if dashboard.Routes(env.handler, nil) == nil {
		t.Fatal("Routes() returned nil")
	}
}

func TestRoutes_MountGuardLimitsMountsOnly(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	limiter := ratelimit.New(1, time.Minute)
	tooMany := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	env.router = dashboard.Routes(env.handler, limiter.Middleware(tooMany))

	viewPath, cookies := env.mount(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second mount: got %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if env.handler.Views.Len() != 1 {
		t.Errorf("expected 1 mounted view, got %d", env.handler.Views.Len())
	}

	// Other view routes are not limited.
	state := env.do(http.MethodGet, viewPath+"/state", cookies)
	if state.Code != http.StatusOK {
		t.Errorf("state: got %d, want %d", state.Code, http.StatusOK)
	}
}

func TestServeView_UnknownViewRedirectsHome(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/views/nope", nil), "viewID", "nope")
	rec := testutil.NewRecorder()

	env.handler.ServeView(rec, req)

	rec.AssertRedirect(t, "/")
}

func TestServeState_UnknownViewDirect(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{}`)
	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/views/nope/state", nil), "viewID", "nope")
	rec := testutil.NewRecorder()

	env.handler.ServeState(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "view not found")
}
