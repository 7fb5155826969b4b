package modelsapi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/modeldash/internal/app/system/modelsapi"
	"github.com/dalemusser/modeldash/internal/domain/models"
	"github.com/dalemusser/modeldash/internal/testutil"
)

func TestFetchModels_Success(t *testing.T) {
	backend := testutil.NewBackend(t, http.StatusOK, testutil.TwoLanguageModelsJSON)
	client := modelsapi.New(backend.APIBase(), nil)

	payload, err := client.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}

	lang := payload[models.CategoryLanguage]
	if len(lang) != 2 {
		t.Fatalf("expected 2 language models, got %d", len(lang))
	}
	// Backend order is preserved.
	if lang[0].ID != "gemini" || lang[1].ID != "llama" {
		t.Errorf("unexpected order: %q, %q", lang[0].ID, lang[1].ID)
	}
	if _, ok := lang[1].Likes.Value(); ok {
		t.Error("expected llama likes to be unavailable")
	}
	if imgs, ok := payload[models.CategoryImage]; !ok || len(imgs) != 0 {
		t.Errorf("expected empty image_models entry, got %v (present=%v)", imgs, ok)
	}
	if backend.Hits() != 1 {
		t.Errorf("expected 1 request, got %d", backend.Hits())
	}
}

func TestFetchModels_TrailingSlashBase(t *testing.T) {
	backend := testutil.NewBackend(t, http.StatusOK, `{}`)
	client := modelsapi.New(backend.APIBase()+"/", nil)

	if _, err := client.FetchModels(context.Background()); err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	if client.BaseURL() != backend.APIBase() {
		t.Errorf("BaseURL: got %q, want %q", client.BaseURL(), backend.APIBase())
	}
}

func TestFetchModels_NonSuccessStatus(t *testing.T) {
	backend := testutil.NewBackend(t, http.StatusInternalServerError, `boom`)
	client := modelsapi.New(backend.APIBase(), nil)

	_, err := client.FetchModels(context.Background())
	var se *modelsapi.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode: got %d", se.StatusCode)
	}
	if se.Body != "boom" {
		t.Errorf("Body: got %q", se.Body)
	}
	if got := modelsapi.Outcome(err); got != "status" {
		t.Errorf("Outcome: got %q, want status", got)
	}
}

func TestFetchModels_MalformedBody(t *testing.T) {
	for _, body := range []string{`not json`, `[1,2,3]`, `null`} {
		t.Run(body, func(t *testing.T) {
			backend := testutil.NewBackend(t, http.StatusOK, body)
			client := modelsapi.New(backend.APIBase(), nil)

			_, err := client.FetchModels(context.Background())
			if !errors.Is(err, modelsapi.ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if got := modelsapi.Outcome(err); got != "malformed" {
				t.Errorf("Outcome: got %q, want malformed", got)
			}
		})
	}
}

func TestFetchModels_NetworkError(t *testing.T) {
	backend := testutil.NewBackend(t, http.StatusOK, `{}`)
	base := backend.APIBase()
	backend.Close()

	_, err := modelsapi.New(base, nil).FetchModels(context.Background())
	if err == nil {
		t.Fatal("expected error from closed backend")
	}
	if got := modelsapi.Outcome(err); got != "network" {
		t.Errorf("Outcome: got %q, want network", got)
	}
}

func TestHealth(t *testing.T) {
	backend := testutil.NewBackend(t, http.StatusOK, `{}`)
	status, err := modelsapi.New(backend.APIBase(), nil).Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if status != "healthy" {
		t.Errorf("status: got %q, want healthy", status)
	}
}

func TestOutcome_Nil(t *testing.T) {
	if got := modelsapi.Outcome(nil); got != "ok" {
		t.Errorf("Outcome(nil): got %q", got)
	}
}
