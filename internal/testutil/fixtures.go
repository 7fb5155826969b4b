package testutil

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/modeldash/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Model returns a fully populated record for company.
func Model(id, company string) models.Model {
	return models.Model{
		ID:          id,
		DisplayName: fmt.Sprintf("%s Model %s", company, id),
		Company:     company,
		Description: "A test model.",
		Downloads:   models.CountOf(1500),
		Likes:       models.CountOf(42),
		Tags:        []string{"transformers", "pytorch", "text-generation"},
		ModelSize:   "13.5GB",
		HFID:        "test-org/" + id,
	}
}

// UnavailableModel returns a record shaped like the backend's fallback when
// it could not reach Hugging Face for a model.
func UnavailableModel(id, company string) models.Model {
	return models.Model{
		ID:          id,
		DisplayName: fmt.Sprintf("%s Model %s", company, id),
		Company:     company,
		Description: "Model information unavailable",
		Downloads:   models.Unavailable(),
		Likes:       models.Unavailable(),
		Tags:        []string{},
		ModelSize:   models.NotAvailable,
		HFID:        "test-org/" + id,
		LastUpdated: models.NotAvailable,
	}
}

// TwoLanguageModelsPayload has two language models and an empty image list.
func TwoLanguageModelsPayload() models.Payload {
	return models.Payload{
		models.CategoryLanguage: {
			Model("gemini", "Google"),
			Model("llama", "Meta"),
		},
		models.CategoryImage: {},
	}
}

// TwoLanguageModelsJSON is TwoLanguageModelsPayload as the backend sends it.
const TwoLanguageModelsJSON = `{
  "language_models": [
    {"id":"gemini","display_name":"Gemini Ultra","company":"Google","description":"Multimodal model.",
     "downloads":1500,"likes":42,"tags":["transformers","pytorch","text-generation"],
     "model_size":"13.5GB","hf_id":"google/gemma-7b","last_updated":"2024-02-01"},
    {"id":"llama","display_name":"Llama 2 70B","company":"Meta",
     "downloads":2300000,"likes":"N/A","tags":["a","b","c","d","e"],
     "model_size":"N/A","hf_id":"meta-llama/Llama-2-70b-hf"}
  ],
  "image_models": []
}`
