// Package modelsapi is the HTTP client for the model metadata backend.
//
// The backend exposes:
//
//	GET {base}/models  -> {"language_models":[...], "image_models":[...], ...}
//	GET {base}/health  -> {"status":"healthy", ...}
//
// No headers, parameters, or credentials are sent.
package modelsapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/dalemusser/modeldash/internal/domain/models"
)

// ErrMalformed reports a 2xx response whose body is not a category payload.
var ErrMalformed = errors.New("malformed models payload")

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// maxErrorBody caps how much of an error body is kept for logging.
const maxErrorBody = 512

// Client talks to the models backend rooted at BaseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL (e.g. http://localhost:5000/api).
// A nil httpClient uses a plain http.Client with the transport's defaults.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the backend root this client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchModels performs GET {base}/models and decodes the whole payload.
// The payload is returned only if the entire body decodes.
func (c *Client) FetchModels(ctx context.Context) (models.Payload, error) {
	resp, err := c.get(ctx, "/models")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload models.Payload
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	return payload, nil
}

// Health performs GET {base}/health and returns the reported status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return body.Status, nil
}

// get issues a GET and returns the response only for 2xx statuses.
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

// Outcome classifies err for logs and metric labels:
// "ok", "status", "malformed", or "network".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return "status"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "network"
	}
}
