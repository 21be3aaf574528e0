// Raw HTTP access shared by the movie and auth services
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/shared"
)

// APIService provides methods for making raw HTTP requests against a base URL.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewAPIService creates a new API service instance.
//
// A nil client uses [http.DefaultClient]; a nil logger discards output.
func NewAPIService(baseURL string, client *http.Client, logger *log.Logger) *APIService {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Status     string
	Endpoint   string
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v.
func (r *APIResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Err returns an [*APIError] for non-2xx responses and nil otherwise.
func (r *APIResponse) Err() error {
	if r.OK() {
		return nil
	}
	return &APIError{StatusCode: r.StatusCode, Status: r.Status, Endpoint: r.Endpoint, Body: r.Body}
}

// APIError describes a non-2xx response.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: %s returned status %d", shared.ErrAPIRequest, e.Endpoint, e.StatusCode)
}

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// Resolve joins path to the base URL; absolute URLs are returned unchanged.
func (a *APIService) Resolve(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if path != "" && !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "?") {
		path = "/" + path
	}
	return a.baseURL + path
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.Resolve(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return a.do(req)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Resolve(path), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return a.do(req)
}

// PostJSON encodes body as JSON and posts it to path.
func (a *APIService) PostJSON(ctx context.Context, path string, body any) (*APIResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return a.Post(ctx, path, data)
}

func (a *APIService) do(req *http.Request) (*APIResponse, error) {
	endpoint := req.URL.Redacted()

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Debug("request failed", "method", req.Method, "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	a.logger.Debug("request complete", "method", req.Method, "endpoint", endpoint, "status", resp.StatusCode)

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Endpoint:   endpoint,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
