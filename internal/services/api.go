// API service for making raw HTTP requests to the movie list service
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flick/internal/shared"
)

const (
	DefaultBaseURL   = "http://127.0.0.1:8000"
	DefaultUserAgent = "flick/0.3.0"
)

// APIService provides methods for making raw HTTP requests to the movie list service.
type APIService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
}

// NewAPIService creates a new API service instance for the movie list service.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  DefaultUserAgent,
		httpClient: client,
		logger:     log.New(io.Discard),
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func (a *APIService) WithUserAgent(ua string) *APIService {
	if ua != "" {
		a.userAgent = ua
	}
	return a
}

// WithLogger sets the logger used for request tracing.
func (a *APIService) WithLogger(l *log.Logger) *APIService {
	if l != nil {
		a.logger = l
	}
	return a
}

// BaseURL returns the configured endpoint prefix.
func (a *APIService) BaseURL() string { return a.baseURL }

// Request describes a single call. Path is appended to the base URL and may carry a query string.
type Request struct {
	Method  string
	Path    string
	Body    []byte
	Token   string
	Headers map[string]string
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do performs req and returns the raw response. Transport and read failures wrap [shared.ErrAPIRequest].
func (a *APIService) Do(ctx context.Context, req Request) (*APIResponse, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, a.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", shared.ErrAPIRequest, err)
	}

	requestID := shared.GenerateID()
	for k, v := range a.headers(req, requestID) {
		httpReq.Header.Set(k, v)
	}

	a.logger.Debug("request", "method", req.Method, "path", req.Path, "request_id", requestID)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	a.logger.Debug("response", "status", resp.StatusCode, "request_id", requestID, "bytes", len(data))

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	var jsonData any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &jsonData); err == nil {
			apiResp.IsJSON = true
			apiResp.JSONData = jsonData
		}
	}

	return apiResp, nil
}

// Get performs an unauthenticated GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// Post performs an unauthenticated POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: data})
}

// Curl renders req as an equivalent cURL command with the token masked.
func (a *APIService) Curl(req Request) string {
	return shared.CurlCommand(req.Method, a.baseURL+req.Path, a.headers(req, "<generated>"), req.Body)
}

func (a *APIService) headers(req Request, requestID string) map[string]string {
	h := map[string]string{
		"Accept":       "application/json",
		"User-Agent":   a.userAgent,
		"X-Request-ID": requestID,
	}
	for k, v := range req.Headers {
		h[k] = v
	}
	if len(req.Body) > 0 {
		h["Content-Type"] = "application/json"
	}
	if req.Token != "" {
		h["Authorization"] = "Bearer " + req.Token
	}
	return h
}
