package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/flick/internal/shared"
	tu "github.com/desertthunder/flick/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/", customClient)

			if srv.BaseURL() != "http://example.com" {
				t.Errorf("expected trailing slash trimmed, got %s", srv.BaseURL())
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.BaseURL() != DefaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", DefaultBaseURL, srv.BaseURL())
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})
	})

	t.Run("Do", func(t *testing.T) {
		t.Run("Sets Standard Headers", func(t *testing.T) {
			var got http.Header
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil).WithUserAgent("flick-test")
			_, err := srv.Do(context.Background(), Request{Method: http.MethodGet, Path: "/movies", Token: "tok"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got.Get("Authorization") != "Bearer tok" {
				t.Errorf("expected bearer header, got %q", got.Get("Authorization"))
			}
			if got.Get("User-Agent") != "flick-test" {
				t.Errorf("expected user agent, got %q", got.Get("User-Agent"))
			}
			if got.Get("X-Request-ID") == "" {
				t.Error("expected a request id")
			}
			if got.Get("Content-Type") != "" {
				t.Error("expected no content type without a body")
			}
		})

		t.Run("Omits Authorization Without Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "" {
					t.Errorf("expected no authorization header, got %q", r.Header.Get("Authorization"))
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			if _, err := NewAPIService(server.URL, nil).Get(context.Background(), "/ratings"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Unique Request IDs", func(t *testing.T) {
			seen := make(map[string]bool)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen[r.Header.Get("X-Request-ID")] = true
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			for range 3 {
				if _, err := srv.Get(context.Background(), "/ratings"); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}
			if len(seen) != 3 {
				t.Errorf("expected 3 distinct request ids, got %d", len(seen))
			}
		})

		t.Run("Extra Headers", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("X-Trace") != "abc" {
					t.Errorf("expected X-Trace header, got %q", r.Header.Get("X-Trace"))
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			req := Request{Method: http.MethodGet, Path: "/ratings", Headers: map[string]string{"X-Trace": "abc"}}
			if _, err := NewAPIService(server.URL, nil).Do(context.Background(), req); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/test" {
					t.Errorf("expected path '/test', got %s", r.URL.Path)
				}

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Custom-Header", "test-value")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "success"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response to be JSON")
			}
			jsonMap, ok := resp.JSONData.(map[string]any)
			if !ok || jsonMap["status"] != "success" {
				t.Errorf("unexpected JSONData: %v", resp.JSONData)
			}
			if resp.Headers.Get("X-Custom-Header") != "test-value" {
				t.Errorf("expected custom header 'test-value', got %s", resp.Headers.Get("X-Custom-Header"))
			}
		})

		t.Run("Successful Request With Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if resp.JSONData != nil {
				t.Error("expected JSONData to be nil")
			}
			if string(resp.Body) != "plain text response" {
				t.Errorf("expected body 'plain text response', got %s", string(resp.Body))
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			_, err := srv.Get(context.Background(), "/test\x00invalid")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			srv := NewAPIService(server.URL, nil)
			_, err := srv.Get(ctx, "/test")

			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("Sends JSON Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
				}

				body, _ := io.ReadAll(r.Body)
				var data map[string]string
				if err := json.Unmarshal(body, &data); err != nil {
					t.Errorf("failed to unmarshal request body: %v", err)
				}
				if data["test"] != "data" {
					t.Errorf("expected request data 'test:data', got %v", data)
				}

				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]string{"id": "123"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			requestData, _ := json.Marshal(map[string]string{"test": "data"})
			resp, err := srv.Post(context.Background(), "/test", requestData)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected status 201, got %d", resp.StatusCode)
			}
		})

		t.Run("Empty Request Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				if len(body) != 0 {
					t.Errorf("expected empty body, got %d bytes", len(body))
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Post(context.Background(), "/test", []byte{})

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("empty body should not be JSON")
			}
		})
	})

	t.Run("Curl", func(t *testing.T) {
		srv := NewAPIService("http://example.com", nil)
		out := srv.Curl(Request{Method: http.MethodPost, Path: "/movies", Token: "secret", Body: []byte(`{"title":"Coco"}`)})

		if strings.Contains(out, "secret") {
			t.Errorf("token leaked: %s", out)
		}
		for _, want := range []string{"-X POST", "http://example.com/movies", "Content-Type: application/json", `{"title":"Coco"}`} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %s", want, out)
			}
		}
	})
}

func TestAPIError(t *testing.T) {
	tt := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"message":"Title is required"}`, want: "Title is required"},
		{name: "error field", body: `{"error":" nope "}`, want: "nope"},
		{name: "detail field", body: `{"detail":"bad id"}`, want: "bad id"},
		{name: "non-string message", body: `{"message":42}`, want: ""},
		{name: "plain text", body: `Internal Server Error`, want: ""},
		{name: "empty", body: ``, want: ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := newAPIError(&APIResponse{StatusCode: 500, Body: []byte(tc.body)})
			if err.Message != tc.want {
				t.Errorf("expected message %q, got %q", tc.want, err.Message)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Error("APIError should match ErrAPIRequest")
			}
			if !strings.Contains(err.Error(), "status 500") {
				t.Errorf("expected status in error text, got %s", err)
			}
		})
	}
}
