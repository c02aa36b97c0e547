package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockProxyServer serves canned management-API responses for tests
type MockProxyServer struct {
	*httptest.Server
	Responses map[string]MockResponse
}

// MockResponse represents a canned HTTP response
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// NewMockProxyServer creates a new mock proxy server
func NewMockProxyServer(t *testing.T) *MockProxyServer {
	t.Helper()

	ms := &MockProxyServer{
		Responses: make(map[string]MockResponse),
	}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Look up response by path
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		resp, ok := ms.Responses[key]
		if !ok {
			// Try without query parameters
			resp, ok = ms.Responses[r.URL.Path]
		}

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprintf(w, "No mock response configured for %s", key)
			return
		}

		// Set headers
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}

		w.WriteHeader(resp.StatusCode)
		_, _ = fmt.Fprint(w, resp.Body)
	}))

	t.Cleanup(ms.Server.Close)
	return ms
}

// AddResponse adds a canned response for a specific path
func (ms *MockProxyServer) AddResponse(path string, response MockResponse) {
	ms.Responses[path] = response
}

// AddJSONResponse adds a JSON response for a specific path
func (ms *MockProxyServer) AddJSONResponse(path string, statusCode int, body string) {
	ms.Responses[path] = MockResponse{
		StatusCode: statusCode,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}
