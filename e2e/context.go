// Package e2e drives a running panguard instance over HTTP with godog
// feature files. The suite is black box: it knows the API surface, not the
// implementation.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// TestContext issues requests against the service under test and records the
// last response for assertion steps. Configuration comes from the environment:
//
//	PANGUARD_E2E_URL      base URL of a running instance (default http://localhost:8080)
//	PANGUARD_E2E_TOKEN    bearer token attached to requests when set
//	PANGUARD_E2E_API_KEY  API key attached to requests when set
//
// Run the target instance with PANGUARD_AUTH_DISABLED=true when no credential
// is configured.
type TestContext struct {
	baseURL string
	token   string
	apiKey  string
	client  *http.Client

	lastStatus int
	lastBody   []byte
	lastHeader http.Header
}

// NewTestContext builds a context from the environment. Each scenario gets a
// fresh one so recorded responses cannot leak between scenarios.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("PANGUARD_E2E_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   os.Getenv("PANGUARD_E2E_TOKEN"),
		apiKey:  os.Getenv("PANGUARD_E2E_API_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// POST sends a JSON body to path and records the response.
func (tc *TestContext) POST(path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, tc.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	tc.authorize(req)

	return tc.do(req)
}

// GET requests path with optional extra headers and records the response.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequest(http.MethodGet, tc.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	tc.authorize(req)

	return tc.do(req)
}

// GetResponseField returns a top-level field from the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var payload map[string]any
	if err := json.Unmarshal(tc.lastBody, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response %q: %w", tc.lastBody, err)
	}
	value, ok := payload[field]
	if !ok {
		return nil, fmt.Errorf("field %q not present in response: %s", field, tc.lastBody)
	}
	return value, nil
}

// GetLastResponseStatus returns the status code of the last response.
func (tc *TestContext) GetLastResponseStatus() int { return tc.lastStatus }

// GetLastResponseBody returns the raw body of the last response.
func (tc *TestContext) GetLastResponseBody() []byte { return tc.lastBody }

// GetLastResponseHeader returns a header value from the last response.
func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.lastHeader == nil {
		return ""
	}
	return tc.lastHeader.Get(name)
}

func (tc *TestContext) authorize(req *http.Request) {
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	if tc.apiKey != "" {
		req.Header.Set("X-API-Key", tc.apiKey)
	}
}

func (tc *TestContext) do(req *http.Request) error {
	res, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	tc.lastStatus = res.StatusCode
	tc.lastBody = body
	tc.lastHeader = res.Header
	return nil
}
