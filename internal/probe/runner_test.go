// file: internal/probe/runner_test.go

package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apiprobe/config"
)

// staticTokens is a TokenProvider returning a fixed token
type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func newTestRunner(serverURL string) *Runner {
	return NewRunner(serverURL, config.HTTPClientConfig{
		Timeout: 5 * time.Second,
	}, staticTokens("probe-token"), nil, nil)
}

func TestRunnerAttachesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer probe-token" {
			t.Errorf("Authorization = %q, want Bearer probe-token", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	plan := &Plan{Checks: []Check{
		{Name: "user", Method: "GET", Path: "/user", ExpectStatus: 200},
	}}

	results := newTestRunner(server.URL).Run(context.Background(), plan)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if !results[0].OK() {
		t.Errorf("result not OK: %v", results[0].Err)
	}
	if results[0].StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", results[0].StatusCode)
	}
}

func TestRunnerStatusMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	plan := &Plan{Checks: []Check{
		{Name: "user", Method: "GET", Path: "/user", ExpectStatus: 200},
	}}

	results := newTestRunner(server.URL).Run(context.Background(), plan)
	if results[0].OK() {
		t.Error("result OK despite status mismatch")
	}
	if results[0].StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", results[0].StatusCode)
	}
}

func TestRunnerContinuesAfterFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	plan := &Plan{Checks: []Check{
		{Name: "broken", Method: "GET", Path: "/broken", ExpectStatus: 200},
		{Name: "healthy", Method: "GET", Path: "/user", ExpectStatus: 200},
	}}

	results := newTestRunner(server.URL).Run(context.Background(), plan)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].OK() {
		t.Error("results[0] OK, want failure")
	}
	if !results[1].OK() {
		t.Errorf("results[1] failed: %v", results[1].Err)
	}
}

func TestRunnerTransportError(t *testing.T) {
	// Point at a closed server to force a transport-level failure
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	plan := &Plan{Checks: []Check{
		{Name: "user", Method: "GET", Path: "/user", ExpectStatus: 200},
	}}

	results := newTestRunner(server.URL).Run(context.Background(), plan)
	if results[0].OK() {
		t.Error("result OK despite transport error")
	}
	if results[0].StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", results[0].StatusCode)
	}
}

func TestRunnerExpectedNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	// A 404 can be the expected outcome, e.g. probing that an endpoint
	// is absent
	plan := &Plan{Checks: []Check{
		{Name: "absent", Method: "GET", Path: "/nope", ExpectStatus: 404},
	}}

	results := newTestRunner(server.URL).Run(context.Background(), plan)
	if !results[0].OK() {
		t.Errorf("result not OK: %v", results[0].Err)
	}
}
