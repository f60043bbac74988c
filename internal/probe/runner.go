// file: internal/probe/runner.go

package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"apiprobe/config"
	"apiprobe/internal/logger"
)

// maxDrainSize bounds how much of a response body is read before discard
const maxDrainSize = 1024 * 1024

// TokenProvider supplies the current bearer token for check requests
type TokenProvider interface {
	AccessToken() string
}

// Result is the outcome of a single check
type Result struct {
	Check      Check
	StatusCode int
	Duration   time.Duration
	Err        error
}

// OK reports whether the check passed
func (r Result) OK() bool {
	return r.Err == nil
}

// Runner executes check plans against a base URL with a bearer token
// attached to every request
type Runner struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
	logger     *logger.Logger
	metrics    *Metrics
}

// NewRunner creates a check runner
func NewRunner(baseURL string, clientCfg config.HTTPClientConfig, tokens TokenProvider, log *logger.Logger, metrics *Metrics) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Runner{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		logger:  log,
		metrics: metrics,
		httpClient: &http.Client{
			Timeout: clientCfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        clientCfg.MaxIdleConns,
				MaxIdleConnsPerHost: clientCfg.MaxIdleConnsPerHost,
				IdleConnTimeout:     clientCfg.IdleConnTimeout,
			},
		},
	}
}

// Run executes every check in the plan and returns one result per check.
// A failing check does not stop the run.
func (r *Runner) Run(ctx context.Context, plan *Plan) []Result {
	results := make([]Result, 0, len(plan.Checks))
	for _, check := range plan.Checks {
		result := r.runCheck(ctx, check)
		results = append(results, result)

		outcome := "pass"
		if !result.OK() {
			outcome = "fail"
			r.logger.Warn("check failed",
				"check", check.Name,
				"statusCode", result.StatusCode,
				"error", result.Err)
		} else {
			r.logger.Debug("check passed",
				"check", check.Name,
				"statusCode", result.StatusCode,
				"duration", result.Duration)
		}

		if r.metrics != nil {
			r.metrics.IncCheck(check.Name, outcome)
			r.metrics.ObserveCheckDuration(check.Name, result.Duration.Seconds())
		}
	}
	return results
}

// runCheck executes a single check request
func (r *Runner) runCheck(ctx context.Context, check Check) Result {
	start := time.Now()
	result := Result{Check: check}

	req, err := http.NewRequestWithContext(ctx, check.Method, r.baseURL+check.Path, nil)
	if err != nil {
		result.Err = fmt.Errorf("failed to create request: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	if token := r.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "apiprobe")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		result.Err = fmt.Errorf("request failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))

	result.StatusCode = resp.StatusCode
	result.Duration = time.Since(start)

	if resp.StatusCode != check.ExpectStatus {
		result.Err = fmt.Errorf("status %d, want %d", resp.StatusCode, check.ExpectStatus)
	}

	return result
}
