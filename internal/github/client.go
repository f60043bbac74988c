// file: internal/github/client.go

package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"apiprobe/config"
	"apiprobe/internal/logger"
)

// Client limits
const (
	// maxErrorBodySize is the maximum size of an error response body to
	// retain for diagnostics (1MB)
	maxErrorBodySize = 1024 * 1024
)

// TokenProvider supplies the current bearer token for outgoing requests.
// token.Cache satisfies this; reading the token is a brief lock, request
// execution itself is never serialized behind it.
type TokenProvider interface {
	AccessToken() string
}

// Client is an authenticated GitHub REST API client
type Client struct {
	baseURL    string
	apiVersion string
	tokens     TokenProvider
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a GitHub API client that reads its bearer token from
// the given provider before every request
func NewClient(cfg config.GitHubConfig, tokens TokenProvider, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		tokens:     tokens,
		logger:     log,
		httpClient: &http.Client{
			Timeout: cfg.Client.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        cfg.Client.MaxIdleConns,
				MaxIdleConnsPerHost: cfg.Client.MaxIdleConnsPerHost,
				IdleConnTimeout:     cfg.Client.IdleConnTimeout,
			},
		},
	}
}

// AuthenticatedUser returns the profile of the user the token belongs to
func (c *Client) AuthenticatedUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// User returns the public profile of the named user
func (c *Client) User(ctx context.Context, login string) (*User, error) {
	if strings.TrimSpace(login) == "" {
		return nil, fmt.Errorf("github: login cannot be empty")
	}

	var user User
	if err := c.get(ctx, "/users/"+url.PathEscape(login), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListOptions controls pagination for list calls
type ListOptions struct {
	PerPage int
	Page    int
}

// ListRepositories returns repositories accessible to the authenticated user
func (c *Client) ListRepositories(ctx context.Context, opts ListOptions) ([]Repository, error) {
	path := "/user/repos"
	query := url.Values{}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var repos []Repository
	if err := c.get(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// RateLimit returns the current API rate-limit state
func (c *Client) RateLimit(ctx context.Context) (*RateLimit, error) {
	var limit RateLimit
	if err := c.get(ctx, "/rate_limit", &limit); err != nil {
		return nil, err
	}
	return &limit, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
// Non-2xx responses translate to *APIError with status, body, and headers.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Read the current token immediately before the request so an
	// in-flight refresh is picked up
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "apiprobe")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.apiVersion != "" {
		req.Header.Set("X-GitHub-Api-Version", c.apiVersion)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		c.logger.Warn("api request returned non-2xx status",
			"path", path,
			"statusCode", resp.StatusCode,
			"requestId", req.Header.Get("X-Request-ID"))
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Header:     resp.Header,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("api request completed",
		"path", path,
		"statusCode", resp.StatusCode,
		"duration", time.Since(start))

	return nil
}
