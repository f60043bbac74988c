// file: internal/token/fetcher.go

package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"apiprobe/config"
)

// Token is the cached credential. AccessToken and Expiry always travel
// together; the cache never updates one without the other.
type Token struct {
	AccessToken string
	Expiry      time.Time
}

// Fetcher obtains a fresh token from the issuer. Every call performs a full
// client-credentials exchange; there is no refresh-token logic.
type Fetcher interface {
	Fetch(ctx context.Context) (Token, error)
}

// IssuerFetcher performs the client-credentials grant against
// {issuerUrl}/oauth/token using the oauth2 library.
type IssuerFetcher struct {
	cc         *clientcredentials.Config
	httpClient *http.Client
	timeout    time.Duration
}

// NewIssuerFetcher validates the auth configuration and builds a fetcher.
// Blank required parameters fail fast with *ConfigError.
func NewIssuerFetcher(cfg config.AuthConfig) (*IssuerFetcher, error) {
	switch {
	case strings.TrimSpace(cfg.IssuerURL) == "":
		return nil, &ConfigError{Field: "issuerUrl"}
	case strings.TrimSpace(cfg.ClientID) == "":
		return nil, &ConfigError{Field: "clientId"}
	case strings.TrimSpace(cfg.ClientSecret) == "":
		return nil, &ConfigError{Field: "clientSecret"}
	case strings.TrimSpace(cfg.Audience) == "":
		return nil, &ConfigError{Field: "audience"}
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 40 * time.Second
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimRight(cfg.IssuerURL, "/") + "/oauth/token",
		Scopes:       cfg.Scopes,
		EndpointParams: url.Values{
			"audience": {cfg.Audience},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return &IssuerFetcher{
		cc:         cc,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}, nil
}

// Fetch performs a single token exchange. Issuer failures are translated to
// *UpstreamError carrying the status code and raw body.
func (f *IssuerFetcher) Fetch(ctx context.Context) (Token, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// Route the oauth2 library through our bounded HTTP client
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)

	tok, err := f.cc.Token(ctx)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			status := 0
			if rerr.Response != nil {
				status = rerr.Response.StatusCode
			}
			return Token{}, &UpstreamError{StatusCode: status, Body: string(rerr.Body)}
		}
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return Token{}, fmt.Errorf("token request failed: %w", err)
		}
		// The issuer answered with a success status but the token payload
		// was unusable (missing or empty access_token, bad JSON)
		return Token{}, &UpstreamError{StatusCode: http.StatusOK, Body: err.Error()}
	}

	if tok.AccessToken == "" {
		return Token{}, &UpstreamError{StatusCode: http.StatusOK, Body: "response contained no access token"}
	}

	return Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}
