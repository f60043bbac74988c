// file: internal/token/errors.go

package token

import "fmt"

// ConfigError reports a missing or blank required auth parameter. It is a
// caller defect and is raised before any network call is made.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("auth configuration: %s is required", e.Field)
}

// UpstreamError reports a token issuer response that could not be used: a
// non-success status or a success response without a usable token. The raw
// body is retained for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("token issuer returned status %d: %s", e.StatusCode, e.Body)
}
