// file: internal/github/errors.go

package github

import (
	"fmt"
	"net/http"
)

// APIError reports a non-success API response. Status code, body, and
// headers are retained for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
	Header     http.Header
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: request failed with status %d: %s", e.StatusCode, e.Body)
}
