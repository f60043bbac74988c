// file: internal/github/types.go

package github

import "time"

// User is a GitHub user profile
type User struct {
	Login       string    `json:"login"`
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository is a GitHub repository
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	HTMLURL       string `json:"html_url"`
	Language      string `json:"language"`
	Stargazers    int    `json:"stargazers_count"`
	OpenIssues    int    `json:"open_issues_count"`
	Archived      bool   `json:"archived"`
}

// Rate is one rate-limit bucket
type Rate struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"` // Unix seconds
}

// RateLimit is the response of GET /rate_limit
type RateLimit struct {
	Resources struct {
		Core   Rate `json:"core"`
		Search Rate `json:"search"`
	} `json:"resources"`
	Rate Rate `json:"rate"`
}
