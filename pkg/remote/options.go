package remote

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MatchMode selects how the free-text query constrains the display-name field.
type MatchMode string

const (
	// MatchExact sends an equality condition (case-sensitive).
	MatchExact MatchMode = "exact"
	// MatchLike sends a LoopBack `like` condition, a case-sensitive substring match.
	MatchLike MatchMode = "like"
)

// ScopePolicy decides what a child level returns when no ancestor is selected.
type ScopePolicy string

const (
	// ScopeSuperset performs an unscoped fetch and returns every record.
	ScopeSuperset ScopePolicy = "superset"
	// ScopeEmpty returns an empty list without touching the network.
	ScopeEmpty ScopePolicy = "empty"
)

// Endpoints holds the list paths relative to the base URL.
type Endpoints struct {
	Countries string `json:"countries" yaml:"countries"`
	Harbors   string `json:"harbors" yaml:"harbors"`
	Items     string `json:"items" yaml:"items"`
}

// DefaultEndpoints returns the backend's standard resource paths.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Countries: "/negaras",
		Harbors:   "/pelabuhans",
		Items:     "/barangs",
	}
}

// Merge fills empty paths from fallback.
func (e Endpoints) Merge(fallback Endpoints) Endpoints {
	if strings.TrimSpace(e.Countries) == "" {
		e.Countries = fallback.Countries
	}
	if strings.TrimSpace(e.Harbors) == "" {
		e.Harbors = fallback.Harbors
	}
	if strings.TrimSpace(e.Items) == "" {
		e.Items = fallback.Items
	}
	return e
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the backend origin, e.g. http://localhost:3001 or a
// same-origin proxy prefix such as http://localhost:3000/api/backend.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithHTTPClient injects the HTTP client used for every fetch.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoints overrides the list paths. Empty fields keep their defaults.
func WithEndpoints(endpoints Endpoints) Option {
	return func(c *Client) {
		c.endpoints = endpoints.Merge(c.endpoints)
	}
}

// WithMatchMode selects exact or substring name matching.
func WithMatchMode(mode MatchMode) Option {
	return func(c *Client) {
		switch mode {
		case MatchExact, MatchLike:
			c.match = mode
		}
	}
}

// WithScopePolicy selects the behaviour for unscoped child fetches.
func WithScopePolicy(policy ScopePolicy) Option {
	return func(c *Client) {
		switch policy {
		case ScopeSuperset, ScopeEmpty:
			c.scopePolicy = policy
		}
	}
}

// WithTimeout bounds every fetch. Zero disables the per-call deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger attaches a logger for skipped records and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
