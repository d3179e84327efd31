package selectctl

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/remote"
)

// DefaultDebounce is the quiet period before a keystroke triggers a fetch.
const DefaultDebounce = 300 * time.Millisecond

// Page is one fetch result. Detail carries level-specific payload (item
// detail for the item level) through to the parent untouched.
type Page struct {
	Options []model.Option
	Detail  any
}

// FetchFunc loads options for a query within scope.
type FetchFunc func(ctx context.Context, query, scope string) (Page, error)

// FromFetcher adapts a remote.Fetcher.
func FromFetcher(f remote.Fetcher) FetchFunc {
	return func(ctx context.Context, query, scope string) (Page, error) {
		opts, err := f.Fetch(ctx, query, scope)
		if err != nil {
			return Page{}, err
		}
		return Page{Options: opts}, nil
	}
}

// Option configures a Model.
type Option func(*Model)

// WithDebounce overrides the debounce interval. Values <= 0 fetch on every
// query change without waiting.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		m.debounce = d
	}
}

// WithFetchTimeout bounds each fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d >= 0 {
			m.timeout = d
		}
	}
}

// WithPlaceholder sets the search input placeholder.
func WithPlaceholder(text string) Option {
	return func(m *Model) {
		m.Input.Placeholder = text
	}
}

// WithLabel sets the title rendered above the control.
func WithLabel(label string) Option {
	return func(m *Model) {
		m.label = label
	}
}

// WithScope sets the initial ancestor scope.
func WithScope(scope string) Option {
	return func(m *Model) {
		m.scope = scope
	}
}

// WithLogger attaches a logger for discarded responses and fetch failures.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPageSize caps the number of options rendered at once.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}
