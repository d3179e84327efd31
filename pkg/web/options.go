package web

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

type Options struct {
	BackendURL   string
	ProxyPrefix  string
	APIPrefix    string
	SearchParam  string
	ScopeParam   string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	AllowOrigins []string
	PageTimeout  time.Duration
	Title        string

	Logger *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		ProxyPrefix:  "/api/backend",
		APIPrefix:    "/api",
		SearchParam:  "q",
		ScopeParam:   "scope",
		LimitParam:   "limit",
		DefaultLimit: 50,
		MaxLimit:     200,
		PageTimeout:  10 * time.Second,
		Title:        "Purchase order",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}
	opts.APIPrefix = "/" + strings.Trim(opts.APIPrefix, "/")
	if opts.ProxyPrefix == "" {
		opts.ProxyPrefix = opts.APIPrefix + "/backend"
	}
	opts.ProxyPrefix = "/" + strings.Trim(opts.ProxyPrefix, "/")
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.ScopeParam == "" {
		opts.ScopeParam = "scope"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.BackendURL = strings.TrimRight(strings.TrimSpace(opts.BackendURL), "/")
	if opts.AllowOrigins != nil {
		opts.AllowOrigins = append([]string{}, opts.AllowOrigins...)
	}
	return opts
}

// WithBackendURL sets the proxy target and the CSP connect-src origin.
func WithBackendURL(url string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BackendURL = url
	}
}

func WithProxyPrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ProxyPrefix = prefix
	}
}

func WithLimits(defaultLimit, maxLimit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = defaultLimit
		o.MaxLimit = maxLimit
	}
}

// WithAllowOrigins restricts CORS on the API routes. Empty or "*" allows any
// origin.
func WithAllowOrigins(origins ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AllowOrigins = append([]string{}, origins...)
	}
}

func WithPageTimeout(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageTimeout = d
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
