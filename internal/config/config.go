// Package config loads orderform settings from defaults, an optional YAML
// file, .env files, and ORDERFORM_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-orderform/pkg/remote"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ORDERFORM_"

type Config struct {
	Backend Backend `yaml:"backend"`
	Form    Form    `yaml:"form"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
}

type Backend struct {
	URL         string             `yaml:"url"`
	Endpoints   remote.Endpoints   `yaml:"endpoints"`
	Match       remote.MatchMode   `yaml:"match"`
	ScopePolicy remote.ScopePolicy `yaml:"scope_policy"`
	Timeout     time.Duration      `yaml:"timeout"`
	Discover    bool               `yaml:"discover"`
}

type Form struct {
	Debounce     time.Duration `yaml:"debounce"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	PageSize     int           `yaml:"page_size"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ProxyPrefix  string        `yaml:"proxy_prefix"`
	AllowOrigins []string      `yaml:"allow_origins"`
	PageTimeout  time.Duration `yaml:"page_timeout"`
}

type Log struct {
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: Backend{
			URL:         "http://localhost:3001",
			Endpoints:   remote.DefaultEndpoints(),
			Match:       remote.MatchExact,
			ScopePolicy: remote.ScopeSuperset,
			Timeout:     10 * time.Second,
		},
		Form: Form{
			Debounce:     300 * time.Millisecond,
			FetchTimeout: 10 * time.Second,
			PageSize:     8,
		},
		Server: Server{
			Addr:        ":8080",
			ProxyPrefix: "/api/backend",
			PageTimeout: 10 * time.Second,
		},
		Log: Log{Format: "console"},
	}
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// Path is an optional YAML file. A missing file is an error.
	Path string
	// EnvFiles are .env files; missing ones are skipped.
	EnvFiles []string
	// Lookup reads the process environment. Defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load builds the configuration and validates it.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.Path, err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", opts.Path, err)
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	dotenv, err := readEnvFiles(opts.EnvFiles)
	if err != nil {
		return Config{}, err
	}
	// Real environment wins over .env, matching godotenv.Load.
	merged := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(merged); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	c.Backend.Endpoints = c.Backend.Endpoints.Merge(remote.DefaultEndpoints())
	return nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	out := map[string]string{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
		for k, v := range values {
			if _, seen := out[k]; !seen {
				out[k] = v
			}
		}
	}
	return out, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []error
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("BACKEND_URL", &c.Backend.URL)
	str("ENDPOINT_COUNTRIES", &c.Backend.Endpoints.Countries)
	str("ENDPOINT_HARBORS", &c.Backend.Endpoints.Harbors)
	str("ENDPOINT_ITEMS", &c.Backend.Endpoints.Items)
	if v, ok := lookup(EnvPrefix + "MATCH"); ok {
		c.Backend.Match = remote.MatchMode(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvPrefix + "SCOPE_POLICY"); ok {
		c.Backend.ScopePolicy = remote.ScopePolicy(strings.TrimSpace(v))
	}
	dur("TIMEOUT", &c.Backend.Timeout)
	boolean("DISCOVER", &c.Backend.Discover)

	dur("DEBOUNCE", &c.Form.Debounce)
	dur("FETCH_TIMEOUT", &c.Form.FetchTimeout)

	str("ADDR", &c.Server.Addr)
	str("PROXY_PREFIX", &c.Server.ProxyPrefix)
	dur("PAGE_TIMEOUT", &c.Server.PageTimeout)
	if v, ok := lookup(EnvPrefix + "ALLOW_ORIGINS"); ok {
		c.Server.AllowOrigins = splitList(v)
	}

	boolean("LOG_VERBOSE", &c.Log.Verbose)
	str("LOG_FORMAT", &c.Log.Format)

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: backend url %q must be absolute", c.Backend.URL)
	}
	switch c.Backend.Match {
	case remote.MatchExact, remote.MatchLike:
	default:
		return fmt.Errorf("config: unknown match mode %q", c.Backend.Match)
	}
	switch c.Backend.ScopePolicy {
	case remote.ScopeSuperset, remote.ScopeEmpty:
	default:
		return fmt.Errorf("config: unknown scope policy %q", c.Backend.ScopePolicy)
	}
	if c.Form.Debounce < 0 {
		return fmt.Errorf("config: debounce must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// ClientOptions maps the backend section onto remote client options.
func (c Config) ClientOptions() []remote.Option {
	return []remote.Option{
		remote.WithBaseURL(c.Backend.URL),
		remote.WithEndpoints(c.Backend.Endpoints),
		remote.WithMatchMode(c.Backend.Match),
		remote.WithScopePolicy(c.Backend.ScopePolicy),
		remote.WithTimeout(c.Backend.Timeout),
	}
}
