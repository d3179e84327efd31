package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/remote"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Lookup: noEnv})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "orderform.yaml", `
backend:
  url: http://inventory.test:3001
  match: like
  endpoints:
    harbors: /v2/ports
form:
  debounce: 150ms
server:
  allow_origins: [http://a.test]
log:
  format: json
`)

	cfg, err := Load(LoadOptions{Path: path, Lookup: noEnv})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Backend.URL = "http://inventory.test:3001"
	want.Backend.Match = remote.MatchLike
	want.Backend.Endpoints.Harbors = "/v2/ports"
	want.Form.Debounce = 150 * time.Millisecond
	want.Server.AllowOrigins = []string{"http://a.test"}
	want.Log.Format = "json"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_UnknownYAMLField(t *testing.T) {
	path := writeFile(t, "orderform.yaml", "backend:\n  uri: http://typo.test\n")
	if _, err := Load(LoadOptions{Path: path, Lookup: noEnv}); err == nil {
		t.Fatalf("expected unknown field to fail")
	}
}

func TestLoad_EnvOverridesDotEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "orderform.yaml", "backend:\n  url: http://file.test\n")
	dotenv := writeFile(t, ".env", "ORDERFORM_BACKEND_URL=http://dotenv.test\nORDERFORM_DEBOUNCE=1s\n")

	cfg, err := Load(LoadOptions{
		Path:     path,
		EnvFiles: []string{dotenv, filepath.Join(t.TempDir(), "missing.env")},
		Lookup: envMap(map[string]string{
			"ORDERFORM_DEBOUNCE":      "0s",
			"ORDERFORM_SCOPE_POLICY":  "empty",
			"ORDERFORM_ALLOW_ORIGINS": "http://a.test, http://b.test",
			"ORDERFORM_LOG_VERBOSE":   "true",
		}),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.URL != "http://dotenv.test" {
		t.Fatalf("expected .env backend url, got %q", cfg.Backend.URL)
	}
	if cfg.Form.Debounce != 0 {
		t.Fatalf("expected environment debounce 0, got %v", cfg.Form.Debounce)
	}
	if cfg.Backend.ScopePolicy != remote.ScopeEmpty {
		t.Fatalf("expected empty scope policy, got %q", cfg.Backend.ScopePolicy)
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.Server.AllowOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Log.Verbose {
		t.Fatalf("expected verbose logging")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"duration": {"ORDERFORM_TIMEOUT": "soon"},
		"bool":     {"ORDERFORM_DISCOVER": "maybe"},
		"match":    {"ORDERFORM_MATCH": "fuzzy"},
		"policy":   {"ORDERFORM_SCOPE_POLICY": "all"},
		"url":      {"ORDERFORM_BACKEND_URL": "localhost"},
		"format":   {"ORDERFORM_LOG_FORMAT": "xml"},
		"debounce": {"ORDERFORM_DEBOUNCE": "-1s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(LoadOptions{Lookup: envMap(env)}); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.yaml"), Lookup: noEnv}); err == nil {
		t.Fatalf("expected missing config file to fail")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = "http://inventory.test/"
	client := remote.New(cfg.ClientOptions()...)
	if client.BaseURL() != "http://inventory.test" {
		t.Fatalf("unexpected base url %q", client.BaseURL())
	}
	if diff := cmp.Diff(remote.DefaultEndpoints(), client.Endpoints()); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}
}
