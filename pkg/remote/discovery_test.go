package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const loopbackDocument = `{
  "openapi": "3.0.0",
  "info": {"title": "backend", "version": "1.0.0"},
  "paths": {
    "/negaras": {
      "get": {
        "operationId": "NegaraController.find",
        "responses": {"200": {"description": "Array of Negara model instances"}}
      }
    },
    "/negaras/{id}": {
      "get": {
        "operationId": "NegaraController.findById",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "number"}}],
        "responses": {"200": {"description": "Negara model instance"}}
      }
    },
    "/v2/ports": {
      "get": {
        "operationId": "PelabuhanController.find",
        "responses": {"200": {"description": "Array of Pelabuhan model instances"}}
      }
    },
    "/ping": {
      "get": {
        "operationId": "PingController.ping",
        "responses": {"200": {"description": "Ping Response"}}
      }
    }
  }
}`

func TestDiscoverEndpoints_MatchesPathsAndOperationIDs(t *testing.T) {
	got, err := DiscoverEndpoints(context.Background(), []byte(loopbackDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Endpoints{Countries: "/negaras", Harbors: "/v2/ports"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}

	merged := got.Merge(DefaultEndpoints())
	if merged.Items != "/barangs" {
		t.Fatalf("expected default items path after merge, got %q", merged.Items)
	}
}

func TestDiscoverEndpoints_NoMatches(t *testing.T) {
	doc := `{"openapi": "3.0.0", "info": {"title": "x", "version": "1"}, "paths": {"/ping": {"get": {"responses": {"200": {"description": "ok"}}}}}}`
	if _, err := DiscoverEndpoints(context.Background(), []byte(doc)); !errors.Is(err, ErrNoEndpoints) {
		t.Fatalf("expected ErrNoEndpoints, got %v", err)
	}
	if _, err := DiscoverEndpoints(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestClientDiscover_AppliesEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultDocumentPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(loopbackDocument))
	}))
	defer srv.Close()

	client := New(WithBaseURL(srv.URL))
	got, err := client.Discover(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Endpoints{Countries: "/negaras", Harbors: "/v2/ports", Items: "/barangs"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, client.Endpoints()); diff != "" {
		t.Fatalf("client endpoints not updated (-want +got):\n%s", diff)
	}
}
