package orderform

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-orderform/pkg/cascade"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/remote"
)

func TestEmbeddedTemplatesContainsOrderPage(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "order.html")
	if err != nil {
		t.Fatalf("expected order page template to be readable: %v", err)
	}
	if !strings.Contains(string(data), "{% for level in levels %}") {
		t.Fatalf("expected template to iterate levels")
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/negaras", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id_negara":1,"nama_negara":"Indonesia"}]`))
	})
	mux.HandleFunc("/pelabuhans", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id_pelabuhan":10,"nama_pelabuhan":"Priok","id_negara":1}]`))
	})
	mux.HandleFunc("/barangs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id_barang":5,"nama_barang":"Tea","id_pelabuhan":10,"harga":1000,"diskon":10}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewForm_EndToEnd(t *testing.T) {
	srv := newBackend(t)
	form := NewForm(NewClient(remote.WithBaseURL(srv.URL)), cascade.WithDebounce(0))
	cascade.Pump(form, form.Init())
	for _, level := range model.Levels {
		cascade.Pump(form, form.Focus(level))
		cascade.Pump(form, form.Choose(level, 0))
	}

	fields, err := form.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fields.Total != 900 {
		t.Fatalf("expected total 900, got %v", fields.Total)
	}
}

func TestNewRouter_DefaultsBackendToClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := newBackend(t)
	router, err := NewRouter(NewClient(remote.WithBaseURL(srv.URL)))
	if err != nil {
		t.Fatalf("new router: %v", err)
	}

	front := httptest.NewServer(router)
	t.Cleanup(front.Close)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, front.URL+"/api/backend/negaras", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Indonesia") {
		t.Fatalf("expected proxied countries, got %d %s", resp.StatusCode, body)
	}
}
