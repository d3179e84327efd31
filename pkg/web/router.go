package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-orderform/pkg/model"
)

// Catalog is the option source behind the API and the form page.
// *remote.Client satisfies it.
type Catalog interface {
	Search(ctx context.Context, level model.Level, query, scope string) ([]model.Option, error)
	Items(ctx context.Context, query, harborID string) ([]model.ItemOption, error)
}

type server struct {
	catalog Catalog
	opts    Options
	page    *pageRenderer
}

// NewRouter builds the gin engine. A backend URL is required for the proxy
// and the CSP header.
func NewRouter(catalog Catalog, fns ...OptionFn) (*gin.Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("web: missing catalog")
	}
	opts := NewOptions(fns...)
	if opts.BackendURL == "" {
		return nil, fmt.Errorf("web: missing backend url")
	}
	target, err := url.Parse(opts.BackendURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("web: invalid backend url %q", opts.BackendURL)
	}

	page, err := newPageRenderer()
	if err != nil {
		return nil, err
	}
	s := &server{catalog: catalog, opts: opts, page: page}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(opts.Logger))
	r.Use(contentSecurityPolicy(ContentSecurityPolicy(target)))
	r.Use(pathPrefix(opts.APIPrefix, apiCORS(opts.AllowOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", s.renderPage)

	r.Any(opts.ProxyPrefix+"/*path", backendProxy(target, opts.Logger))

	api := r.Group(opts.APIPrefix)
	{
		api.GET("/options/:level", s.searchOptions)
		api.GET("/total", s.total)
	}

	return r, nil
}
