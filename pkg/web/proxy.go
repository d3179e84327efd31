package web

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentSecurityPolicy returns the policy header value for pages that talk
// to backend directly.
func ContentSecurityPolicy(backend *url.URL) string {
	connect := []string{"'self'"}
	if backend != nil && backend.Host != "" {
		connect = append(connect, "http://"+backend.Host, "https://"+backend.Host)
	}
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src " + strings.Join(connect, " "),
		"frame-src 'self'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")
}

// backendProxy forwards <prefix>/<path>?<query> to <target>/<path>?<query>.
func backendProxy(target *url.URL, logger *zap.Logger) gin.HandlerFunc {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("backend proxy failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"backend unavailable"}`))
		},
	}

	return func(c *gin.Context) {
		req := c.Request.Clone(c.Request.Context())
		req.URL.Path = "/" + strings.TrimLeft(c.Param("path"), "/")
		req.URL.RawPath = ""
		proxy.ServeHTTP(c.Writer, req)
	}
}
