package web

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

func sanitizeLabel(label string) string {
	return labelSanitizer().Sanitize(label)
}

type optionsResponse struct {
	Data    any    `json:"data"`
	Warning string `json:"warning,omitempty"`
}

func (s *server) searchOptions(c *gin.Context) {
	level, err := model.ParseLevel(c.Param("level"))
	if err != nil {
		writeError(c, StatusError{Code: http.StatusNotFound, Err: err})
		return
	}

	query := c.Query(s.opts.SearchParam)
	scope := c.Query(s.opts.ScopeParam)
	limit := clampLimit(parseInt(c.Query(s.opts.LimitParam)), s.opts)
	ctx := c.Request.Context()

	if level == model.LevelItem {
		items, err := s.catalog.Items(ctx, query, scope)
		if err != nil {
			s.degrade(c, level, err)
			return
		}
		for i := range items {
			items[i].Label = sanitizeLabel(items[i].Label)
			items[i].Description = sanitizeLabel(items[i].Description)
		}
		c.JSON(http.StatusOK, optionsResponse{Data: truncate(items, limit)})
		return
	}

	opts, err := s.catalog.Search(ctx, level, query, scope)
	if err != nil {
		s.degrade(c, level, err)
		return
	}
	for i := range opts {
		opts[i].Label = sanitizeLabel(opts[i].Label)
	}
	c.JSON(http.StatusOK, optionsResponse{Data: truncate(opts, limit)})
}

// degrade answers a failed lookup with an empty list so the form stays
// usable.
func (s *server) degrade(c *gin.Context, level model.Level, err error) {
	s.opts.Logger.Warn("option search failed",
		zap.String("level", level.String()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	c.JSON(http.StatusOK, optionsResponse{
		Data:    []model.Option{},
		Warning: "could not load " + level.String() + " options",
	})
}

func truncate[T any](values []T, limit int) []T {
	if values == nil {
		return []T{}
	}
	if limit < len(values) {
		return values[:limit]
	}
	return values
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
