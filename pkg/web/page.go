package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/pricing"
	"github.com/goliatone/go-orderform/pkg/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

const pageTemplate = "order.html"

type pageRenderer struct {
	tmpl *pongo2.Template
}

func newPageRenderer() (*pageRenderer, error) {
	set := pongo2.NewSet("orderform", pongo2.NewFSLoader(templatesFS))
	tmpl, err := set.FromFile("templates/" + pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("web: load template %q: %w", pageTemplate, err)
	}
	return &pageRenderer{tmpl: tmpl}, nil
}

// pageLevel is one select on the rendered form.
type pageLevel struct {
	Name     string
	Title    string
	Options  []model.Option
	Selected string
	Status   string
	Disabled bool
}

type fetchResult struct {
	options []model.Option
	items   []model.ItemOption
	err     error
}

// renderPage rebuilds the form state for the query parameters country,
// harbor, item, price, and discount. Each parameter is applied through the
// store in cascade order, so a harbor that does not belong to the selected
// country is dropped.
func (s *server) renderPage(c *gin.Context) {
	var (
		countryID = strings.TrimSpace(c.Query("country"))
		harborID  = strings.TrimSpace(c.Query("harbor"))
		itemID    = strings.TrimSpace(c.Query("item"))
	)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.PageTimeout)
	defer cancel()

	var results [3]fetchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[model.LevelCountry].options, results[model.LevelCountry].err = s.catalog.Search(gctx, model.LevelCountry, "", "")
		return nil
	})
	g.Go(func() error {
		results[model.LevelHarbor].options, results[model.LevelHarbor].err = s.catalog.Search(gctx, model.LevelHarbor, "", countryID)
		return nil
	})
	if harborID != "" {
		g.Go(func() error {
			results[model.LevelItem].items, results[model.LevelItem].err = s.catalog.Items(gctx, "", harborID)
			return nil
		})
	}
	_ = g.Wait()

	st := store.New(store.WithID(c.GetString(requestIDKey)))
	var banners []string
	fail := func(level model.Level, scope string, err error) {
		st.FailFetch(level, scope, err)
		s.opts.Logger.Warn("form page fetch failed",
			zap.String("level", level.String()),
			zap.String("scope", scope),
			zap.Error(err),
		)
		banners = append(banners, fmt.Sprintf("Could not load %s options.", level))
	}

	if r := results[model.LevelCountry]; r.err != nil {
		fail(model.LevelCountry, "", r.err)
	} else {
		st.ResolveFetch(model.LevelCountry, "", r.options)
	}
	st.SelectCountry(findOption(st.Options(model.LevelCountry), countryID))

	if r := results[model.LevelHarbor]; r.err != nil {
		fail(model.LevelHarbor, st.Scope(model.LevelHarbor), r.err)
	} else {
		st.ResolveFetch(model.LevelHarbor, countryID, r.options)
	}
	st.SelectHarbor(findOption(st.Options(model.LevelHarbor), harborID))

	if r := results[model.LevelItem]; r.err != nil {
		fail(model.LevelItem, st.Scope(model.LevelItem), r.err)
	} else if harborID != "" {
		st.ResolveItems(harborID, r.items)
	}
	if opt := findOption(st.Options(model.LevelItem), itemID); opt != nil {
		st.SelectItem(opt)
	}

	if st.Selected(model.LevelItem) != nil {
		if raw := c.Query("price"); raw != "" {
			banners = appendInputError(banners, "price", applyAmount(raw, st.SetPrice))
		}
		if raw := c.Query("discount"); raw != "" {
			banners = appendInputError(banners, "discount", applyAmount(raw, st.SetDiscount))
		}
	}

	fields := st.Fields()
	levels := make([]pageLevel, 0, len(model.Levels))
	for _, level := range model.Levels {
		selected := ""
		if opt := st.Selected(level); opt != nil {
			selected = opt.Value
		}
		opts := st.Options(level)
		for i := range opts {
			opts[i].Label = sanitizeLabel(opts[i].Label)
		}
		parent, hasParent := level.Parent()
		levels = append(levels, pageLevel{
			Name:     level.String(),
			Title:    strings.ToUpper(level.String()[:1]) + level.String()[1:],
			Options:  opts,
			Selected: selected,
			Status:   string(st.Status(level)),
			Disabled: hasParent && st.Selected(parent) == nil && len(opts) == 0,
		})
	}

	data := pongo2.Context{
		"title":       s.opts.Title,
		"form_id":     st.ID(),
		"levels":      levels,
		"description": sanitizeLabel(fields.Description),
		"price":       pricing.Format(fields.Price),
		"discount":    pricing.Format(fields.Discount),
		"total":       pricing.Format(fields.Total),
		"banners":     banners,
		"has_item":    fields.Item != nil,
	}

	var b strings.Builder
	if err := s.page.tmpl.ExecuteWriter(data, &b); err != nil {
		s.opts.Logger.Error("render form page", zap.Error(err))
		writeError(c, fmt.Errorf("web: render page: %w", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

func findOption(opts []model.Option, id string) *model.Option {
	if id == "" {
		return nil
	}
	for i := range opts {
		if opts[i].Value == id {
			return &opts[i]
		}
	}
	return nil
}

func applyAmount(raw string, set func(float64) error) error {
	v, err := pricing.ParseAmount(raw)
	if err != nil {
		return err
	}
	return set(v)
}

func appendInputError(banners []string, field string, err error) []string {
	if err == nil {
		return banners
	}
	return append(banners, fmt.Sprintf("Invalid %s: %v", field, err))
}

// TemplatesFS returns the embedded page templates rooted at templates/.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}
