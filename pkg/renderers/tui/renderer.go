package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/cascade"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/pricing"
)

const searchAgainLabel = "Search again..."

// fieldOrder fixes the order of form and pretty output.
var fieldOrder = []string{"country", "harbor", "item", "description", "price", "discount", "total"}

// Renderer walks the cascading order form as a sequence of terminal prompts.
// Each level is a select over the options fetched for the current scope, with
// an extra entry to refine the search.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	logger            *zap.Logger
	fetchers          cascade.Fetchers
	formOptions       []cascade.Option
	pageSize          int
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(fetchers cascade.Fetchers, options ...Option) (*Renderer, error) {
	if fetchers.Countries == nil || fetchers.Harbors == nil || fetchers.Items == nil {
		return nil, ErrNoFetchers
	}

	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		logger:       zap.NewNop(),
		fetchers:     fetchers,
		pageSize:     10,
		theme:        Theme{InfoPrefix: "", ErrorPrefix: "Warning: "},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for country, harbor, item, price, and discount, then
// serializes the submitted form.
func (r *Renderer) Render(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Prompts already batch input, so fetches run without a debounce delay.
	opts := append([]cascade.Option{
		cascade.WithDebounce(0),
		cascade.WithLogger(r.logger),
	}, r.formOptions...)
	form := cascade.New(r.fetchers, opts...)
	cascade.Pump(form, form.Init())

	for _, level := range model.Levels {
		if err := r.promptLevel(ctx, form, level); err != nil {
			return nil, err
		}
	}

	fields := form.Fields()
	if fields.Description != "" {
		if err := r.info(ctx, fmt.Sprintf("Description: %s", fields.Description)); err != nil {
			return nil, err
		}
	}
	if err := r.promptAmount(ctx, "Price", fields.Price, form.SetPrice); err != nil {
		return nil, err
	}
	if err := r.promptAmount(ctx, "Discount (%)", form.Fields().Discount, form.SetDiscount); err != nil {
		return nil, err
	}
	if err := r.info(ctx, fmt.Sprintf("Total: %s", pricing.Format(form.Fields().Total))); err != nil {
		return nil, err
	}

	ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit order?", Default: true})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAborted
	}

	submitted, err := form.Submit()
	if err != nil {
		return nil, err
	}

	values := submitted.Values()
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return Serialize(r.outputFormat, values)
}

func (r *Renderer) promptLevel(ctx context.Context, form *cascade.Form, level model.Level) error {
	cascade.Pump(form, form.Focus(level))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ctl := form.Control(level)
		if err := ctl.Err(); err != nil {
			_ = r.warn(ctx, fmt.Sprintf("could not load %s options (%v); showing no results", level, err))
		}

		options := ctl.Options()
		if len(options) == 0 {
			if err := r.info(ctx, fmt.Sprintf("No %s found.", level)); err != nil {
				return err
			}
			again, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Search again?", Default: true})
			if err != nil {
				return err
			}
			if !again {
				return fmt.Errorf("%w: no %s selected", ErrAborted, level)
			}
			if err := r.search(ctx, form, level, ctl.Query()); err != nil {
				return err
			}
			continue
		}

		labels := make([]string, 0, len(options)+1)
		for _, opt := range options {
			labels = append(labels, opt.Display())
		}
		labels = append(labels, searchAgainLabel)

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:  title(level),
			Options:  labels,
			Help:     fmt.Sprintf("Pick a %s or choose %q to filter by name.", level, searchAgainLabel),
			PageSize: r.pageSize,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			if err := r.search(ctx, form, level, ctl.Query()); err != nil {
				return err
			}
			continue
		}

		cascade.Pump(form, form.Choose(level, idx))
		if form.Store().Selected(level) == nil {
			_ = r.warn(ctx, fmt.Sprintf("%s %q is no longer available", level, options[idx].Display()))
			continue
		}
		return nil
	}
}

func (r *Renderer) search(ctx context.Context, form *cascade.Form, level model.Level, current string) error {
	query, err := r.driver.Input(ctx, InputConfig{
		Message: fmt.Sprintf("Search %s", level),
		Default: current,
		Help:    "Leave empty to list everything.",
	})
	if err != nil {
		return err
	}
	cascade.Pump(form, form.Search(level, strings.TrimSpace(query)))
	return nil
}

func (r *Renderer) promptAmount(ctx context.Context, label string, current float64, set func(string) error) error {
	for {
		raw, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: pricing.Format(current),
			Validator: func(s string) error {
				_, err := pricing.ParseAmount(s)
				return err
			},
		})
		if err != nil {
			return err
		}
		if err := set(raw); err != nil {
			_ = r.warn(ctx, fmt.Sprintf("invalid %s: %v", strings.ToLower(label), err))
			continue
		}
		return nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) warn(ctx context.Context, msg string) error {
	r.logger.Debug("prompt warning", zap.String("message", msg))
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func title(level model.Level) string {
	name := level.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Serialize encodes submitted form values in format.
func Serialize(format OutputFormat, values map[string]any) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

// orderedKeys lists the known fields first, then any extra keys a transformer
// added, sorted.
func orderedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	known := make(map[string]struct{}, len(fieldOrder))
	for _, key := range fieldOrder {
		known[key] = struct{}{}
		if _, ok := values[key]; ok {
			keys = append(keys, key)
		}
	}
	var extra []string
	for key := range values {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case float64:
		return pricing.Format(v)
	default:
		return fmt.Sprint(v)
	}
}

func flattenForm(values map[string]any) string {
	out := url.Values{}
	for _, key := range orderedKeys(values) {
		out.Set(key, stringify(values[key]))
	}
	return out.Encode()
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	for _, key := range orderedKeys(values) {
		fmt.Fprintf(&b, "%s=%s\n", key, stringify(values[key]))
	}
	return b.String()
}
