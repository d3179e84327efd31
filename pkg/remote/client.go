package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/pricing"
)

// Fetcher is the contract every select control consumes: an empty query means
// "no text filter", an empty scope means "no ancestor selected".
type Fetcher interface {
	Fetch(ctx context.Context, query, scope string) ([]model.Option, error)
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, query, scope string) ([]model.Option, error)

// Fetch calls fn.
func (fn FetcherFunc) Fetch(ctx context.Context, query, scope string) ([]model.Option, error) {
	return fn(ctx, query, scope)
}

// Client talks to the REST backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	endpoints   Endpoints
	match       MatchMode
	scopePolicy ScopePolicy
	timeout     time.Duration
	logger      *zap.Logger
}

// New constructs a Client. Without WithBaseURL requests are relative to the
// empty origin and will fail, so callers always pass one.
func New(options ...Option) *Client {
	c := &Client{
		httpClient:  http.DefaultClient,
		endpoints:   DefaultEndpoints(),
		match:       MatchExact,
		scopePolicy: ScopeSuperset,
		timeout:     10 * time.Second,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL reports the configured origin.
func (c *Client) BaseURL() string { return c.baseURL }

// Endpoints reports the list paths in use.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// Countries fetches the country list filtered by name.
func (c *Client) Countries(ctx context.Context, query string) ([]model.Option, error) {
	var records []model.Country
	if err := c.list(ctx, model.LevelCountry, query, "", &records); err != nil {
		return nil, err
	}
	set := newOrderedSet[model.Option](len(records))
	skipped := 0
	for _, rec := range records {
		if !ValidLabel(rec.Name) || rec.ID == "" {
			skipped++
			continue
		}
		set.put(rec.ID.String(), model.Option{Value: rec.ID.String(), Label: rec.Name})
	}
	c.logSkipped(model.LevelCountry, skipped)
	return set.values(), nil
}

// Harbors fetches harbors of one country. An empty countryID follows the
// scope policy.
func (c *Client) Harbors(ctx context.Context, query, countryID string) ([]model.Option, error) {
	if countryID == "" && c.scopePolicy == ScopeEmpty {
		return []model.Option{}, nil
	}
	var records []model.Harbor
	if err := c.list(ctx, model.LevelHarbor, query, countryID, &records); err != nil {
		return nil, err
	}
	set := newOrderedSet[model.Option](len(records))
	skipped := 0
	for _, rec := range records {
		if !ValidLabel(rec.Name) || rec.ID == "" {
			skipped++
			continue
		}
		set.put(rec.ID.String(), model.Option{Value: rec.ID.String(), Label: rec.Name})
	}
	c.logSkipped(model.LevelHarbor, skipped)
	return set.values(), nil
}

// Items fetches item details of one harbor. Records whose price or discount
// is out of range are dropped. An empty harborID follows the scope policy.
func (c *Client) Items(ctx context.Context, query, harborID string) ([]model.ItemOption, error) {
	if harborID == "" && c.scopePolicy == ScopeEmpty {
		return []model.ItemOption{}, nil
	}
	var records []model.Item
	if err := c.list(ctx, model.LevelItem, query, harborID, &records); err != nil {
		return nil, err
	}
	set := newOrderedSet[model.ItemOption](len(records))
	skipped := 0
	for _, rec := range records {
		if !ValidLabel(rec.Name) || rec.ID == "" {
			skipped++
			continue
		}
		detail := rec.Detail()
		if err := pricing.ValidateItem(detail.Price, detail.Discount); err != nil {
			skipped++
			continue
		}
		set.put(rec.ID.String(), detail)
	}
	c.logSkipped(model.LevelItem, skipped)
	return set.values(), nil
}

// Search dispatches to the fetch for level and returns plain options.
func (c *Client) Search(ctx context.Context, level model.Level, query, scope string) ([]model.Option, error) {
	switch level {
	case model.LevelCountry:
		return c.Countries(ctx, query)
	case model.LevelHarbor:
		return c.Harbors(ctx, query, scope)
	case model.LevelItem:
		items, err := c.Items(ctx, query, scope)
		if err != nil {
			return nil, err
		}
		return ItemOptions(items), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(level))
	}
}

// ForLevel binds the client to one level.
func (c *Client) ForLevel(level model.Level) Fetcher {
	return FetcherFunc(func(ctx context.Context, query, scope string) ([]model.Option, error) {
		return c.Search(ctx, level, query, scope)
	})
}

// ItemOptions strips item detail.
func ItemOptions(items []model.ItemOption) []model.Option {
	out := make([]model.Option, 0, len(items))
	for _, it := range items {
		out = append(out, it.Option)
	}
	return out
}

// RequestURL builds the list URL for level without sending it.
func (c *Client) RequestURL(level model.Level, query, scope string) (string, error) {
	path, err := c.endpointFor(level)
	if err != nil {
		return "", err
	}
	reqURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("remote: parse url: %w", err)
	}
	filter, err := buildFilter(level, query, scope, c.match)
	if err != nil {
		return "", err
	}
	if filter != "" {
		q := reqURL.Query()
		q.Set("filter", filter)
		reqURL.RawQuery = q.Encode()
	}
	return reqURL.String(), nil
}

func (c *Client) endpointFor(level model.Level) (string, error) {
	switch level {
	case model.LevelCountry:
		return c.endpoints.Countries, nil
	case model.LevelHarbor:
		return c.endpoints.Harbors, nil
	case model.LevelItem:
		return c.endpoints.Items, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownLevel, int(level))
	}
}

// list performs the GET and decodes each array element into out, which must
// be a pointer to a slice of records. Elements that fail to decode are
// skipped like any other invalid record.
func (c *Client) list(ctx context.Context, level model.Level, query, scope string, out any) error {
	reqURL, err := c.RequestURL(level, query, scope)
	if err != nil {
		return err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Level: level, URL: reqURL, Err: fmt.Errorf("request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching options",
		zap.String("level", level.String()),
		zap.String("query", query),
		zap.String("scope", scope),
		zap.String("url", reqURL),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(&FetchError{Level: level, URL: reqURL, Err: fmt.Errorf("do request: %w", err)})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return c.fail(&FetchError{Level: level, URL: reqURL, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(&FetchError{Level: level, URL: reqURL, Err: fmt.Errorf("read body: %w", err)})
	}

	raw, err := decodeArray(body)
	if err != nil {
		return c.fail(&FetchError{Level: level, URL: reqURL, Err: fmt.Errorf("decode: %w", err)})
	}
	return decodeRecords(raw, out, func(idx int, err error) {
		c.logger.Debug("skipping undecodable record",
			zap.String("level", level.String()),
			zap.Int("index", idx),
			zap.Error(err),
		)
	})
}

func (c *Client) fail(err *FetchError) error {
	c.logger.Warn("options fetch failed",
		zap.String("level", err.Level.String()),
		zap.String("url", err.URL),
		zap.Error(err),
	)
	return err
}

func (c *Client) logSkipped(level model.Level, skipped int) {
	if skipped == 0 {
		return
	}
	c.logger.Debug("dropped invalid records",
		zap.String("level", level.String()),
		zap.Int("count", skipped),
	)
}

// decodeArray returns the elements of a JSON array. Any other JSON value is
// treated as an empty list.
func decodeArray(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid json payload")
		}
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func decodeRecords(raw []json.RawMessage, out any, skip func(int, error)) error {
	switch dst := out.(type) {
	case *[]model.Country:
		*dst = decodeEach[model.Country](raw, skip)
	case *[]model.Harbor:
		*dst = decodeEach[model.Harbor](raw, skip)
	case *[]model.Item:
		*dst = decodeEach[model.Item](raw, skip)
	default:
		return fmt.Errorf("remote: unsupported record target %T", out)
	}
	return nil
}

func decodeEach[T any](raw []json.RawMessage, skip func(int, error)) []T {
	out := make([]T, 0, len(raw))
	for i, elem := range raw {
		var rec T
		if err := json.Unmarshal(elem, &rec); err != nil {
			skip(i, err)
			continue
		}
		out = append(out, rec)
	}
	return out
}
