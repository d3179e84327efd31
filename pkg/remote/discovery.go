package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
)

// DefaultDocumentPath is where LoopBack applications publish their OpenAPI
// document.
const DefaultDocumentPath = "/openapi.json"

// resourceAliases lists the collection names recognised per level.
var resourceAliases = map[model.Level][]string{
	model.LevelCountry: {"negaras", "negara", "countries"},
	model.LevelHarbor:  {"pelabuhans", "pelabuhan", "harbors", "harbours"},
	model.LevelItem:    {"barangs", "barang", "items"},
}

// DiscoverEndpoints inspects an OpenAPI document and returns the GET list
// paths of the three resources. Levels that cannot be matched are left empty;
// use Endpoints.Merge to fill them from defaults.
func DiscoverEndpoints(ctx context.Context, raw []byte) (Endpoints, error) {
	if err := ctx.Err(); err != nil {
		return Endpoints{}, err
	}
	if len(raw) == 0 {
		return Endpoints{}, errors.New("remote: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return Endpoints{}, fmt.Errorf("remote: load openapi document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return Endpoints{}, ErrNoEndpoints
	}

	paths := make([]string, 0, doc.Paths.Len())
	for path := range doc.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	found := make(map[model.Level]string, len(resourceAliases))
	for _, path := range paths {
		item := doc.Paths.Value(path)
		if item == nil || item.Get == nil {
			continue
		}
		if strings.Contains(path, "{") {
			continue
		}
		level, ok := matchListOperation(path, item.Get)
		if !ok {
			continue
		}
		if _, taken := found[level]; !taken {
			found[level] = path
		}
	}

	if len(found) == 0 {
		return Endpoints{}, ErrNoEndpoints
	}
	return Endpoints{
		Countries: found[model.LevelCountry],
		Harbors:   found[model.LevelHarbor],
		Items:     found[model.LevelItem],
	}, nil
}

func matchListOperation(path string, op *openapi3.Operation) (model.Level, bool) {
	segment := strings.ToLower(lastSegment(path))
	for _, level := range model.Levels {
		for _, alias := range resourceAliases[level] {
			if segment == alias {
				return level, true
			}
		}
	}

	// LoopBack names list operations "<Model>Controller.find".
	opID := strings.ToLower(op.OperationID)
	if !strings.HasSuffix(opID, "controller.find") {
		return 0, false
	}
	controller := strings.TrimSuffix(opID, "controller.find")
	for _, level := range model.Levels {
		for _, alias := range resourceAliases[level] {
			if controller == alias {
				return level, true
			}
		}
	}
	return 0, false
}

func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// Discover downloads the backend's OpenAPI document and switches the client
// to the discovered list paths. Unmatched levels keep their current paths.
func (c *Client) Discover(ctx context.Context) (Endpoints, error) {
	docURL := c.baseURL + DefaultDocumentPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return c.endpoints, fmt.Errorf("remote: discovery request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.endpoints, fmt.Errorf("%w: discovery: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.endpoints, fmt.Errorf("%w: discovery: unexpected status %d", ErrNetwork, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.endpoints, fmt.Errorf("%w: discovery: %v", ErrNetwork, err)
	}

	discovered, err := DiscoverEndpoints(ctx, raw)
	if err != nil {
		return c.endpoints, err
	}
	c.endpoints = discovered.Merge(c.endpoints)
	c.logger.Info("discovered backend endpoints",
		zap.String("countries", c.endpoints.Countries),
		zap.String("harbors", c.endpoints.Harbors),
		zap.String("items", c.endpoints.Items),
	)
	return c.endpoints, nil
}
