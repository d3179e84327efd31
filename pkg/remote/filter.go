package remote

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-orderform/pkg/model"
)

// Field names of the backend records used in filters.
const (
	fieldCountryName = "nama_negara"
	fieldHarborName  = "nama_pelabuhan"
	fieldItemName    = "nama_barang"
	fieldCountryID   = "id_negara"
	fieldHarborID    = "id_pelabuhan"
)

type whereFilter struct {
	Where map[string]any `json:"where"`
}

// NameField returns the display-name field filtered for level.
func NameField(level model.Level) string {
	switch level {
	case model.LevelCountry:
		return fieldCountryName
	case model.LevelHarbor:
		return fieldHarborName
	case model.LevelItem:
		return fieldItemName
	default:
		return ""
	}
}

// ScopeField returns the parent identifier field for level, empty for the root.
func ScopeField(level model.Level) string {
	switch level {
	case model.LevelHarbor:
		return fieldCountryID
	case model.LevelItem:
		return fieldHarborID
	default:
		return ""
	}
}

// buildFilter renders the LoopBack filter parameter. It returns "" when there
// is nothing to constrain.
func buildFilter(level model.Level, query, scope string, mode MatchMode) (string, error) {
	if !level.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownLevel, int(level))
	}
	where := make(map[string]any, 2)

	if query != "" {
		switch mode {
		case MatchLike:
			where[NameField(level)] = map[string]string{"like": regexp.QuoteMeta(query)}
		default:
			where[NameField(level)] = query
		}
	}

	if field := ScopeField(level); field != "" {
		if scope = strings.TrimSpace(scope); scope != "" {
			where[field] = scopeValue(scope)
		}
	}

	if len(where) == 0 {
		return "", nil
	}
	data, err := json.Marshal(whereFilter{Where: where})
	if err != nil {
		return "", fmt.Errorf("remote: encode filter: %w", err)
	}
	return string(data), nil
}

// scopeValue keeps numeric identifiers numeric on the wire.
func scopeValue(scope string) any {
	if _, err := strconv.ParseInt(scope, 10, 64); err == nil {
		return json.Number(scope)
	}
	return scope
}
