package model

import (
	"fmt"
	"strings"
)

// Level identifies one tier of the Country -> Harbor -> Item scope chain.
type Level int

const (
	LevelCountry Level = iota
	LevelHarbor
	LevelItem
)

// Levels lists the chain from root to leaf.
var Levels = []Level{LevelCountry, LevelHarbor, LevelItem}

func (l Level) String() string {
	switch l {
	case LevelCountry:
		return "country"
	case LevelHarbor:
		return "harbor"
	case LevelItem:
		return "item"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Valid reports whether l is part of the chain.
func (l Level) Valid() bool {
	return l >= LevelCountry && l <= LevelItem
}

// Parent returns the ancestor level. The root reports false.
func (l Level) Parent() (Level, bool) {
	if l <= LevelCountry || !l.Valid() {
		return 0, false
	}
	return l - 1, true
}

// Child returns the dependent level. The leaf reports false.
func (l Level) Child() (Level, bool) {
	if l >= LevelItem || !l.Valid() {
		return 0, false
	}
	return l + 1, true
}

// ParseLevel accepts level names and their plural/backend aliases.
func ParseLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "country", "countries", "negara", "negaras":
		return LevelCountry, nil
	case "harbor", "harbors", "harbour", "harbours", "pelabuhan", "pelabuhans":
		return LevelHarbor, nil
	case "item", "items", "barang", "barangs":
		return LevelItem, nil
	default:
		return 0, fmt.Errorf("model: unknown level %q", raw)
	}
}

// FetchStatus mirrors the lifecycle of one level's option list.
type FetchStatus string

const (
	StatusIdle      FetchStatus = "idle"
	StatusLoading   FetchStatus = "loading"
	StatusSucceeded FetchStatus = "succeeded"
	StatusFailed    FetchStatus = "failed"
)
