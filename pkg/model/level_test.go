package model

import "testing"

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"country":    LevelCountry,
		"Negaras":    LevelCountry,
		" harbour ":  LevelHarbor,
		"pelabuhans": LevelHarbor,
		"barang":     LevelItem,
		"items":      LevelItem,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("planet"); err == nil {
		t.Fatalf("expected unknown level error")
	}
}

func TestLevel_Chain(t *testing.T) {
	if _, ok := LevelCountry.Parent(); ok {
		t.Fatalf("country has no parent")
	}
	if child, ok := LevelCountry.Child(); !ok || child != LevelHarbor {
		t.Fatalf("expected harbor child, got %v %v", child, ok)
	}
	if parent, ok := LevelItem.Parent(); !ok || parent != LevelHarbor {
		t.Fatalf("expected harbor parent, got %v %v", parent, ok)
	}
	if _, ok := LevelItem.Child(); ok {
		t.Fatalf("item has no child")
	}
	if Level(7).Valid() {
		t.Fatalf("level 7 should be invalid")
	}
	if got := Level(7).String(); got != "level(7)" {
		t.Fatalf("unexpected string %q", got)
	}
}
