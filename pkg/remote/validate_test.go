package remote

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/model"
)

func TestValidLabel(t *testing.T) {
	cases := map[string]bool{
		"Indonesia":     true,
		"New Zealand":   true,
		"":              false,
		"string":        false,
		"STRING":        false,
		"Cote d'Ivoire": false,
		"Area 51":       false,
		"Zürich":        false,
	}
	for label, want := range cases {
		if got := ValidLabel(label); got != want {
			t.Errorf("ValidLabel(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestDedupe_LastLabelFirstPosition(t *testing.T) {
	in := []model.Option{
		{Value: "1", Label: "Alpha"},
		{Value: "2", Label: "Beta"},
		{Value: "1", Label: "Gamma"},
	}
	want := []model.Option{
		{Value: "1", Label: "Gamma"},
		{Value: "2", Label: "Beta"},
	}
	if diff := cmp.Diff(want, Dedupe(in)); diff != "" {
		t.Fatalf("dedupe mismatch (-want +got):\n%s", diff)
	}
}
