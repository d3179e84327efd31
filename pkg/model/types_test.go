package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlexID_Unmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want FlexID
	}{
		{"number", `7`, "7"},
		{"string", `" 12 "`, "12"},
		{"null", `null`, ""},
		{"float", `1.5`, "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id FlexID
			if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if id != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, id)
			}
		})
	}

	var id FlexID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Fatalf("expected object to be rejected")
	}
}

func TestFlexID_Marshal(t *testing.T) {
	got, err := json.Marshal(struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
		C FlexID `json:"c"`
	}{A: "3", B: "SG-1", C: ""})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"a":3,"b":"SG-1","c":null}`; string(got) != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestItem_DetailDefaults(t *testing.T) {
	var it Item
	if err := json.Unmarshal([]byte(`{"id_barang":5,"nama_barang":"Tea","id_pelabuhan":"10"}`), &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := ItemOption{Option: Option{Value: "5", Label: "Tea"}}
	if diff := cmp.Diff(want, it.Detail()); diff != "" {
		t.Fatalf("detail mismatch (-want +got):\n%s", diff)
	}
	if it.HarborID != "10" {
		t.Fatalf("expected harbor id 10, got %q", it.HarborID)
	}
}

func TestFormFields_Values(t *testing.T) {
	fields := FormFields{
		Country: &Option{Value: "1", Label: "Indonesia"},
		Price:   1000,
		Total:   1000,
	}
	want := map[string]any{
		"country":     "1",
		"harbor":      nil,
		"item":        nil,
		"description": "",
		"discount":    0.0,
		"price":       1000.0,
		"total":       1000.0,
	}
	if diff := cmp.Diff(want, fields.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestOption_Display(t *testing.T) {
	if got := (Option{Value: "9"}).Display(); got != "9" {
		t.Fatalf("expected value fallback, got %q", got)
	}
	if got := (Option{Value: "9", Label: "Nine"}).Display(); got != "Nine" {
		t.Fatalf("expected label, got %q", got)
	}
}

func TestCloneOption(t *testing.T) {
	if CloneOption(nil) != nil {
		t.Fatalf("expected nil clone")
	}
	src := &Option{Value: "1", Label: "A"}
	clone := CloneOption(src)
	clone.Label = "B"
	if src.Label != "A" {
		t.Fatalf("clone aliases source")
	}
}
