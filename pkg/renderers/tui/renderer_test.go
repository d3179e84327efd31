package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/cascade"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/selectctl"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selectOpts   [][]string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectOpts = append(s.selectOpts, cfg.Options)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type fetchCall struct {
	Level string
	Query string
	Scope string
}

type stubBackend struct {
	calls   []fetchCall
	failing map[string]error
}

func (b *stubBackend) fetch(level string, all []model.Option) selectctl.FetchFunc {
	return func(_ context.Context, query, scope string) (selectctl.Page, error) {
		b.calls = append(b.calls, fetchCall{Level: level, Query: query, Scope: scope})
		if err := b.failing[level]; err != nil {
			return selectctl.Page{}, err
		}
		var out []model.Option
		for _, opt := range all {
			if query == "" || strings.EqualFold(opt.Label, query) {
				out = append(out, opt)
			}
		}
		return selectctl.Page{Options: out}, nil
	}
}

func (b *stubBackend) fetchers() cascade.Fetchers {
	items := []model.ItemOption{{
		Option:      model.Option{Value: "100", Label: "Tea"},
		Description: "X",
		Discount:    20,
		Price:       5000,
	}}
	return cascade.Fetchers{
		Countries: b.fetch("country", []model.Option{
			{Value: "1", Label: "Indonesia"},
			{Value: "2", Label: "Singapore"},
		}),
		Harbors: b.fetch("harbor", []model.Option{{Value: "10", Label: "Tanjung Priok"}}),
		Items: func(_ context.Context, query, scope string) (selectctl.Page, error) {
			b.calls = append(b.calls, fetchCall{Level: "item", Query: query, Scope: scope})
			return selectctl.Page{Options: []model.Option{items[0].Option}, Detail: items}, nil
		},
	}
}

func TestRender_FullFlowJSON(t *testing.T) {
	backend := &stubBackend{}
	driver := &stubDriver{
		selectIdx: []int{0, 0, 0},
		inputs:    []string{"5000", "20"},
		confirm:   []bool{true},
	}
	r, err := New(backend.fetchers(), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"country":"1","description":"X","discount":20,"harbor":"10","item":"100","price":5000,"total":4000}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}

	wantCalls := []fetchCall{
		{Level: "country"},
		{Level: "harbor", Scope: "1"},
		{Level: "item", Scope: "10"},
	}
	if diff := cmp.Diff(wantCalls, backend.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Indonesia", "Singapore", searchAgainLabel}, driver.selectOpts[0]); diff != "" {
		t.Fatalf("country options mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_SearchAgain(t *testing.T) {
	backend := &stubBackend{}
	driver := &stubDriver{
		// "Search again" is the entry after the two countries.
		selectIdx: []int{2, 0, 0, 0},
		inputs:    []string{"Singapore", "1000", "10"},
		confirm:   []bool{true},
	}
	r, err := New(backend.fetchers(), WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "country=2&description=X&discount=10&harbor=10&item=100&price=1000&total=900"
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
	if backend.calls[1] != (fetchCall{Level: "country", Query: "Singapore"}) {
		t.Fatalf("expected filtered country fetch, got %+v", backend.calls[1])
	}
}

func TestRender_InvalidAmountReprompts(t *testing.T) {
	backend := &stubBackend{}
	driver := &stubDriver{
		selectIdx: []int{0, 0, 0},
		inputs:    []string{"-5", "5000", "150", "0"},
		confirm:   []bool{true},
	}
	r, err := New(backend.fetchers(), WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "country=1\nharbor=10\nitem=100\ndescription=X\nprice=5000\ndiscount=0\ntotal=5000\n"
	if string(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}

	var warnings int
	for _, msg := range driver.infoMessages {
		if strings.HasPrefix(msg, "Warning: invalid") {
			warnings++
		}
	}
	if warnings != 2 {
		t.Fatalf("expected 2 invalid amount warnings, got %v", driver.infoMessages)
	}
}

func TestRender_FetchFailureWarnsAndAborts(t *testing.T) {
	backend := &stubBackend{failing: map[string]error{"harbor": errors.New("boom")}}
	driver := &stubDriver{
		selectIdx: []int{0},
		confirm:   []bool{false},
	}
	r, err := New(backend.fetchers(), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	_, err = r.Render(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	var warned bool
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, "could not load harbor options") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected fetch warning, got %v", driver.infoMessages)
	}
}

func TestRender_DeclineSubmit(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 0, 0},
		inputs:    []string{"1", "0"},
		confirm:   []bool{false},
	}
	r, err := New((&stubBackend{}).fetchers(), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 0, 0},
		inputs:    []string{"100", "0"},
		confirm:   []bool{true},
	}
	r, err := New((&stubBackend{}).fetchers(),
		WithPromptDriver(driver),
		WithOutputFormat(OutputFormatPrettyText),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["reference"] = "PO-1"
			delete(values, "description")
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasSuffix(string(out), "total=100\nreference=PO-1\n") {
		t.Fatalf("expected extra keys after known fields, got %q", out)
	}
}

func TestNew_RequiresFetchers(t *testing.T) {
	if _, err := New(cascade.Fetchers{}); !errors.Is(err, ErrNoFetchers) {
		t.Fatalf("expected ErrNoFetchers, got %v", err)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, ok := ParseOutputFormat(""); !ok || f != OutputFormatJSON {
		t.Fatalf("expected json default, got %q", f)
	}
	if _, ok := ParseOutputFormat("xml"); ok {
		t.Fatalf("expected xml to be rejected")
	}
}
