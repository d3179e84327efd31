package live

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-orderform/pkg/cascade"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/selectctl"
)

func fetchers() cascade.Fetchers {
	items := []model.ItemOption{{Option: model.Option{Value: "7", Label: "Tea"}, Price: 200, Discount: 50}}
	static := func(opts ...model.Option) selectctl.FetchFunc {
		return func(context.Context, string, string) (selectctl.Page, error) {
			return selectctl.Page{Options: opts}, nil
		}
	}
	return cascade.Fetchers{
		Countries: static(model.Option{Value: "1", Label: "Indonesia"}),
		Harbors:   static(model.Option{Value: "2", Label: "Priok"}),
		Items: func(context.Context, string, string) (selectctl.Page, error) {
			return selectctl.Page{Options: []model.Option{items[0].Option}, Detail: items}, nil
		},
	}
}

func key(t tea.KeyType) tea.Cmd {
	return func() tea.Msg { return tea.KeyMsg{Type: t} }
}

func TestOutcome_Submitted(t *testing.T) {
	form := cascade.New(fetchers(), cascade.WithDebounce(0))
	cascade.Pump(form, form.Init())
	for _, level := range model.Levels {
		cascade.Pump(form, form.Focus(level))
		cascade.Pump(form, form.Choose(level, 0))
	}
	cascade.Pump(form, key(tea.KeyCtrlS))

	fields, err := outcome(form)
	if err != nil {
		t.Fatalf("outcome: %v", err)
	}
	if fields.Total != 100 {
		t.Fatalf("expected total 100, got %v", fields.Total)
	}
}

func TestOutcome_Aborted(t *testing.T) {
	form := cascade.New(fetchers(), cascade.WithDebounce(0))
	cascade.Pump(form, form.Init())
	cascade.Pump(form, key(tea.KeyCtrlC))

	if _, err := outcome(form); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	r := New(fetchers(),
		WithInput(&bytes.Buffer{}),
		WithOutput(&out),
		WithAltScreen(false),
	)
	if _, err := r.Run(ctx); err == nil {
		t.Fatalf("expected cancelled run to fail")
	}
}
