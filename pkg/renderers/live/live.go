// Package live runs the cascading order form as a full-screen bubbletea
// program with debounced, type-ahead selects.
package live

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/cascade"
	"github.com/goliatone/go-orderform/pkg/model"
)

// ErrAborted is returned when the user quits without submitting.
var ErrAborted = errors.New("live: aborted")

// Option configures a Runner.
type Option func(*Runner)

// WithInput overrides the terminal input.
func WithInput(in io.Reader) Option {
	return func(r *Runner) { r.input = in }
}

// WithOutput overrides the terminal output.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) { r.output = out }
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(r *Runner) { r.altScreen = enabled }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFormOptions forwards options to the cascade form.
func WithFormOptions(opts ...cascade.Option) Option {
	return func(r *Runner) { r.formOptions = append(r.formOptions, opts...) }
}

// Runner owns one interactive session.
type Runner struct {
	fetchers    cascade.Fetchers
	formOptions []cascade.Option
	input       io.Reader
	output      io.Writer
	altScreen   bool
	logger      *zap.Logger
}

// New returns a Runner for fetchers.
func New(fetchers cascade.Fetchers, options ...Option) *Runner {
	r := &Runner{
		fetchers:  fetchers,
		altScreen: true,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run blocks until the user submits or quits, or ctx is done.
func (r *Runner) Run(ctx context.Context) (model.FormFields, error) {
	opts := append([]cascade.Option{cascade.WithLogger(r.logger)}, r.formOptions...)
	form := cascade.New(r.fetchers, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if r.input != nil {
		programOpts = append(programOpts, tea.WithInput(r.input))
	}
	if r.output != nil {
		programOpts = append(programOpts, tea.WithOutput(r.output))
	}
	if r.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	r.logger.Debug("starting live form", zap.String("form", form.Store().ID()))
	final, err := tea.NewProgram(form, programOpts...).Run()
	if err != nil {
		return model.FormFields{}, fmt.Errorf("live: run program: %w", err)
	}
	return outcome(final)
}

func outcome(final tea.Model) (model.FormFields, error) {
	form, ok := final.(*cascade.Form)
	if !ok {
		return model.FormFields{}, fmt.Errorf("live: unexpected model %T", final)
	}
	if form.Aborted() || !form.Submitted() {
		return form.Fields(), ErrAborted
	}
	return form.Submit()
}
