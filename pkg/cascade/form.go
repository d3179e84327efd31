// Package cascade wires the three select controls, the store, and the pricing
// inputs into one order form. Selecting a value at one level clears every
// level below it in the store before the next level is re-fetched, and an
// item choice fills description, discount, price, and total in one update.
package cascade

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/pricing"
	"github.com/goliatone/go-orderform/pkg/selectctl"
	"github.com/goliatone/go-orderform/pkg/store"
)

// ErrIncomplete is returned by Submit while a required selection is missing.
var ErrIncomplete = errors.New("cascade: form incomplete")

// Focus targets, in tab order.
const (
	focusCountry = iota
	focusHarbor
	focusItem
	focusPrice
	focusDiscount
	focusCount
)

var controlNames = [3]string{"country", "harbor", "item"}

// Option configures a Form.
type Option func(*config)

type config struct {
	debounce     time.Duration
	fetchTimeout time.Duration
	logger       *zap.Logger
	store        *store.Store
	labels       [3]string
}

// WithDebounce sets the debounce interval of every control.
func WithDebounce(d time.Duration) Option {
	return func(c *config) { c.debounce = d }
}

// WithFetchTimeout bounds every control fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) { c.fetchTimeout = d }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStore injects the state container instead of creating one.
func WithStore(s *store.Store) Option {
	return func(c *config) { c.store = s }
}

// WithLabels overrides the control titles (country, harbor, item).
func WithLabels(country, harbor, item string) Option {
	return func(c *config) {
		c.labels = [3]string{country, harbor, item}
	}
}

// Form is the cascading order form. It implements tea.Model.
type Form struct {
	store    *store.Store
	controls [3]selectctl.Model
	price    textinput.Model
	discount textinput.Model
	focus    int
	logger   *zap.Logger

	inputErr  error
	submitErr error
	submitted bool
	aborted   bool
}

// New builds a form over fetchers.
func New(fetchers Fetchers, options ...Option) *Form {
	cfg := config{
		debounce:     selectctl.DefaultDebounce,
		fetchTimeout: 10 * time.Second,
		logger:       zap.NewNop(),
		labels:       [3]string{"Country", "Harbor", "Item"},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	f := &Form{
		store:  cfg.store,
		logger: cfg.logger,
	}
	if f.store == nil {
		logger := cfg.logger
		f.store = store.New(store.WithObserver(func(ev store.Event) {
			logger.Debug("store event",
				zap.String("form", ev.StoreID),
				zap.String("kind", string(ev.Kind)),
				zap.String("level", ev.Level.String()),
				zap.String("value", ev.Value),
			)
		}))
	}

	for _, level := range model.Levels {
		f.controls[level] = selectctl.New(controlNames[level], fetchers.forLevel(level),
			selectctl.WithLabel(cfg.labels[level]),
			selectctl.WithPlaceholder(fmt.Sprintf("Search %s", controlNames[level])),
			selectctl.WithDebounce(cfg.debounce),
			selectctl.WithFetchTimeout(cfg.fetchTimeout),
			selectctl.WithLogger(cfg.logger),
		)
	}
	f.price = newNumberInput("Price: ")
	f.discount = newNumberInput("Discount %: ")
	return f
}

func newNumberInput(prompt string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = "0"
	in.CharLimit = 20
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// Store exposes the state container.
func (f *Form) Store() *store.Store { return f.store }

// Control returns a snapshot of the control for level.
func (f *Form) Control(level model.Level) selectctl.Model {
	return f.controls[level]
}

// Fields returns the current form fields.
func (f *Form) Fields() model.FormFields { return f.store.Fields() }

// Submitted reports whether the user confirmed the form.
func (f *Form) Submitted() bool { return f.submitted }

// Aborted reports whether the user left without submitting.
func (f *Form) Aborted() bool { return f.aborted }

// Submit validates required selections and returns the form fields.
func (f *Form) Submit() (model.FormFields, error) {
	fields := f.store.Fields()
	switch {
	case fields.Country == nil:
		return fields, fmt.Errorf("%w: country is required", ErrIncomplete)
	case fields.Harbor == nil:
		return fields, fmt.Errorf("%w: harbor is required", ErrIncomplete)
	case fields.Item == nil:
		return fields, fmt.Errorf("%w: item is required", ErrIncomplete)
	}
	return fields, nil
}

// Init focuses the country control, which primes the country list.
func (f *Form) Init() tea.Cmd {
	f.store.BeginFetch(model.LevelCountry, "")
	return f.setFocus(focusCountry)
}

// Focus moves key input to level and returns the control's focus command.
func (f *Form) Focus(level model.Level) tea.Cmd {
	return f.setFocus(int(level))
}

// Search sets the search text of level.
func (f *Form) Search(level model.Level, query string) tea.Cmd {
	return f.controls[level].SetQuery(query)
}

// Choose picks the option at index on level.
func (f *Form) Choose(level model.Level, index int) tea.Cmd {
	return f.controls[level].Choose(index)
}

// ClearSelection clears the value of level, cascading to descendants.
func (f *Form) ClearSelection(level model.Level) tea.Cmd {
	return f.controls[level].Clear()
}

// SetPrice parses and stores the price input.
func (f *Form) SetPrice(raw string) error {
	v, err := pricing.ParseAmount(raw)
	if err == nil {
		err = f.store.SetPrice(v)
	}
	if err != nil {
		return err
	}
	f.price.SetValue(pricing.Format(v))
	return nil
}

// SetDiscount parses and stores the discount input.
func (f *Form) SetDiscount(raw string) error {
	v, err := pricing.ParseAmount(raw)
	if err == nil {
		err = f.store.SetDiscount(v)
	}
	if err != nil {
		return err
	}
	f.discount.SetValue(pricing.Format(v))
	return nil
}

// Update routes control messages, applies the cascade, and handles keys.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case selectctl.ChangeMsg:
		return f, f.onChange(msg)
	case selectctl.ResolvedMsg:
		f.onResolved(msg)
		return f, nil
	case tea.KeyMsg:
		return f, f.onKey(msg)
	}

	// Debounce timers and fetch results; each control ignores foreign ones.
	var cmds []tea.Cmd
	for i := range f.controls {
		var cmd tea.Cmd
		f.controls[i], cmd = f.controls[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return f, tea.Batch(cmds...)
}

func (f *Form) levelOf(name string) (model.Level, bool) {
	for i, n := range controlNames {
		if n == name {
			return model.Level(i), true
		}
	}
	return 0, false
}

func (f *Form) onChange(msg selectctl.ChangeMsg) tea.Cmd {
	level, ok := f.levelOf(msg.Name)
	if !ok {
		return nil
	}

	switch level {
	case model.LevelCountry:
		refetch := f.store.SelectCountry(msg.Value)
		f.controls[model.LevelHarbor].Reset(refetch.Scope)
		f.controls[model.LevelItem].Reset("")
		f.syncPricingInputs()
		return f.prime(refetch)

	case model.LevelHarbor:
		refetch := f.store.SelectHarbor(msg.Value)
		f.controls[model.LevelItem].Reset(refetch.Scope)
		f.syncPricingInputs()
		if refetch.Scope == "" {
			// Items wait for a harbor.
			return nil
		}
		return f.prime(refetch)

	default:
		if _, found := f.store.SelectItem(msg.Value); !found {
			f.logger.Debug("item not in the last fetched list; ignoring",
				zap.String("item", msg.Value.Value))
		}
		f.controls[model.LevelItem].SetValue(f.store.Selected(model.LevelItem))
		f.syncPricingInputs()
		return nil
	}
}

// prime issues the re-fetch requested by a cascade. The store has already
// cleared the level, so the fetch starts from an empty list.
func (f *Form) prime(refetch store.Refetch) tea.Cmd {
	f.store.BeginFetch(refetch.Level, refetch.Scope)
	return f.controls[refetch.Level].Prime()
}

func (f *Form) onResolved(msg selectctl.ResolvedMsg) {
	level, ok := f.levelOf(msg.Name)
	if !ok {
		return
	}
	if msg.Err != nil {
		f.store.FailFetch(level, msg.Scope, msg.Err)
		return
	}
	if level == model.LevelItem {
		if items, ok := msg.Page.Detail.([]model.ItemOption); ok {
			f.store.ResolveItems(msg.Scope, items)
			return
		}
	}
	f.store.ResolveFetch(level, msg.Scope, msg.Page.Options)
}

func (f *Form) syncPricingInputs() {
	fields := f.store.Fields()
	f.price.SetValue(pricing.Format(fields.Price))
	f.discount.SetValue(pricing.Format(fields.Discount))
	f.inputErr = nil
}

func (f *Form) onKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		f.aborted = true
		return tea.Quit
	case tea.KeyTab:
		return f.setFocus((f.focus + 1) % focusCount)
	case tea.KeyShiftTab:
		return f.setFocus((f.focus + focusCount - 1) % focusCount)
	case tea.KeyCtrlS:
		if _, err := f.Submit(); err != nil {
			f.submitErr = err
			return nil
		}
		f.submitted = true
		return tea.Quit
	}

	switch f.focus {
	case focusPrice:
		var cmd tea.Cmd
		f.price, cmd = f.price.Update(msg)
		f.inputErr = f.applyAmount(f.price.Value(), f.store.SetPrice)
		return cmd
	case focusDiscount:
		var cmd tea.Cmd
		f.discount, cmd = f.discount.Update(msg)
		f.inputErr = f.applyAmount(f.discount.Value(), f.store.SetDiscount)
		return cmd
	default:
		var cmd tea.Cmd
		f.controls[f.focus], cmd = f.controls[f.focus].Update(msg)
		return cmd
	}
}

func (f *Form) applyAmount(raw string, set func(float64) error) error {
	v, err := pricing.ParseAmount(raw)
	if err != nil {
		return err
	}
	return set(v)
}

func (f *Form) setFocus(target int) tea.Cmd {
	for i := range f.controls {
		f.controls[i].Blur()
	}
	f.price.Blur()
	f.discount.Blur()
	f.focus = target

	switch target {
	case focusPrice:
		return f.price.Focus()
	case focusDiscount:
		return f.discount.Focus()
	default:
		return f.controls[target].Focus()
	}
}
