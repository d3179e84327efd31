package selectctl

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
)

// State is the fetch state of one control.
type State int

const (
	// Idle: nothing entered and nothing in flight.
	Idle State = iota
	// PendingFetch: the debounce timer is armed.
	PendingFetch
	// Fetching: a request is in flight.
	Fetching
	// Resolved: the latest response has been rendered.
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingFetch:
		return "pending"
	case Fetching:
		return "fetching"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// ErrNoFetcher is reported when a control is used without a fetch function.
var ErrNoFetcher = errors.New("selectctl: fetch function is nil")

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Model is one debounced async single-select control.
type Model struct {
	// Input holds the search text. It is exported so callers can style it.
	Input textinput.Model

	id       int
	name     string
	label    string
	fetch    FetchFunc
	scope    string
	debounce time.Duration
	timeout  time.Duration
	pageSize int
	logger   *zap.Logger

	epoch       int
	generation  int
	debounceSeq int
	primed      bool
	state       State
	query       string
	options     []model.Option
	cursor      int
	value       *model.Option
	err         error
	focused     bool
}

// New constructs a control named name (used to route messages in parents).
func New(name string, fetch FetchFunc, options ...Option) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		Input:    input,
		id:       nextID(),
		name:     name,
		label:    name,
		fetch:    fetch,
		debounce: DefaultDebounce,
		timeout:  10 * time.Second,
		pageSize: 8,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&m)
	}
	return m
}

// ID returns the unique instance identifier.
func (m Model) ID() int { return m.id }

// Name returns the control name.
func (m Model) Name() string { return m.name }

// State reports the fetch state.
func (m Model) State() State { return m.state }

// Generation reports how many fetches were issued since the last reset.
func (m Model) Generation() int { return m.generation }

// Epoch reports how many times the control was reset.
func (m Model) Epoch() int { return m.epoch }

// Primed reports whether the focus-triggered initial fetch already ran.
func (m Model) Primed() bool { return m.primed }

// Scope reports the ancestor scope the control fetches within.
func (m Model) Scope() string { return m.scope }

// Query reports the current search text.
func (m Model) Query() string { return m.query }

// Focused reports whether the control receives key input.
func (m Model) Focused() bool { return m.focused }

// Err reports the error of the latest accepted fetch.
func (m Model) Err() error { return m.err }

// Options returns a copy of the rendered options.
func (m Model) Options() []model.Option {
	return append([]model.Option(nil), m.options...)
}

// Value returns the selected option, or nil.
func (m Model) Value() *model.Option {
	return model.CloneOption(m.value)
}

// SetValue sets the selection without emitting a ChangeMsg.
func (m *Model) SetValue(opt *model.Option) {
	m.value = model.CloneOption(opt)
}

// Focus gives the control key input. The first focus of an instance that has
// never fetched issues one empty-query fetch.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	cmds := []tea.Cmd{m.Input.Focus()}
	if !m.primed {
		m.primed = true
		cmds = append(cmds, m.SetQuery(""))
	}
	return tea.Batch(cmds...)
}

// Blur removes key input.
func (m *Model) Blur() {
	m.focused = false
	m.Input.Blur()
}

// SetQuery records new search text and arms the debounce timer. Only the
// last call within the interval leads to a fetch.
func (m *Model) SetQuery(query string) tea.Cmd {
	m.query = query
	if m.Input.Value() != query {
		m.Input.SetValue(query)
	}
	m.debounceSeq++
	if m.debounce <= 0 {
		return m.Fetch(query)
	}
	m.state = PendingFetch
	msg := debounceMsg{id: m.id, epoch: m.epoch, seq: m.debounceSeq, query: query}
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return msg
	})
}

// Prime issues an immediate empty-query fetch and marks the instance primed.
// Parents call it after a cascade reset.
func (m *Model) Prime() tea.Cmd {
	m.primed = true
	m.query = ""
	m.Input.SetValue("")
	return m.Fetch("")
}

// Fetch issues a request for query right away. The returned command carries
// the generation it was issued under.
func (m *Model) Fetch(query string) tea.Cmd {
	m.generation++
	m.state = Fetching

	var (
		id         = m.id
		epoch      = m.epoch
		generation = m.generation
		scope      = m.scope
		fetch      = m.fetch
		timeout    = m.timeout
	)
	return func() tea.Msg {
		res := resultMsg{id: id, epoch: epoch, generation: generation, query: query, scope: scope}
		if fetch == nil {
			res.err = ErrNoFetcher
			return res
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res.page, res.err = fetch(ctx, query, scope)
		return res
	}
}

// Reset turns the control into a brand-new instance for scope: generation
// back to zero, options and value cleared, primed flag cleared. Pending
// debounce timers and in-flight responses from before the reset are ignored
// when they arrive.
func (m *Model) Reset(scope string) {
	m.epoch++
	m.generation = 0
	m.debounceSeq = 0
	m.primed = false
	m.state = Idle
	m.scope = scope
	m.query = ""
	m.Input.SetValue("")
	m.options = nil
	m.cursor = 0
	m.value = nil
	m.err = nil
}

// Choose selects the option at index and emits a ChangeMsg.
func (m *Model) Choose(index int) tea.Cmd {
	if index < 0 || index >= len(m.options) {
		return nil
	}
	m.cursor = index
	m.value = model.CloneOption(&m.options[index])
	return m.change()
}

// Clear drops the selection and emits a ChangeMsg with a nil value.
func (m *Model) Clear() tea.Cmd {
	if m.value == nil {
		return nil
	}
	m.value = nil
	return m.change()
}

func (m *Model) change() tea.Cmd {
	msg := ChangeMsg{ID: m.id, Name: m.name, Value: model.CloneOption(m.value)}
	return func() tea.Msg { return msg }
}

// Init satisfies tea.Model; the control fetches on focus, not on start.
func (m Model) Init() tea.Cmd { return nil }

// Update handles debounce timers, fetch results, and key input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.epoch != m.epoch || msg.seq != m.debounceSeq {
			return m, nil
		}
		cmd := m.Fetch(msg.query)
		return m, cmd

	case resultMsg:
		if msg.id != m.id {
			return m, nil
		}
		if msg.epoch != m.epoch || msg.generation != m.generation {
			m.logger.Debug("discarding stale response",
				zap.String("control", m.name),
				zap.Int("generation", msg.generation),
				zap.Int("current", m.generation),
				zap.Bool("reset", msg.epoch != m.epoch),
			)
			return m, nil
		}
		cmd := m.accept(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) accept(msg resultMsg) tea.Cmd {
	m.state = Resolved
	m.err = msg.err
	if msg.err != nil {
		m.logger.Warn("option fetch failed; showing no results",
			zap.String("control", m.name),
			zap.String("query", msg.query),
			zap.String("scope", msg.scope),
			zap.Error(msg.err),
		)
		m.options = nil
		msg.page = Page{}
	} else {
		m.options = append([]model.Option(nil), msg.page.Options...)
	}
	if m.cursor >= len(m.options) {
		m.cursor = 0
	}

	resolved := ResolvedMsg{
		ID:    m.id,
		Name:  m.name,
		Scope: msg.scope,
		Query: msg.query,
		Page:  msg.page,
		Err:   msg.err,
	}
	return func() tea.Msg { return resolved }
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown, tea.KeyCtrlN:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		cmd := m.Choose(m.cursor)
		return m, cmd
	case tea.KeyEsc:
		cmd := m.Clear()
		return m, cmd
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if after := m.Input.Value(); after != before {
		search := m.SetQuery(after)
		return m, tea.Batch(cmd, search)
	}
	return m, cmd
}
