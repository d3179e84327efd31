// Package store holds the cascading selection state of one order form: the
// option list of every level, its fetch status, the selected values, and the
// derived pricing fields.
//
// A Store is an explicit container passed by reference to whoever needs it.
// It is not safe for concurrent use; callers serialize mutations on a single
// event loop. Reducers that clear descendant levels do so before returning,
// so a caller that issues the returned Refetch can never observe an option
// set belonging to an abandoned ancestor.
package store

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/pricing"
)

// Refetch tells the caller which level must be re-populated, and for which
// scope, after a selection change.
type Refetch struct {
	Level model.Level
	Scope string
}

type levelState struct {
	selected *model.Option
	options  []model.Option
	items    []model.ItemOption
	status   model.FetchStatus
	err      error
	scope    string
}

// Store is the per-form state container.
type Store struct {
	id       string
	levels   [3]levelState
	fields   model.FormFields
	observer func(Event)
}

// Option configures a Store.
type Option func(*Store)

// WithID fixes the instance identifier instead of generating one.
func WithID(id string) Option {
	return func(s *Store) {
		if id != "" {
			s.id = id
		}
	}
}

// WithObserver registers a callback invoked after every mutation.
func WithObserver(fn func(Event)) Option {
	return func(s *Store) {
		s.observer = fn
	}
}

// New constructs an empty store.
func New(options ...Option) *Store {
	s := &Store{id: uuid.NewString()}
	for i := range s.levels {
		s.levels[i].status = model.StatusIdle
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// ID identifies the form instance.
func (s *Store) ID() string { return s.id }

// SelectCountry records the country selection and invalidates harbors and
// items. The returned Refetch targets harbors scoped to the new country, or
// the unscoped harbor list when opt is nil.
func (s *Store) SelectCountry(opt *model.Option) Refetch {
	s.levels[model.LevelCountry].selected = model.CloneOption(opt)
	scope := valueOf(opt)
	s.resetLevel(model.LevelHarbor, scope)
	s.resetLevel(model.LevelItem, "")
	s.clearDerived()
	s.syncSelections()
	s.emit(Event{Kind: EventSelect, Level: model.LevelCountry, Value: scope})
	return Refetch{Level: model.LevelHarbor, Scope: scope}
}

// SelectHarbor records the harbor selection and invalidates items.
func (s *Store) SelectHarbor(opt *model.Option) Refetch {
	s.levels[model.LevelHarbor].selected = model.CloneOption(opt)
	scope := valueOf(opt)
	s.resetLevel(model.LevelItem, scope)
	s.clearDerived()
	s.syncSelections()
	s.emit(Event{Kind: EventSelect, Level: model.LevelHarbor, Value: scope})
	return Refetch{Level: model.LevelItem, Scope: scope}
}

// SelectItem looks opt up in the last fetched item list and, when found,
// overwrites description, discount, price, and total in one update. An item
// missing from the list (a stale selection) leaves the store untouched and
// reports false. A nil opt clears the item and its derived fields.
func (s *Store) SelectItem(opt *model.Option) (model.FormFields, bool) {
	if opt == nil {
		s.levels[model.LevelItem].selected = nil
		s.clearDerived()
		s.syncSelections()
		s.emit(Event{Kind: EventSelect, Level: model.LevelItem})
		return s.Fields(), true
	}

	detail, ok := s.lookupItem(opt.Value)
	if !ok {
		return s.Fields(), false
	}

	selected := detail.Option
	s.levels[model.LevelItem].selected = &selected
	s.fields.Description = detail.Description
	s.fields.Discount = detail.Discount
	s.fields.Price = detail.Price
	s.fields.Total = pricing.Total(detail.Price, detail.Discount)
	s.syncSelections()
	s.emit(Event{Kind: EventSelect, Level: model.LevelItem, Value: selected.Value})
	return s.Fields(), true
}

// SetPrice validates and stores the price, recomputing the total.
func (s *Store) SetPrice(price float64) error {
	if err := pricing.ValidatePrice(price); err != nil {
		return err
	}
	s.fields.Price = price
	s.fields.Total = pricing.Total(s.fields.Price, s.fields.Discount)
	s.emit(Event{Kind: EventFields, Level: model.LevelItem})
	return nil
}

// SetDiscount validates and stores the discount, recomputing the total.
func (s *Store) SetDiscount(discount float64) error {
	if err := pricing.ValidateDiscount(discount); err != nil {
		return err
	}
	s.fields.Discount = discount
	s.fields.Total = pricing.Total(s.fields.Price, s.fields.Discount)
	s.emit(Event{Kind: EventFields, Level: model.LevelItem})
	return nil
}

// SetDescription overwrites the free-text description.
func (s *Store) SetDescription(description string) {
	s.fields.Description = description
	s.emit(Event{Kind: EventFields, Level: model.LevelItem})
}

// BeginFetch marks level as loading for scope. It reports false when scope is
// no longer the level's current scope.
func (s *Store) BeginFetch(level model.Level, scope string) bool {
	if !s.accepts(level, scope) {
		return false
	}
	s.levels[level].status = model.StatusLoading
	s.emit(Event{Kind: EventFetchBegin, Level: level, Value: scope})
	return true
}

// ResolveFetch replaces the option list of level. Results for a scope other
// than the current one are ignored and reported as false.
func (s *Store) ResolveFetch(level model.Level, scope string, options []model.Option) bool {
	if !s.accepts(level, scope) {
		return false
	}
	st := &s.levels[level]
	st.options = append([]model.Option(nil), options...)
	if level == model.LevelItem {
		st.items = nil
	}
	st.status = model.StatusSucceeded
	st.err = nil
	s.emit(Event{Kind: EventFetchResolve, Level: level, Value: scope, Count: len(options)})
	return true
}

// ResolveItems replaces the item list, keeping the detail used by SelectItem.
// Items with an out-of-range price or discount are dropped.
func (s *Store) ResolveItems(scope string, items []model.ItemOption) bool {
	if !s.accepts(model.LevelItem, scope) {
		return false
	}
	st := &s.levels[model.LevelItem]
	st.items = make([]model.ItemOption, 0, len(items))
	st.options = make([]model.Option, 0, len(items))
	for _, it := range items {
		if pricing.ValidateItem(it.Price, it.Discount) != nil {
			continue
		}
		st.items = append(st.items, it)
		st.options = append(st.options, it.Option)
	}
	st.status = model.StatusSucceeded
	st.err = nil
	s.emit(Event{Kind: EventFetchResolve, Level: model.LevelItem, Value: scope, Count: len(st.items)})
	return true
}

// FailFetch records a failed fetch; the option list degrades to empty.
func (s *Store) FailFetch(level model.Level, scope string, err error) bool {
	if !s.accepts(level, scope) {
		return false
	}
	st := &s.levels[level]
	st.options = nil
	if level == model.LevelItem {
		st.items = nil
	}
	st.status = model.StatusFailed
	st.err = err
	s.emit(Event{Kind: EventFetchFail, Level: level, Value: scope, Err: err})
	return true
}

// Clear empties the option list of level without touching selections.
func (s *Store) Clear(level model.Level) {
	if !level.Valid() {
		return
	}
	st := &s.levels[level]
	st.options = nil
	st.items = nil
	st.status = model.StatusIdle
	st.err = nil
	s.emit(Event{Kind: EventClear, Level: level})
}

// Options returns a copy of the option list of level.
func (s *Store) Options(level model.Level) []model.Option {
	if !level.Valid() {
		return nil
	}
	return append([]model.Option(nil), s.levels[level].options...)
}

// Items returns a copy of the last fetched item detail list.
func (s *Store) Items() []model.ItemOption {
	return append([]model.ItemOption(nil), s.levels[model.LevelItem].items...)
}

// Status reports the fetch status of level.
func (s *Store) Status(level model.Level) model.FetchStatus {
	if !level.Valid() {
		return model.StatusIdle
	}
	return s.levels[level].status
}

// Err reports the last fetch error of level.
func (s *Store) Err(level model.Level) error {
	if !level.Valid() {
		return nil
	}
	return s.levels[level].err
}

// Scope reports the ancestor identifier the level's list is valid for.
func (s *Store) Scope(level model.Level) string {
	if !level.Valid() {
		return ""
	}
	return s.levels[level].scope
}

// Selected returns a copy of the selection at level.
func (s *Store) Selected(level model.Level) *model.Option {
	if !level.Valid() {
		return nil
	}
	return model.CloneOption(s.levels[level].selected)
}

// Fields returns a copy of the form fields.
func (s *Store) Fields() model.FormFields {
	out := s.fields
	out.Country = model.CloneOption(s.fields.Country)
	out.Harbor = model.CloneOption(s.fields.Harbor)
	out.Item = model.CloneOption(s.fields.Item)
	return out
}

func (s *Store) accepts(level model.Level, scope string) bool {
	if !level.Valid() {
		return false
	}
	return s.levels[level].scope == scope
}

func (s *Store) resetLevel(level model.Level, scope string) {
	s.levels[level] = levelState{status: model.StatusIdle, scope: scope}
	s.emit(Event{Kind: EventClear, Level: level, Value: scope})
}

func (s *Store) clearDerived() {
	s.fields.Description = ""
	s.fields.Discount = 0
	s.fields.Price = 0
	s.fields.Total = 0
}

func (s *Store) syncSelections() {
	s.fields.Country = model.CloneOption(s.levels[model.LevelCountry].selected)
	s.fields.Harbor = model.CloneOption(s.levels[model.LevelHarbor].selected)
	s.fields.Item = model.CloneOption(s.levels[model.LevelItem].selected)
}

func (s *Store) lookupItem(id string) (model.ItemOption, bool) {
	for _, it := range s.levels[model.LevelItem].items {
		if it.Value == id {
			return it, true
		}
	}
	return model.ItemOption{}, false
}

func (s *Store) emit(ev Event) {
	if s.observer == nil {
		return
	}
	ev.StoreID = s.id
	s.observer(ev)
}

func valueOf(opt *model.Option) string {
	if opt == nil {
		return ""
	}
	return opt.Value
}
