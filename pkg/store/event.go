package store

import "github.com/goliatone/go-orderform/pkg/model"

// EventKind classifies store mutations.
type EventKind string

const (
	EventSelect       EventKind = "select"
	EventClear        EventKind = "clear"
	EventFields       EventKind = "fields"
	EventFetchBegin   EventKind = "fetch_begin"
	EventFetchResolve EventKind = "fetch_resolve"
	EventFetchFail    EventKind = "fetch_fail"
)

// Event describes one mutation. Value carries the selected identifier for
// selections and the scope for fetch events.
type Event struct {
	StoreID string
	Kind    EventKind
	Level   model.Level
	Value   string
	Count   int
	Err     error
}
