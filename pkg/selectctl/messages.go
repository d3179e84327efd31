package selectctl

import "github.com/goliatone/go-orderform/pkg/model"

// ChangeMsg is emitted when the user picks (or clears) a value.
type ChangeMsg struct {
	ID    int
	Name  string
	Value *model.Option
}

// ResolvedMsg is emitted after a response has been accepted, so the parent
// can reduce it into its store. Err is set when the fetch failed; Page is
// then empty.
type ResolvedMsg struct {
	ID    int
	Name  string
	Scope string
	Query string
	Page  Page
	Err   error
}

type debounceMsg struct {
	id    int
	epoch int
	seq   int
	query string
}

type resultMsg struct {
	id         int
	epoch      int
	generation int
	query      string
	scope      string
	page       Page
	err        error
}
