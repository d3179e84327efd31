package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// the final confirmation.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoFetchers is returned when the renderer has no option source.
	ErrNoFetchers = errors.New("tui: option fetchers are required")
)
