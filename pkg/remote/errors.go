package remote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-orderform/pkg/model"
)

var (
	// ErrNetwork matches every fetch failure: transport errors, non-success
	// statuses, and undecodable bodies.
	ErrNetwork = errors.New("remote: network failure")
	// ErrUnknownLevel is returned when a level outside the scope chain is requested.
	ErrUnknownLevel = errors.New("remote: unknown level")
	// ErrNoEndpoints is returned by discovery when the document exposes none of
	// the list endpoints.
	ErrNoEndpoints = errors.New("remote: no list endpoints discovered")
)

// FetchError describes a failed list fetch.
type FetchError struct {
	Level      model.Level
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("remote: fetch %s", e.Level)
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(": unexpected status %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports ErrNetwork so callers can branch without inspecting the type.
func (e *FetchError) Is(target error) bool {
	return target == ErrNetwork
}
