package remote

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-orderform/pkg/model"
)

var labelPattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// placeholderLabel is what generated API explorers send for string fields.
const placeholderLabel = "string"

// ValidLabel reports whether a display name may be shown: non-empty, not the
// placeholder value, and made of ASCII letters and whitespace only.
func ValidLabel(label string) bool {
	if label == "" {
		return false
	}
	if strings.EqualFold(label, placeholderLabel) {
		return false
	}
	return labelPattern.MatchString(label)
}

// orderedSet de-duplicates by identifier. A repeated identifier keeps the
// position of its first occurrence and takes the value of its last.
type orderedSet[T any] struct {
	order []string
	byID  map[string]T
}

func newOrderedSet[T any](capacity int) *orderedSet[T] {
	return &orderedSet[T]{
		order: make([]string, 0, capacity),
		byID:  make(map[string]T, capacity),
	}
}

func (s *orderedSet[T]) put(id string, value T) {
	if _, ok := s.byID[id]; !ok {
		s.order = append(s.order, id)
	}
	s.byID[id] = value
}

func (s *orderedSet[T]) values() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Dedupe applies the same policy to an arbitrary option list.
func Dedupe(opts []model.Option) []model.Option {
	set := newOrderedSet[model.Option](len(opts))
	for _, opt := range opts {
		set.put(opt.Value, opt)
	}
	return set.values()
}
