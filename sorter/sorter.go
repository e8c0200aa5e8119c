// Package sorter tracks the sort field and direction of a list view.
//
// The sort order travels on the wire as a single compiled string using a
// leading "-" for descending order:
//
//	Compile("created_at", true)  // "-created_at"
//	Compile("name", false)       // "name"
//	Compile("", true)            // "" (no ordering)
//
// Parse is the inverse of Compile.
//
// For client-side sorted (plain) lists a Sorter can also sort items. Values are
// taken from a Schema when one is registered for the field, otherwise from the
// struct field or map key with the field's name.
package sorter

import (
	"slices"
	"strings"
)

const descPrefix = "-"

// Compile encodes a field and direction into a single order string.
// An empty field compiles to "" regardless of reverse.
func Compile(field string, reverse bool) string {
	if field == "" {
		return ""
	}

	if reverse {
		return descPrefix + field
	}

	return field
}

// Parse decodes an order string built by Compile.
// An empty order (or a bare "-") yields no field, not reversed.
func Parse(compiled string) (field string, reverse bool) {
	compiled = strings.TrimSpace(compiled)

	if strings.HasPrefix(compiled, descPrefix) {
		field = strings.TrimPrefix(compiled, descPrefix)
		if field == "" {
			return "", false
		}
		return field, true
	}

	return compiled, false
}

// Sorter holds the sort field and direction of a list view.
// It is a value type: copying a Sorter yields an independent snapshot that
// shares the (read-only) schema.
type Sorter[T any] struct {
	field   string
	reverse bool
	schema  *Schema[T]
}

// New creates a Sorter with no field selected. schema may be nil.
func New[T any](schema *Schema[T]) Sorter[T] {
	return Sorter[T]{schema: schema}
}

// Field returns the sort field, "" when none is selected.
func (s Sorter[T]) Field() string {
	return s.field
}

// Reverse reports whether the order is descending.
func (s Sorter[T]) Reverse() bool {
	return s.reverse
}

// Compiled returns the order string of the sorter.
func (s Sorter[T]) Compiled() string {
	return Compile(s.field, s.reverse)
}

// SetField selects field. An empty field clears the selection.
func (s *Sorter[T]) SetField(field string) {
	s.field = strings.TrimSpace(field)
}

// SetReverse sets the direction.
func (s *Sorter[T]) SetReverse(reverse bool) {
	s.reverse = reverse
}

// SetCompiled sets field and direction from an order string.
func (s *Sorter[T]) SetCompiled(compiled string) {
	s.field, s.reverse = Parse(compiled)
}

// ToggleField flips the direction when field is already selected, otherwise
// selects field in ascending order. An empty field is ignored.
func (s *Sorter[T]) ToggleField(field string) {
	field = strings.TrimSpace(field)
	if field == "" {
		return
	}

	if field == s.field {
		s.reverse = !s.reverse
		return
	}

	s.field = field
	s.reverse = false
}

// Sort returns a sorted copy of items. The boolean is false when no field is
// selected, in which case callers must keep their current order.
//
// Items are sorted ascending with a stable sort; a descending order is the
// ascending result reversed, so items with equal keys come out in reverse
// input order and nil keys come first.
func (s Sorter[T]) Sort(items []T) ([]T, bool) {
	if s.field == "" {
		return nil, false
	}

	sorted := s.ascending(items)
	if s.reverse {
		slices.Reverse(sorted)
	}

	return sorted, true
}

func (s Sorter[T]) ascending(items []T) []T {
	if cmp := s.schema.comparator(s.field); cmp != nil {
		sorted := slices.Clone(items)
		slices.SortStableFunc(sorted, cmp)
		return sorted
	}

	iteratee := s.schema.iteratee(s.field)

	// Extract keys once per item rather than once per comparison.
	type keyed struct {
		key  any
		item T
	}

	decorated := make([]keyed, len(items))
	for i, item := range items {
		decorated[i] = keyed{key: iteratee(item), item: item}
	}

	slices.SortStableFunc(decorated, func(a, b keyed) int {
		return CompareValues(a.key, b.key)
	})

	sorted := make([]T, len(decorated))
	for i, d := range decorated {
		sorted[i] = d.item
	}

	return sorted
}
