package sorter

// Schema registers how the fields of an item type are sorted on the client.
// Fields without a registration fall back to the struct field or map key with
// the same name.
//
// Example:
//
//	var dashboardSchema = sorter.NewSchema[*Dashboard]().
//	    Field("name", func(d *Dashboard) any { return strings.ToLower(d.Name) }).
//	    Comparator("created_at", func(a, b *Dashboard) int { return a.CreatedAt.Compare(b.CreatedAt) })
type Schema[T any] struct {
	iteratees   map[string]func(T) any
	comparators map[string]func(a, b T) int
}

// NewSchema creates an empty Schema.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		iteratees:   make(map[string]func(T) any),
		comparators: make(map[string]func(a, b T) int),
	}
}

// Field registers an iteratee extracting the sort key of name.
// Keys are compared with CompareValues.
func (s *Schema[T]) Field(name string, iteratee func(T) any) *Schema[T] {
	s.iteratees[name] = iteratee
	return s
}

// Comparator registers a full comparison function for name. It takes
// precedence over an iteratee registered for the same field.
func (s *Schema[T]) Comparator(name string, cmp func(a, b T) int) *Schema[T] {
	s.comparators[name] = cmp
	return s
}

func (s *Schema[T]) comparator(name string) func(a, b T) int {
	if s == nil {
		return nil
	}
	return s.comparators[name]
}

func (s *Schema[T]) iteratee(name string) func(T) any {
	if s != nil {
		if fn, ok := s.iteratees[name]; ok {
			return fn
		}
	}

	return func(item T) any {
		return FieldValue(item, name)
	}
}
