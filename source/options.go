package source

import (
	"go.uber.org/zap"

	"github.com/nrfta/liststate-go"
	"github.com/nrfta/liststate-go/sorter"
)

// Option configures an ItemsSource.
type Option[T any] func(*ItemsSource[T])

// WithListener registers the lifecycle listener of the source.
func WithListener[T any](listener liststate.Listener[T]) Option[T] {
	return func(s *ItemsSource[T]) {
		if listener != nil {
			s.listener = listener
		}
	}
}

// WithLogger sets the logger. The source is silent by default.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(s *ItemsSource[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig sets the defaults of the list view.
func WithConfig[T any](config *liststate.Config) Option[T] {
	return func(s *ItemsSource[T]) {
		if config != nil {
			s.config = config
		}
	}
}

// WithSchema registers how items are sorted on the client (plain lists).
func WithSchema[T any](schema *sorter.Schema[T]) Option[T] {
	return func(s *ItemsSource[T]) {
		s.schema = schema
	}
}

// WithState sets the initial state, e.g. one restored by a StateStorage.
func WithState[T any](state liststate.State) Option[T] {
	return func(s *ItemsSource[T]) {
		s.initial = &state
	}
}
