// Package storage persists the state of a list view so it can be restored
// later, typically from the query string of a bookmarked URL.
package storage

import (
	"sync"

	"github.com/nrfta/liststate-go"
)

// StateStorage reads and writes the persisted state of a list view.
type StateStorage interface {
	// GetState returns the defaults overlaid with any stored state.
	GetState() liststate.State

	// SetState stores state. Writing is best-effort.
	SetState(state liststate.State)
}

// Storage keeps the state in memory. It starts from the defaults of a Config.
type Storage struct {
	mu     sync.RWMutex
	config *liststate.Config
	state  liststate.State
}

var _ StateStorage = (*Storage)(nil)

// Option configures a Storage.
type Option func(*Storage)

// WithState overlays the defaults with an explicit initial state.
// Non-positive page and page size values keep their defaults.
func WithState(state liststate.State) Option {
	return func(s *Storage) {
		s.state = overlay(s.state, state)
	}
}

// New creates an in-memory Storage. A nil config uses liststate.NewConfig().
func New(config *liststate.Config, opts ...Option) *Storage {
	if config == nil {
		config = liststate.NewConfig()
	}

	s := &Storage{
		config: config,
		state:  config.DefaultState(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Defaults returns the state a list view starts from.
func (s *Storage) Defaults() liststate.State {
	return s.config.DefaultState()
}

func (s *Storage) GetState() liststate.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

func (s *Storage) SetState(state liststate.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = overlay(s.config.DefaultState(), state)
}

func overlay(base, state liststate.State) liststate.State {
	if state.Page > 0 {
		base.Page = state.Page
	}

	if state.ItemsPerPage > 0 {
		base.ItemsPerPage = state.ItemsPerPage
	}

	base.OrderByField = state.OrderByField
	base.OrderByReverse = state.OrderByReverse
	base.SearchTerm = state.SearchTerm

	if state.Tags != nil {
		base.Tags = state.Tags
	}

	return base.Clone()
}
