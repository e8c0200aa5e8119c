package storage

import (
	"net/url"
	"sync"

	"github.com/nrfta/liststate-go"
)

// QueryMedium is a liststate.Medium backed by url.Values. It is safe for
// concurrent use.
type QueryMedium struct {
	mu       sync.RWMutex
	values   url.Values
	onChange func(encoded string)
}

var _ liststate.Medium = (*QueryMedium)(nil)

// NewQueryMedium parses a raw query string. Malformed pairs are skipped and
// reported through the returned error; the medium is usable either way.
func NewQueryMedium(rawQuery string) (*QueryMedium, error) {
	values, err := url.ParseQuery(rawQuery)
	if values == nil {
		values = url.Values{}
	}

	return &QueryMedium{values: values}, err
}

// NewQueryMediumFromURL creates a medium over a copy of the query of u.
func NewQueryMediumFromURL(u *url.URL) *QueryMedium {
	values := url.Values{}
	if u != nil {
		values = u.Query()
	}
	return &QueryMedium{values: values}
}

// OnChange registers a callback receiving the encoded query after every Set,
// e.g. to push a new browser history entry or redirect.
func (m *QueryMedium) OnChange(fn func(encoded string)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

func (m *QueryMedium) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.values.Has(key) {
		return "", false
	}
	return m.values.Get(key), true
}

func (m *QueryMedium) Set(values map[string]*string) {
	m.mu.Lock()
	for key, value := range values {
		if value == nil {
			m.values.Del(key)
			continue
		}
		m.values.Set(key, *value)
	}
	encoded := m.values.Encode()
	onChange := m.onChange
	m.mu.Unlock()

	if onChange != nil {
		onChange(encoded)
	}
}

// Encode returns the query string, sorted by key.
func (m *QueryMedium) Encode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values.Encode()
}
