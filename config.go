package liststate

import (
	"github.com/spf13/viper"
)

const (
	// DefaultPageSize is the number of items per page when not specified.
	DefaultPageSize = 20

	// DefaultMaxPageSize is the default maximum page size allowed.
	// Larger requests are capped, not rejected.
	DefaultMaxPageSize = 250

	// DefaultOrderField is the sort field used when nothing else is configured.
	DefaultOrderField = "created_at"
)

// Viper keys read by ConfigFromViper.
const (
	KeyPageSize     = "list.page_size"
	KeyMaxPageSize  = "list.max_page_size"
	KeyOrderBy      = "list.order_by"
	KeyOrderReverse = "list.order_reverse"
)

// Config holds the defaults of a list view.
// Use NewConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	cfg := liststate.NewConfig().WithDefaultPageSize(50).WithDefaultOrder("name", false)
type Config struct {
	// DefaultPageSize is the page size used when the state does not carry one.
	DefaultPageSize int

	// MaxPageSize caps the page size requested by users.
	MaxPageSize int

	// DefaultOrderField is the sort field used when the state does not carry one.
	// Empty means no ordering (server-side relevance).
	DefaultOrderField string

	// DefaultOrderReverse is the direction paired with DefaultOrderField.
	DefaultOrderReverse bool
}

// NewConfig creates a Config with sensible defaults:
// - DefaultPageSize: 20
// - MaxPageSize: 250
// - DefaultOrderField: created_at, ascending
func NewConfig() *Config {
	return &Config{
		DefaultPageSize:   DefaultPageSize,
		MaxPageSize:       DefaultMaxPageSize,
		DefaultOrderField: DefaultOrderField,
	}
}

// ConfigFromViper reads a Config from the list.* keys of v. Missing keys keep
// their defaults.
//
// Example config.yaml:
//
//	list:
//	  page_size: 50
//	  max_page_size: 500
//	  order_by: name
//	  order_reverse: false
func ConfigFromViper(v *viper.Viper) (*Config, error) {
	cfg := NewConfig()
	if v == nil {
		return cfg, nil
	}

	if v.IsSet(KeyPageSize) {
		cfg.DefaultPageSize = v.GetInt(KeyPageSize)
	}

	if v.IsSet(KeyMaxPageSize) {
		cfg.MaxPageSize = v.GetInt(KeyMaxPageSize)
	}

	if v.IsSet(KeyOrderBy) {
		cfg.DefaultOrderField = v.GetString(KeyOrderBy)
	}

	if v.IsSet(KeyOrderReverse) {
		cfg.DefaultOrderReverse = v.GetBool(KeyOrderReverse)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDefaultPageSize sets the default page size and returns the config for chaining.
func (c *Config) WithDefaultPageSize(size int) *Config {
	if size > 0 {
		c.DefaultPageSize = size
	}
	return c
}

// WithMaxPageSize sets the maximum page size and returns the config for chaining.
func (c *Config) WithMaxPageSize(size int) *Config {
	if size > 0 {
		c.MaxPageSize = size
	}
	return c
}

// WithDefaultOrder sets the default sort field and direction and returns the config for chaining.
func (c *Config) WithDefaultOrder(field string, reverse bool) *Config {
	c.DefaultOrderField = field
	c.DefaultOrderReverse = reverse
	return c
}

// Validate checks that the page sizes are usable.
func (c *Config) Validate() error {
	if c.DefaultPageSize < 1 {
		return &ConfigError{Key: KeyPageSize, Value: c.DefaultPageSize, Reason: "must be at least 1"}
	}

	if c.MaxPageSize < c.DefaultPageSize {
		return &ConfigError{Key: KeyMaxPageSize, Value: c.MaxPageSize, Reason: "must not be lower than the default page size"}
	}

	return nil
}

// ClampPageSize caps size to MaxPageSize. Non-positive sizes yield DefaultPageSize.
func (c *Config) ClampPageSize(size int) int {
	if c == nil {
		c = NewConfig()
	}

	if size <= 0 {
		return c.DefaultPageSize
	}

	if c.MaxPageSize > 0 && size > c.MaxPageSize {
		return c.MaxPageSize
	}

	return size
}

// DefaultState returns the state a list view starts from.
func (c *Config) DefaultState() State {
	if c == nil {
		c = NewConfig()
	}

	return State{
		Page:           1,
		ItemsPerPage:   c.DefaultPageSize,
		OrderByField:   c.DefaultOrderField,
		OrderByReverse: c.DefaultOrderReverse,
		Tags:           []string{},
	}
}
