package liststate

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

var (
	// ErrNoExecutor is returned by fetchers built without an Executor.
	ErrNoExecutor = errors.New("liststate: no executor configured")

	// ErrInvalidSortField is returned when a sort field is not allowed by the executor.
	ErrInvalidSortField = errors.New("liststate: invalid sort field")

	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("liststate: invalid config")
)

// ConfigError is returned when a Config holds unusable values.
type ConfigError struct {
	Key    string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid list config %s=%d: %s", e.Key, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
