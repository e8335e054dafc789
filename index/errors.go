package index

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every ConfigError.
	ErrConfig = errors.New("invalid code index configuration")

	// ErrUnknownCode is matched by every UnknownCodeError.
	ErrUnknownCode = errors.New("unknown code")
)

// ConfigError indicates that a code index cannot be built from the supplied
// lists. It is fatal: the index must not be used.
type ConfigError struct {
	Expected int
	Actual   int
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid code index configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid code index configuration: expected %d codes, got %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// UnknownCodeError indicates a code that is not present in the index.
type UnknownCodeError struct {
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown code: %q", e.Code)
}

// Is reports whether target is ErrUnknownCode.
func (e *UnknownCodeError) Is(target error) bool { return target == ErrUnknownCode }
