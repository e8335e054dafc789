package countryset

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/countryset/index"
)

var (
	// ErrConfig is matched by every configuration error returned by New.
	ErrConfig = index.ErrConfig

	// ErrUnknownCode is matched by every error caused by a code missing from the catalog.
	ErrUnknownCode = index.ErrUnknownCode
)

type (
	// ConfigError indicates an index configuration that cannot be built.
	ConfigError = index.ConfigError

	// UnknownCodeError indicates a code that is not present in the catalog.
	UnknownCodeError = index.UnknownCodeError
)

// ErrInvalidFieldValue indicates a value of unsupported type passed for a field.
type ErrInvalidFieldValue struct {
	Field string
	Value any
}

func (e *ErrInvalidFieldValue) Error() string {
	return fmt.Sprintf("invalid value for field %q: unsupported type %T", e.Field, e.Value)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Struct tag violations in a Config are configuration errors.
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &ConfigError{Reason: verrs.Error()}
	}

	if errors.Is(err, ErrConfig) || errors.Is(err, ErrUnknownCode) {
		return fmt.Errorf("countryset: %w", err)
	}

	return err
}
