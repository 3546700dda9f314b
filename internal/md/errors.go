package md

import (
	"errors"
	"strings"
)

// Configuration errors raised by the force-field layer.
var (
	// ErrMissingCoeff indicates a type or type pair without a complete coefficient set.
	ErrMissingCoeff = errors.New("md: coefficients missing")

	// ErrUnknownMode indicates an execution mode that is neither CPU nor GPU.
	ErrUnknownMode = errors.New("md: invalid execution mode")

	// ErrNoInteractions indicates a force that cannot apply to any entity.
	ErrNoInteractions = errors.New("md: no interactions of this kind are defined")

	// ErrUnknownType indicates a type name missing from the roster.
	ErrUnknownType = errors.New("md: unknown type name")

	// ErrInvalidParam indicates an unrecognized option or out of range value.
	ErrInvalidParam = errors.New("md: invalid parameter")

	// ErrDestroyed indicates use of a force after it was removed from the context.
	ErrDestroyed = errors.New("md: force has been removed")
)

// ConfigurationError reports an unrecoverable misconfiguration together with
// the force and key that triggered it.
type ConfigurationError struct {
	Force   string
	Key     string
	Msg     string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	parts := make([]string, 0, 4)
	if e.Force != "" {
		parts = append(parts, e.Force)
	}
	if e.Key != "" {
		parts = append(parts, e.Key)
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Wrapped != nil {
		parts = append(parts, e.Wrapped.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ConfigurationError) Unwrap() error {
	return e.Wrapped
}

// NewConfigError builds a ConfigurationError for force wrapping sentinel.
func NewConfigError(force string, sentinel error, msg string) *ConfigurationError {
	return &ConfigurationError{Force: force, Msg: msg, Wrapped: sentinel}
}

// IsConfigError reports whether err is, or wraps, a ConfigurationError.
func IsConfigError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
