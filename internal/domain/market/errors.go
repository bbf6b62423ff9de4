package market

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTable is returned when a configuration table could not be found
	ErrMissingTable = errors.New("configuration table missing")

	// ErrInvalidEventType is returned when an event template names an unknown type
	ErrInvalidEventType = errors.New("invalid event type")
)

// ConfigurationUnavailableError is returned when the configuration tables have
// not been loaded. Resolution must not proceed past it.
type ConfigurationUnavailableError struct {
	Cause error
}

func (e *ConfigurationUnavailableError) Error() string {
	if e.Cause == nil {
		return "configuration unavailable"
	}
	return fmt.Sprintf("configuration unavailable: %v", e.Cause)
}

func (e *ConfigurationUnavailableError) Unwrap() error {
	return e.Cause
}

// NewConfigurationUnavailableError wraps cause as a ConfigurationUnavailableError
func NewConfigurationUnavailableError(cause error) *ConfigurationUnavailableError {
	return &ConfigurationUnavailableError{Cause: cause}
}

// IsConfigurationUnavailable reports whether err is a ConfigurationUnavailableError
func IsConfigurationUnavailable(err error) bool {
	var target *ConfigurationUnavailableError
	return errors.As(err, &target)
}
