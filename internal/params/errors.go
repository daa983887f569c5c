package params

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every parameter validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a value outside its declared domain.
type InvalidParameterError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid parameter %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %q (value %s): %s", e.Name, e.Value, e.Reason)
}

// Is lets errors.Is match ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalid(name, value, format string, args ...any) *InvalidParameterError {
	return &InvalidParameterError{Name: name, Value: value, Reason: fmt.Sprintf(format, args...)}
}
