package project

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Find when no descriptor exists in the
// directory or any of its parents.
var ErrNotFound = errors.New("project file not found")

// ConfigError reports a descriptor that is missing, unreadable or invalid.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "invalid project: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid project %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InvalidValueError reports an unrecognized enumeration token.
type InvalidValueError struct {
	What  string
	Value string
	Valid []string
}

func (e *InvalidValueError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("invalid %s %q", e.What, e.Value)
	}
	return fmt.Sprintf("invalid %s %q, valid choices are: %s", e.What, e.Value, strings.Join(e.Valid, ", "))
}
