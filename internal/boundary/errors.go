package boundary

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ConfigError.
var (
	// ErrBadPattern indicates an element or ignore pattern is not a valid glob.
	ErrBadPattern = errors.New("invalid glob pattern")
	// ErrEmptyType indicates an element or rule names no module type.
	ErrEmptyType = errors.New("module type name is empty")
	// ErrDuplicateType indicates two elements declare the same module type.
	ErrDuplicateType = errors.New("duplicate module type")
	// ErrDuplicateRule indicates two rules share the same from type.
	ErrDuplicateRule = errors.New("duplicate rule")
	// ErrUnknownType indicates a rule references a module type with no element.
	ErrUnknownType = errors.New("unknown module type")
	// ErrBadDecision indicates a default decision other than allow or disallow.
	ErrBadDecision = errors.New("invalid default decision")
	// ErrDecode indicates the configuration file could not be parsed.
	ErrDecode = errors.New("malformed configuration")
)

// ConfigError reports a configuration problem found while loading a policy.
// Evaluation never produces one; a policy that compiled is always usable.
type ConfigError struct {
	Source string // file the config came from; empty for in-memory configs
	Field  string // "elements", "ignore", "rules", "default"
	Index  int    // position within Field, -1 when not applicable
	Value  string // offending value, if any
	Err    error
}

// Error returns the message with source and field context.
func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Value != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Value)
	}
	loc := e.Field
	if loc != "" && e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", e.Field, e.Index)
	}
	if loc != "" {
		msg = loc + ": " + msg
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
