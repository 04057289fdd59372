package errors

import (
	"fmt"
)

// ValidationError reports a malformed token registration or theme override,
// such as a color family that does not carry exactly ten shades.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LookupError reports a reference to a token family, shade index or
// breakpoint name that the active theme does not define.
type LookupError struct {
	Kind string
	Key  string
}

// NewLookupError constructs a LookupError for the given token kind and key.
func NewLookupError(kind, key string) error {
	return &LookupError{Kind: kind, Key: key}
}

func (e *LookupError) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind != "" {
		return fmt.Sprintf("lookup error: unknown %s %q", e.Kind, e.Key)
	}
	return fmt.Sprintf("lookup error: unknown token %q", e.Key)
}

// ConfigError reports a responsive value whose fallback chain has no
// resolvable entry. It is recoverable: the offending declaration is dropped
// and the rest of the widget's styling proceeds.
type ConfigError struct {
	Prop    string
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError for the given prop.
func NewConfigError(prop, message string, err error) error {
	return &ConfigError{Prop: prop, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Prop != "" {
		return fmt.Sprintf("config error: %s: %s", e.Prop, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SerializationError reports a resolved value that cannot be emitted safely
// in the target stylesheet syntax. It fails only the artifact being
// generated; any previously applied artifact stays in place.
type SerializationError struct {
	Property string
	Value    string
	Message  string
}

// NewSerializationError constructs a SerializationError.
func NewSerializationError(property, value, message string) error {
	return &SerializationError{Property: property, Value: value, Message: message}
}

func (e *SerializationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Property != "" {
		return fmt.Sprintf("serialization error: %s: %q: %s", e.Property, e.Value, e.Message)
	}
	return fmt.Sprintf("serialization error: %q: %s", e.Value, e.Message)
}

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
