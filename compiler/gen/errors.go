package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidTable indicates a nil or malformed table or view.
	ErrInvalidTable = errors.New("dlog: invalid table or view")
	// ErrUnknownLanguage indicates a language key with no registered provider.
	ErrUnknownLanguage = errors.New("dlog: unknown language")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("dlog: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("dlog: code generation failed")
	// ErrValidationFailed indicates a validation failure.
	ErrValidationFailed = errors.New("dlog: validation failed")
)

// TableError reports a table or view that cannot be generated from.
type TableError struct {
	Table   string
	Column  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *TableError) Error() string {
	var b strings.Builder
	b.WriteString("dlog: table error")
	if e.Table != "" {
		b.WriteString(" on ")
		b.WriteString(e.Table)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TableError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for TableError.
func (e *TableError) Is(target error) bool {
	return target == ErrInvalidTable
}

// NewTableError creates a new TableError.
func NewTableError(table, column, message string, cause error) *TableError {
	return &TableError{
		Table:   table,
		Column:  column,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	// Sentinel, when set, is matched by Is in addition to ErrMissingConfig.
	Sentinel error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("dlog: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("dlog: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig || (e.Sentinel != nil && target == e.Sentinel)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// UnknownLanguageError returns the ConfigError reported for a language key
// that has no registered provider.
func UnknownLanguageError(key string, known []string) *ConfigError {
	return &ConfigError{
		Option:   "Language",
		Value:    key,
		Message:  "no provider registered; known: " + strings.Join(known, ", "),
		Sentinel: ErrUnknownLanguage,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Language string
	Type     string // name of the type or member being rendered
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("dlog: generation error")
	if e.Language != "" {
		b.WriteString(" in ")
		b.WriteString(e.Language)
	}
	if e.Type != "" {
		b.WriteString(" (type: ")
		b.WriteString(e.Type)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(language, typeName, message string, cause error) *GenerationError {
	return &GenerationError{
		Language: language,
		Type:     typeName,
		Message:  message,
		Cause:    cause,
	}
}

// ValidationError represents a validation error in configuration input,
// such as a malformed template entry.
type ValidationError struct {
	Kind    string
	Name    string
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("dlog: validation error")
	if e.Kind != "" {
		b.WriteString(" on ")
		b.WriteString(e.Kind)
	}
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(kind, name string, value any, message string) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Name:    name,
		Value:   value,
		Message: message,
	}
}

// IsTableError reports whether the error is a TableError.
func IsTableError(err error) bool {
	var tableErr *TableError
	return errors.As(err, &tableErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
