package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewTableError("Customer", "Name", "duplicate column", cause)

		assert.Contains(t, err.Error(), "dlog: table error")
		assert.Contains(t, err.Error(), "on Customer")
		assert.Contains(t, err.Error(), "column Name")
		assert.Contains(t, err.Error(), "duplicate column")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with table only", func(t *testing.T) {
		err := &TableError{Table: "Customer"}
		assert.Contains(t, err.Error(), "on Customer")
		assert.NotContains(t, err.Error(), "column")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewTableError("Customer", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidTable", func(t *testing.T) {
		err := NewTableError("", "", "nil table", nil)
		assert.True(t, errors.Is(err, ErrInvalidTable))
		assert.False(t, errors.Is(err, ErrValidationFailed))
	})

	t.Run("IsTableError helper", func(t *testing.T) {
		err := NewTableError("Customer", "Id", "test", nil)
		assert.True(t, IsTableError(err))
		assert.False(t, IsTableError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "must be positive")

		assert.Contains(t, err.Error(), "dlog: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Logger", nil, "cannot be nil")

		assert.Contains(t, err.Error(), "Logger")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Registry", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.False(t, errors.Is(err, ErrUnknownLanguage))
	})

	t.Run("Unknown language", func(t *testing.T) {
		err := UnknownLanguageError("Cobol", []string{"CSharp", "Go"})
		assert.True(t, errors.Is(err, ErrUnknownLanguage))
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.Contains(t, err.Error(), "Cobol")
		assert.Contains(t, err.Error(), "CSharp, Go")
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewConfigError("Registry", nil, "missing"))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("syntax error")
		err := NewGenerationError("Go", "Customer", "format output", cause)

		assert.Contains(t, err.Error(), "dlog: generation error")
		assert.Contains(t, err.Error(), "in Go")
		assert.Contains(t, err.Error(), "(type: Customer)")
		assert.Contains(t, err.Error(), "format output")
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root")
		err := NewGenerationError("", "", "", cause)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("CSharp", "", "unsupported member", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.True(t, IsGenerationError(NewGenerationError("", "", "x", nil)))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewValidationError("template", "cs-entity", "", "empty body")
		err.Cause = errors.New("cause")

		assert.Contains(t, err.Error(), "dlog: validation error")
		assert.Contains(t, err.Error(), "on template cs-entity")
		assert.Contains(t, err.Error(), "empty body")
		assert.Contains(t, err.Error(), "cause")
	})

	t.Run("Is matches ErrValidationFailed", func(t *testing.T) {
		err := NewValidationError("template", "x", nil, "bad")
		assert.True(t, errors.Is(err, ErrValidationFailed))
	})

	t.Run("IsValidationError helper", func(t *testing.T) {
		assert.True(t, IsValidationError(NewValidationError("", "", nil, "")))
		assert.False(t, IsValidationError(errors.New("other")))
	})
}

func TestErrorsAs(t *testing.T) {
	var err error = fmt.Errorf("outer: %w", NewTableError("Customer", "", "nil", nil))

	var tableErr *TableError
	require.True(t, errors.As(err, &tableErr))
	assert.Equal(t, "Customer", tableErr.Table)

	err = fmt.Errorf("outer: %w", UnknownLanguageError("x", nil))
	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "Language", configErr.Option)
}
