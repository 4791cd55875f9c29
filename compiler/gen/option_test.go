package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultDataAccess(), c.DataAccess)
	assert.Equal(t, DefaultExceptionPolicy(), c.ExceptionPolicy)
	assert.Equal(t, DefaultTokens(), c.Tokens)
	assert.Equal(t, "Global Exception Policy", c.ExceptionPolicy.Name)
	assert.Equal(t, "DatabaseFactory", c.DataAccess.Factory)
}

func TestWithDataAccess(t *testing.T) {
	t.Run("merges non-empty names", func(t *testing.T) {
		c := MustNewConfig(WithDataAccess(DataAccess{Command: "SqlCommand", Reader: "SqlDataReader"}))
		assert.Equal(t, "SqlCommand", c.DataAccess.Command)
		assert.Equal(t, "SqlDataReader", c.DataAccess.Reader)
		assert.Equal(t, "DatabaseFactory", c.DataAccess.Factory)
		assert.Equal(t, "AddInParameter", c.DataAccess.AddInParameter)
	})

	t.Run("zero value keeps defaults", func(t *testing.T) {
		c := MustNewConfig(WithDataAccess(DataAccess{}))
		assert.Equal(t, DefaultDataAccess(), c.DataAccess)
	})
}

func TestWithExceptionPolicy(t *testing.T) {
	c := MustNewConfig(WithExceptionPolicy("Data Access Policy"))
	assert.Equal(t, "Data Access Policy", c.ExceptionPolicy.Name)
	assert.Equal(t, "HandleException", c.ExceptionPolicy.Method)

	err := WithExceptionPolicy("")(&Config{})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithExceptionHandler(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		method  string
		wantErr bool
	}{
		{"valid", "Policy", "Handle", false},
		{"missing type", "", "Handle", true},
		{"missing method", "Policy", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MustNewConfig()
			err := WithExceptionHandler(tt.typ, tt.method)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Policy", c.ExceptionPolicy.Type)
			assert.Equal(t, "Handle", c.ExceptionPolicy.Method)
		})
	}
}

func TestWithTokens(t *testing.T) {
	t.Run("merges", func(t *testing.T) {
		c := MustNewConfig(WithTokens(Tokens{ReadMethod: "%read%"}))
		assert.Equal(t, "%read%", c.Tokens.ReadMethod)
		assert.Equal(t, "$ClassName$", c.Tokens.ClassName)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewConfig(WithTokens(Tokens{Fields: "$ClassName$"}))
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestConfig_Apply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := MustNewConfig()
		err := c.Apply(
			WithExceptionPolicy(""),
			WithExceptionPolicy("never applied"),
		)
		require.Error(t, err)
		assert.Equal(t, "Global Exception Policy", c.ExceptionPolicy.Name)
	})

	t.Run("apply all collects errors", func(t *testing.T) {
		c := MustNewConfig()
		err := c.ApplyAll(
			WithExceptionPolicy(""),
			WithExceptionHandler("", ""),
			WithExceptionPolicy("applied"),
		)
		require.Error(t, err)
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, err.Error(), "ExceptionPolicy")
		assert.Contains(t, err.Error(), "ExceptionHandler")
		assert.Equal(t, "applied", c.ExceptionPolicy.Name)
	})
}

func TestMustNewConfig_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewConfig(WithExceptionPolicy(""))
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(testLang{}, "tst", "T")

	for _, key := range []string{"Test", "test", "TEST", " test ", "tst", "t"} {
		l, ok := r.Lookup(key)
		require.True(t, ok, key)
		assert.Equal(t, "Test", l.Name())
	}
	_, ok := r.Lookup("cobol")
	assert.False(t, ok)

	_, err := r.Resolve("cobol")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "known: Test")

	// re-registering does not duplicate the name
	r.Register(testLang{})
	assert.Equal(t, []string{"Test"}, r.Names())
}

func TestRegistry_ZeroValue(t *testing.T) {
	var r Registry
	_, ok := r.Lookup("test")
	assert.False(t, ok)
	r.Register(testLang{})
	l, err := r.Resolve("TEST")
	require.NoError(t, err)
	assert.Equal(t, testLang{}, l)
}

func TestPrinter(t *testing.T) {
	p := NewPrinter("  ")
	p.Line("class %s", "A")
	p.In()
	// Called through a method value: a literal "%" with no args is
	// written verbatim by Line, which the vet printf check would reject.
	line := p.Line
	line("x = 100%")
	p.Line("")
	p.Line("y")
	p.Out()
	p.Out()
	p.Line("end")
	assert.Equal(t, "class A\n  x = 100%\n\n  y\nend\n", p.String())
}

func TestGrouped(t *testing.T) {
	d := NewBuilder(testLang{}, nil).Entity(customer())
	ms := Grouped(d)
	require.Len(t, ms, 6)
	assert.IsType(t, &Field{}, ms[0])
	assert.IsType(t, &Field{}, ms[1])
	assert.IsType(t, &Constructor{}, ms[2])
	assert.IsType(t, &Constructor{}, ms[3])
	assert.IsType(t, &Property{}, ms[4])
	assert.Equal(t, "Name", ms[5].(*Property).Name)
}
