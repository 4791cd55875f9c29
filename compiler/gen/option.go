package gen

import (
	"errors"
)

// Config holds the names the generated code uses for its collaborators and
// the template tokens. The zero value is not usable; start from NewConfig.
type Config struct {
	DataAccess      DataAccess
	ExceptionPolicy ExceptionPolicy
	Tokens          Tokens
}

// DataAccess names the data-access API the generated data objects call.
// The defaults follow the Enterprise Library data access block.
type DataAccess struct {
	Factory         string // static factory type, "DatabaseFactory"
	CreateDatabase  string // factory method, "CreateDatabase"
	Database        string // database type, "Database"
	Command         string // command type, "DbCommand"
	Reader          string // row cursor type, "IDataReader"
	ParamType       string // parameter type enumeration, "DbType"
	GetCommand      string // "GetStoredProcCommand"
	AddInParameter  string // "AddInParameter"
	ExecuteNonQuery string // "ExecuteNonQuery"
	ExecuteReader   string // "ExecuteReader"
	Read            string // cursor advance method, "Read"
	Exception       string // caught exception type, "Exception"
}

// ExceptionPolicy names the policy hook generated catch blocks consult.
// The hook is called as Type.Method(exception, Name) and the exception is
// rethrown when it returns true.
type ExceptionPolicy struct {
	Type   string
	Method string
	Name   string
}

// DefaultDataAccess returns the default data-access names.
func DefaultDataAccess() DataAccess {
	return DataAccess{
		Factory:         "DatabaseFactory",
		CreateDatabase:  "CreateDatabase",
		Database:        "Database",
		Command:         "DbCommand",
		Reader:          "IDataReader",
		ParamType:       "DbType",
		GetCommand:      "GetStoredProcCommand",
		AddInParameter:  "AddInParameter",
		ExecuteNonQuery: "ExecuteNonQuery",
		ExecuteReader:   "ExecuteReader",
		Read:            "Read",
		Exception:       "Exception",
	}
}

// DefaultExceptionPolicy returns the default policy hook.
func DefaultExceptionPolicy() ExceptionPolicy {
	return ExceptionPolicy{
		Type:   "ExceptionPolicy",
		Method: "HandleException",
		Name:   "Global Exception Policy",
	}
}

// Option configures code generation.
type Option func(*Config) error

// WithDataAccess replaces the data-access names. Empty names keep their
// current value.
func WithDataAccess(da DataAccess) Option {
	return func(c *Config) error {
		merge(&c.DataAccess.Factory, da.Factory)
		merge(&c.DataAccess.CreateDatabase, da.CreateDatabase)
		merge(&c.DataAccess.Database, da.Database)
		merge(&c.DataAccess.Command, da.Command)
		merge(&c.DataAccess.Reader, da.Reader)
		merge(&c.DataAccess.ParamType, da.ParamType)
		merge(&c.DataAccess.GetCommand, da.GetCommand)
		merge(&c.DataAccess.AddInParameter, da.AddInParameter)
		merge(&c.DataAccess.ExecuteNonQuery, da.ExecuteNonQuery)
		merge(&c.DataAccess.ExecuteReader, da.ExecuteReader)
		merge(&c.DataAccess.Read, da.Read)
		merge(&c.DataAccess.Exception, da.Exception)
		return nil
	}
}

// WithExceptionPolicy sets the policy name passed to the exception hook.
func WithExceptionPolicy(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("ExceptionPolicy", nil, "policy name cannot be empty")
		}
		c.ExceptionPolicy.Name = name
		return nil
	}
}

// WithExceptionHandler sets the type and method of the exception hook.
func WithExceptionHandler(typeName, method string) Option {
	return func(c *Config) error {
		if typeName == "" || method == "" {
			return NewConfigError("ExceptionHandler", typeName+"."+method, "type and method are required")
		}
		c.ExceptionPolicy.Type = typeName
		c.ExceptionPolicy.Method = method
		return nil
	}
}

// WithTokens sets the template placeholder tokens. Empty tokens keep their
// current value. The resulting set must not contain duplicates.
func WithTokens(t Tokens) Option {
	return func(c *Config) error {
		merge(&c.Tokens.ClassName, t.ClassName)
		merge(&c.Tokens.Fields, t.Fields)
		merge(&c.Tokens.Properties, t.Properties)
		merge(&c.Tokens.Constructors, t.Constructors)
		merge(&c.Tokens.CreateMethod, t.CreateMethod)
		merge(&c.Tokens.ReadMethod, t.ReadMethod)
		merge(&c.Tokens.UpdateMethod, t.UpdateMethod)
		merge(&c.Tokens.DeleteMethod, t.DeleteMethod)
		return c.Tokens.Validate()
	}
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a Config from the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		DataAccess:      DefaultDataAccess(),
		ExceptionPolicy: DefaultExceptionPolicy(),
		Tokens:          DefaultTokens(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
