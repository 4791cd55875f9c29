package schema

import (
	"errors"
	"fmt"

	"github.com/syssam/dlog/schema/field"
)

// Kind distinguishes tables from views. Both are generated the same way.
type Kind uint8

const (
	KindTable Kind = iota
	KindView
)

// String returns "table" or "view".
func (k Kind) String() string {
	if k == KindView {
		return "view"
	}
	return "table"
}

// ParseKind parses "table" or "view". The empty string is a table.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "table", "TABLE", "BASE TABLE":
		return KindTable, nil
	case "view", "VIEW":
		return KindView, nil
	default:
		return KindTable, fmt.Errorf("schema: unknown object kind %q", s)
	}
}

// Column describes a single column of a table or view.
type Column struct {
	// Name is the column name as it appears in the database. It is used
	// verbatim for property names and command parameter names.
	Name string
	// Type is the classified type tag.
	Type field.Type
	// Native is the database's own type name, e.g. "nvarchar(50)".
	Native string
	// Identity marks a database generated key. Identity columns are left
	// out of inserts and are the only columns bound by deletes.
	Identity bool
	// PrimaryKey marks primary key membership.
	PrimaryKey bool
	// Nullable reports whether the column accepts NULL.
	Nullable bool
}

// TableView is a table or a view with its ordered columns.
type TableView struct {
	Name    string
	Schema  string
	Kind    Kind
	Columns []Column
}

// Errors returned by Validate.
var (
	ErrEmptyName       = errors.New("schema: empty name")
	ErrDuplicateColumn = errors.New("schema: duplicate column")
)

// Validate checks that the object and all its columns are named, and that
// column names are unique. A view or table without columns is accepted;
// it generates empty members.
func (t *TableView) Validate() error {
	if t.Name == "" {
		return ErrEmptyName
	}
	seen := make(map[string]struct{}, len(t.Columns))
	for i, c := range t.Columns {
		if c.Name == "" {
			return fmt.Errorf("column %d: %w", i, ErrEmptyName)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("column %q: %w", c.Name, ErrDuplicateColumn)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Column returns the column with the given name.
func (t *TableView) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// IdentityColumns returns the identity columns in column order.
func (t *TableView) IdentityColumns() []Column {
	var cols []Column
	for _, c := range t.Columns {
		if c.Identity {
			cols = append(cols, c)
		}
	}
	return cols
}

// QualifiedName returns "schema.name", or the bare name when no schema is set.
func (t *TableView) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// NewColumn returns a column whose tag is parsed from the native type name.
func NewColumn(name, native string) Column {
	return Column{Name: name, Native: native, Type: field.ParseType(native)}
}
