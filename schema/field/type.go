package field

import "strings"

// Type is the database type tag of a column. It is the only type information
// the generator looks at; providers map it to their own type names.
type Type uint8

// Known type tags. TypeOther is the zero value and covers every native type
// that has no dedicated mapping.
const (
	TypeOther Type = iota
	TypeBool
	TypeDateTime
	TypeInt32
	TypeString
)

var typeNames = [...]string{
	TypeOther:    "other",
	TypeBool:     "bool",
	TypeDateTime: "datetime",
	TypeInt32:    "int32",
	TypeString:   "string",
}

// String returns the tag name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "invalid"
}

// Valid reports if t is one of the known tags.
func (t Type) Valid() bool {
	return int(t) < len(typeNames)
}

// DbType returns the generic parameter type name used when binding a value
// of this type to a database command. Unmapped tags bind as String.
func (t Type) DbType() string {
	switch t {
	case TypeBool:
		return "Boolean"
	case TypeDateTime:
		return "DateTime"
	case TypeInt32:
		return "Int32"
	default:
		return "String"
	}
}

// SQL Server type names, lower-cased and without length or precision.
// Other databases are classified by their atlas types when inspected.
var natives = map[string]Type{
	"bit":            TypeBool,
	"smalldatetime":  TypeDateTime,
	"datetime":       TypeDateTime,
	"datetime2":      TypeDateTime,
	"datetimeoffset": TypeDateTime,
	"date":           TypeDateTime,
	"int":            TypeInt32,
	"varchar":        TypeString,
	"nvarchar":       TypeString,
	"char":           TypeString,
	"nchar":          TypeString,
}

// ParseType classifies a SQL Server type name as reported by sys.types or
// written in a schema file. Length suffixes such as "(50)" or "(max)" are
// ignored.
func ParseType(native string) Type {
	s := strings.ToLower(strings.TrimSpace(native))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return natives[s]
}
