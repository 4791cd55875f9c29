// Package csharp renders the code model as C# with C style bracing.
package csharp

import (
	"strings"

	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/schema/field"
)

// Name is the canonical language key.
const Name = "CSharp"

// Aliases are additional keys the language is registered under.
var Aliases = []string{"cs", "c#"}

// Language is the C# provider.
type Language struct{}

// New returns the C# provider.
func New() *Language { return &Language{} }

var _ gen.Language = (*Language)(nil)

// Name implements gen.Language.
func (*Language) Name() string { return Name }

// Extension implements gen.Language.
func (*Language) Extension() string { return ".cs" }

// TypeName implements gen.Language.
func (*Language) TypeName(t field.Type) string {
	switch t {
	case field.TypeBool:
		return "bool"
	case field.TypeDateTime:
		return "System.DateTime"
	case field.TypeInt32:
		return "int"
	default:
		return "string"
	}
}

// FieldName implements gen.Language. Fields are the column name with a
// lower-case first letter behind an underscore.
func (*Language) FieldName(column string) string {
	return "_" + gen.LowerFirst(column)
}

// ParameterName implements gen.Language.
func (*Language) ParameterName(column string) string {
	return ident(gen.LowerFirst(column))
}

// AdjustConstructor implements gen.Language. A standalone constructor is
// printed without its name and gets it here.
func (*Language) AdjustConstructor(rendered, typeName string) string {
	for _, vis := range []string{"public", "private"} {
		if strings.Contains(rendered, vis+" (") {
			return strings.Replace(rendered, vis+" (", vis+" "+typeName+"(", 1)
		}
	}
	return rendered
}

// RenderType implements gen.Language.
func (*Language) RenderType(d *gen.TypeDecl) (string, error) {
	r := newRenderer(d.Name)
	if err := r.typeDecl(d); err != nil {
		return "", err
	}
	return r.p.String(), nil
}

// RenderMember implements gen.Language. The text starts with a blank line
// so that concatenated members stay apart.
func (*Language) RenderMember(m gen.Member) (string, error) {
	r := newRenderer("")
	r.p.Line("")
	if err := r.member(m); err != nil {
		return "", err
	}
	return r.p.String(), nil
}

var keywords = map[string]struct{}{}

func init() {
	for _, k := range strings.Fields(`abstract as base bool break byte case catch char checked class const
		continue decimal default delegate do double else enum event explicit extern false finally
		fixed float for foreach goto if implicit in int interface internal is lock long namespace
		new null object operator out override params private protected public readonly ref return
		sbyte sealed short sizeof stackalloc static string struct switch this throw true try typeof
		uint ulong unchecked unsafe ushort using virtual void volatile while`) {
		keywords[k] = struct{}{}
	}
}

// ident escapes reserved words with a verbatim "@" prefix.
func ident(s string) string {
	if _, ok := keywords[s]; ok {
		return "@" + s
	}
	return s
}
