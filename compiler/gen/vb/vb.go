// Package vb renders the code model as Visual Basic.
package vb

import (
	"strings"

	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/schema/field"
)

// Name is the canonical language key.
const Name = "VisualBasic"

// Aliases are additional keys the language is registered under.
var Aliases = []string{"vb", "vb.net"}

// Language is the Visual Basic provider.
type Language struct{}

// New returns the Visual Basic provider.
func New() *Language { return &Language{} }

var _ gen.Language = (*Language)(nil)

// Name implements gen.Language.
func (*Language) Name() string { return Name }

// Extension implements gen.Language.
func (*Language) Extension() string { return ".vb" }

// TypeName implements gen.Language.
func (*Language) TypeName(t field.Type) string {
	switch t {
	case field.TypeBool:
		return "Boolean"
	case field.TypeDateTime:
		return "Date"
	case field.TypeInt32:
		return "Integer"
	default:
		return "String"
	}
}

// FieldName implements gen.Language.
func (*Language) FieldName(column string) string {
	return "_" + gen.LowerFirst(column)
}

// ParameterName implements gen.Language.
func (*Language) ParameterName(column string) string {
	return ident(gen.LowerFirst(column))
}

// AdjustConstructor implements gen.Language. Visual Basic constructors are
// always named New, so there is nothing to adjust.
func (*Language) AdjustConstructor(rendered, _ string) string {
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

// RenderMember implements gen.Language.
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
	for _, k := range strings.Fields(`addhandler addressof alias and andalso as boolean byref byte byval
		call case catch cbool cbyte cchar cdate cdbl cdec char cint class clng cobj const continue
		csbyte cshort csng cstr ctype cuint culng cushort date decimal declare default delegate dim
		directcast do double each else elseif end endif enum erase error event exit false finally
		for friend function get gettype getxmlnamespace global gosub goto handles if implements
		imports in inherits integer interface is isnot let lib like long loop me mod module
		mustinherit mustoverride mybase myclass namespace narrowing new next not nothing
		notinheritable notoverridable object of on operator option optional or orelse overloads
		overridable overrides paramarray partial private property protected public raiseevent
		readonly redim rem removehandler resume return sbyte select set shadows shared short single
		static step stop string structure sub synclock then throw to true try trycast typeof uinteger
		ulong ushort using variant wend when while widening with withevents writeonly xor`) {
		keywords[k] = struct{}{}
	}
}

// ident escapes reserved words with brackets. Visual Basic keywords are
// case-insensitive.
func ident(s string) string {
	if _, ok := keywords[strings.ToLower(s)]; ok {
		return "[" + s + "]"
	}
	return s
}
