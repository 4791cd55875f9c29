// Package golang renders the code model as Go source using jennifer.
//
// Go has no classes, so the model is lowered:
//
//   - a type declaration becomes a struct with unexported fields
//   - a property becomes a getter and a Set method
//   - a constructor becomes a New function returning a pointer; a private
//     constructor becomes an unexported new function
//   - a static method becomes a package level function
//   - try/catch becomes a closure with a deferred recover, and rethrow
//     re-panics with the recovered value
package golang

import (
	"bytes"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/tools/imports"

	"github.com/syssam/dlog/compiler/gen"
	"github.com/syssam/dlog/schema/field"
)

// Name is the canonical language key.
const Name = "Go"

// Aliases are additional keys the language is registered under.
var Aliases = []string{"golang"}

// DefaultPackage is the package clause of rendered files.
const DefaultPackage = "model"

// owner stands in for the declaring type in standalone members.
const owner = "__Owner__"

// Language is the Go provider.
type Language struct {
	pkg string
}

// Option configures the Go provider.
type Option func(*Language)

// WithPackage sets the package name of rendered files.
func WithPackage(name string) Option {
	return func(l *Language) {
		if name != "" {
			l.pkg = name
		}
	}
}

// New returns the Go provider.
func New(opts ...Option) *Language {
	l := &Language{pkg: DefaultPackage}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	_ gen.Language       = (*Language)(nil)
	_ gen.MemberAdjuster = (*Language)(nil)
)

// Name implements gen.Language.
func (*Language) Name() string { return Name }

// Extension implements gen.Language.
func (*Language) Extension() string { return ".go" }

// TypeName implements gen.Language.
func (*Language) TypeName(t field.Type) string {
	switch t {
	case field.TypeBool:
		return "bool"
	case field.TypeDateTime:
		return "time.Time"
	case field.TypeInt32:
		return "int32"
	default:
		return "string"
	}
}

// FieldName implements gen.Language.
func (*Language) FieldName(column string) string {
	return ident(unexported(column))
}

// ParameterName implements gen.Language.
func (*Language) ParameterName(column string) string {
	return ident(unexported(column))
}

// AdjustConstructor implements gen.Language.
func (*Language) AdjustConstructor(rendered, typeName string) string {
	return strings.ReplaceAll(rendered, owner, typeName)
}

// AdjustMember implements gen.MemberAdjuster. Accessors are methods and
// name their receiver type.
func (*Language) AdjustMember(rendered, typeName string) string {
	return strings.ReplaceAll(rendered, owner, typeName)
}

// RenderType implements gen.Language. The result is a complete, gofmt'ed
// source file.
func (l *Language) RenderType(d *gen.TypeDecl) (string, error) {
	r := &renderer{owner: d.Name}
	f := jen.NewFile(l.pkg)
	f.Type().Id(d.Name).StructFunc(func(g *jen.Group) {
		for _, fd := range d.Fields() {
			g.Id(fd.Name).Add(r.typ(fd.Type))
		}
	})
	for _, m := range gen.Grouped(d) {
		if _, ok := m.(*gen.Field); ok {
			continue
		}
		f.Line()
		f.Add(r.member(m))
	}
	if r.err != nil {
		return "", r.err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", gen.NewGenerationError(Name, d.Name, "render file", err)
	}
	out, err := imports.Process(d.Name+".go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return "", gen.NewGenerationError(Name, d.Name, "format file", err)
	}
	return string(out), nil
}

// RenderMember implements gen.Language. Members that refer to their
// declaring type carry a placeholder that AdjustConstructor and
// AdjustMember replace.
func (*Language) RenderMember(m gen.Member) (string, error) {
	// A struct field is not valid Go on its own, so it is not formatted.
	if fd, ok := m.(*gen.Field); ok {
		return "\n" + fd.Name + " " + typeString(fd.Type) + "\n", nil
	}
	r := &renderer{owner: owner}
	code := r.member(m)
	if r.err != nil {
		return "", r.err
	}
	var buf bytes.Buffer
	if err := code.Render(&buf); err != nil {
		return "", gen.NewGenerationError(Name, "", "render member", err)
	}
	return "\n" + strings.TrimRight(buf.String(), "\n") + "\n", nil
}

// exported returns the exported Go name of a column or type.
func exported(s string) string {
	if s == "" {
		return s
	}
	return inflect.Camelize(s)
}

func unexported(s string) string {
	if s == "" {
		return s
	}
	return inflect.CamelizeDownFirst(s)
}

// ident escapes Go keywords and predeclared names that would break the
// generated code with a trailing underscore.
func ident(s string) string {
	if token.IsKeyword(s) || s == "e" || s == "value" {
		return s + "_"
	}
	return s
}

// typeString spells a type reference without jennifer, for fragments that
// cannot be formatted on their own.
func typeString(t gen.TypeRef) string {
	switch t.Kind {
	case gen.RefObject:
		return "*" + t.Name
	case gen.RefSequence, gen.RefList:
		return "[]" + typeString(*t.Elem)
	default:
		return t.Name
	}
}
