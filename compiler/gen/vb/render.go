package vb

import (
	"fmt"
	"strings"

	"github.com/syssam/dlog/compiler/gen"
)

type renderer struct {
	p     *gen.Printer
	owner string
	err   error
}

func newRenderer(owner string) *renderer {
	return &renderer{p: gen.NewPrinter("    "), owner: owner}
}

func (r *renderer) fail(format string, args ...any) string {
	if r.err == nil {
		r.err = gen.NewGenerationError(Name, r.owner, fmt.Sprintf(format, args...), nil)
	}
	return ""
}

func (r *renderer) typeDecl(d *gen.TypeDecl) error {
	r.p.Line("Public Class %s", ident(d.Name))
	r.p.In()
	var prev gen.Member
	for _, m := range gen.Grouped(d) {
		_, field := m.(*gen.Field)
		_, prevField := prev.(*gen.Field)
		if prev != nil && !(field && prevField) {
			r.p.Line("")
		}
		if err := r.member(m); err != nil {
			return err
		}
		prev = m
	}
	r.p.Out()
	r.p.Line("End Class")
	return r.err
}

func (r *renderer) member(m gen.Member) error {
	switch m := m.(type) {
	case *gen.Field:
		r.p.Line("%s %s As %s", visibility(m.Visibility), m.Name, r.typeRef(m.Type))
	case *gen.Property:
		typ := r.typeRef(m.Type)
		r.p.Line("%s Property %s() As %s", visibility(m.Visibility), ident(m.Name), typ)
		r.p.In()
		r.p.Line("Get")
		r.body(m.Get)
		r.p.Line("End Get")
		r.p.Line("Set(ByVal value As %s)", typ)
		r.body(m.Set)
		r.p.Line("End Set")
		r.p.Out()
		r.p.Line("End Property")
	case *gen.Constructor:
		r.p.Line("%s Sub New(%s)", visibility(m.Visibility), r.params(m.Params))
		r.body(m.Body)
		r.p.Line("End Sub")
	case *gen.Method:
		mod := visibility(m.Visibility)
		if m.Static {
			mod += " Shared"
		}
		if m.Returns == nil {
			r.p.Line("%s Sub %s(%s)", mod, ident(m.Name), r.params(m.Params))
			r.body(m.Body)
			r.p.Line("End Sub")
			break
		}
		r.p.Line("%s Function %s(%s) As %s", mod, ident(m.Name), r.params(m.Params), r.typeRef(*m.Returns))
		r.body(m.Body)
		r.p.Line("End Function")
	default:
		r.fail("unsupported member %T", m)
	}
	return r.err
}

func (r *renderer) params(ps []gen.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = "ByVal " + ident(p.Name) + " As " + r.typeRef(p.Type)
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) body(stmts []gen.Stmt) {
	r.p.In()
	for _, s := range stmts {
		r.stmt(s)
	}
	r.p.Out()
}

func (r *renderer) stmt(s gen.Stmt) {
	switch s := s.(type) {
	case *gen.VarDecl:
		if s.Init == nil {
			r.p.Line("Dim %s As %s", ident(s.Name), r.typeRef(s.Type))
			return
		}
		r.p.Line("Dim %s As %s = %s", ident(s.Name), r.typeRef(s.Type), r.expr(s.Init))
	case *gen.Assign:
		r.p.Line("%s = %s", r.expr(s.Left), r.expr(s.Right))
	case *gen.ExprStmt:
		r.p.Line("%s", r.expr(s.X))
	case *gen.Return:
		if s.X == nil {
			r.p.Line("Return")
			return
		}
		r.p.Line("Return %s", r.expr(s.X))
	case *gen.TryCatch:
		r.p.Line("Try")
		r.body(s.Try)
		r.p.Line("Catch %s As %s", ident(s.Catch.Var), r.typeRef(s.Catch.Type))
		r.body(s.Catch.Body)
		r.p.Line("End Try")
	case *gen.While:
		r.p.Line("Do While %s", r.expr(s.Cond))
		r.body(s.Body)
		r.p.Line("Loop")
	case *gen.If:
		r.p.Line("If %s Then", r.expr(s.Cond))
		r.body(s.Then)
		r.p.Line("End If")
	case *gen.Rethrow:
		r.p.Line("Throw")
	case *gen.Append:
		r.p.Line("%s.Add(%s)", r.expr(s.List), r.expr(s.Value))
	default:
		r.fail("unsupported statement %T", s)
	}
}

func (r *renderer) expr(e gen.Expr) string {
	switch e := e.(type) {
	case *gen.This:
		return "Me"
	case *gen.FieldRef:
		return r.expr(e.Target) + "." + e.Name
	case *gen.PropertyRef:
		return r.expr(e.Target) + "." + ident(e.Name)
	case *gen.VarRef:
		return ident(e.Name)
	case *gen.ArgRef:
		return ident(e.Name)
	case *gen.TypeExpr:
		return r.typeRef(e.Type)
	case *gen.Literal:
		return r.literal(e.Value)
	case *gen.Invoke:
		return r.expr(e.Target) + "." + e.Method + "(" + r.args(e.Args) + ")"
	case *gen.New:
		return "New " + r.typeRef(e.Type) + "(" + r.args(e.Args) + ")"
	case *gen.Cast:
		return "CType(" + r.expr(e.X) + ", " + r.typeRef(e.Type) + ")"
	case *gen.Index:
		return r.expr(e.X) + "(" + r.expr(e.Key) + ")"
	case *gen.SetValue:
		return "value"
	default:
		return r.fail("unsupported expression %T", e)
	}
}

func (r *renderer) args(es []gen.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = r.expr(e)
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) typeRef(t gen.TypeRef) string {
	switch t.Kind {
	case gen.RefSequence:
		return "IEnumerable(Of " + r.typeRef(*t.Elem) + ")"
	case gen.RefList:
		return "List(Of " + r.typeRef(*t.Elem) + ")"
	default:
		return t.Name
	}
}

func (r *renderer) literal(v any) string {
	switch v := v.(type) {
	case string:
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	default:
		return r.fail("unsupported literal %T", v)
	}
}

func visibility(v gen.Visibility) string {
	if v == gen.Private {
		return "Private"
	}
	return "Public"
}
