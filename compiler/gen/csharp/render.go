package csharp

import (
	"fmt"
	"strings"

	"github.com/syssam/dlog/compiler/gen"
)

// renderer prints model nodes. The first unsupported node is kept in err
// and ends rendering.
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
	r.p.Line("public class %s", ident(d.Name))
	r.p.Line("{")
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
	r.p.Line("}")
	return r.err
}

func (r *renderer) member(m gen.Member) error {
	switch m := m.(type) {
	case *gen.Field:
		r.p.Line("%s %s %s;", visibility(m.Visibility), r.typeRef(m.Type), m.Name)
	case *gen.Property:
		r.p.Line("%s %s %s", visibility(m.Visibility), r.typeRef(m.Type), ident(m.Name))
		r.p.Line("{")
		r.p.In()
		r.p.Line("get")
		r.block(m.Get)
		r.p.Line("set")
		r.block(m.Set)
		r.p.Out()
		r.p.Line("}")
	case *gen.Constructor:
		r.p.Line("%s %s(%s)", visibility(m.Visibility), r.owner, r.params(m.Params))
		r.block(m.Body)
	case *gen.Method:
		var b strings.Builder
		b.WriteString(visibility(m.Visibility))
		if m.Static {
			b.WriteString(" static")
		}
		b.WriteString(" ")
		if m.Returns == nil {
			b.WriteString("void")
		} else {
			b.WriteString(r.typeRef(*m.Returns))
		}
		r.p.Line("%s %s(%s)", b.String(), ident(m.Name), r.params(m.Params))
		r.block(m.Body)
	default:
		r.fail("unsupported member %T", m)
	}
	return r.err
}

func (r *renderer) params(ps []gen.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = r.typeRef(p.Type) + " " + ident(p.Name)
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) block(body []gen.Stmt) {
	r.p.Line("{")
	r.p.In()
	for _, s := range body {
		r.stmt(s)
	}
	r.p.Out()
	r.p.Line("}")
}

func (r *renderer) stmt(s gen.Stmt) {
	switch s := s.(type) {
	case *gen.VarDecl:
		if s.Init == nil {
			r.p.Line("%s %s;", r.typeRef(s.Type), ident(s.Name))
			return
		}
		r.p.Line("%s %s = %s;", r.typeRef(s.Type), ident(s.Name), r.expr(s.Init))
	case *gen.Assign:
		r.p.Line("%s = %s;", r.expr(s.Left), r.expr(s.Right))
	case *gen.ExprStmt:
		r.p.Line("%s;", r.expr(s.X))
	case *gen.Return:
		if s.X == nil {
			r.p.Line("return;")
			return
		}
		r.p.Line("return %s;", r.expr(s.X))
	case *gen.TryCatch:
		r.p.Line("try")
		r.block(s.Try)
		r.p.Line("catch (%s %s)", r.typeRef(s.Catch.Type), ident(s.Catch.Var))
		r.block(s.Catch.Body)
	case *gen.While:
		r.p.Line("while (%s)", r.expr(s.Cond))
		r.block(s.Body)
	case *gen.If:
		r.p.Line("if (%s)", r.expr(s.Cond))
		r.block(s.Then)
	case *gen.Rethrow:
		r.p.Line("throw;")
	case *gen.Append:
		r.p.Line("%s.Add(%s);", r.expr(s.List), r.expr(s.Value))
	default:
		r.fail("unsupported statement %T", s)
	}
}

func (r *renderer) expr(e gen.Expr) string {
	switch e := e.(type) {
	case *gen.This:
		return "this"
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
		return "new " + r.typeRef(e.Type) + "(" + r.args(e.Args) + ")"
	case *gen.Cast:
		return "(" + r.typeRef(e.Type) + ")" + r.expr(e.X)
	case *gen.Index:
		return r.expr(e.X) + "[" + r.expr(e.Key) + "]"
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
		return "IEnumerable<" + r.typeRef(*t.Elem) + ">"
	case gen.RefList:
		return "List<" + r.typeRef(*t.Elem) + ">"
	default:
		return t.Name
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func (r *renderer) literal(v any) string {
	switch v := v.(type) {
	case string:
		return `"` + escaper.Replace(v) + `"`
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	default:
		return r.fail("unsupported literal %T", v)
	}
}

func visibility(v gen.Visibility) string {
	if v == gen.Private {
		return "private"
	}
	return "public"
}
