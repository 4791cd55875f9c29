package golang

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/dlog/compiler/gen"
)

// receiver is the receiver and constructor result name.
const receiver = "e"

type renderer struct {
	owner string
	// catch holds the name of the recovered value of the innermost catch.
	catch []string
	err   error
}

func (r *renderer) fail(format string, args ...any) *jen.Statement {
	if r.err == nil {
		r.err = gen.NewGenerationError(Name, r.owner, fmt.Sprintf(format, args...), nil)
	}
	return jen.Null()
}

func (r *renderer) member(m gen.Member) *jen.Statement {
	switch m := m.(type) {
	case *gen.Constructor:
		return r.constructor(m)
	case *gen.Property:
		return r.property(m)
	case *gen.Method:
		return r.method(m)
	default:
		return r.fail("unsupported member %T", m)
	}
}

func (r *renderer) constructor(c *gen.Constructor) *jen.Statement {
	name := "New" + r.owner
	if c.Visibility == gen.Private {
		name = "new" + r.owner
	}
	if len(c.Params) > 0 {
		name += "With"
	}
	return jen.Func().Id(name).Params(r.params(c.Params)...).Op("*").Id(r.owner).BlockFunc(func(g *jen.Group) {
		if len(c.Body) == 0 {
			g.Return(jen.Op("&").Id(r.owner).Values())
			return
		}
		g.Id(receiver).Op(":=").Op("&").Id(r.owner).Values()
		r.stmts(g, c.Body)
		g.Return(jen.Id(receiver))
	})
}

func (r *renderer) property(p *gen.Property) *jen.Statement {
	recv := jen.Id(receiver).Op("*").Id(r.owner)
	name := exported(p.Name)
	getter := jen.Func().Params(recv).Id(name).Params().Add(r.typ(p.Type)).BlockFunc(func(g *jen.Group) {
		r.stmts(g, p.Get)
	})
	setter := jen.Func().Params(recv.Clone()).Id("Set"+name).Params(jen.Id("value").Add(r.typ(p.Type))).BlockFunc(func(g *jen.Group) {
		r.stmts(g, p.Set)
	})
	return getter.Line().Line().Add(setter)
}

func (r *renderer) method(m *gen.Method) *jen.Statement {
	s := jen.Func()
	if !m.Static {
		s.Params(jen.Id(receiver).Op("*").Id(r.owner))
	}
	s.Id(m.Name).Params(r.params(m.Params)...)
	if m.Returns != nil {
		s.Add(r.typ(*m.Returns))
	}
	return s.BlockFunc(func(g *jen.Group) {
		r.stmts(g, m.Body)
	})
}

func (r *renderer) params(ps []gen.Param) []jen.Code {
	codes := make([]jen.Code, len(ps))
	for i, p := range ps {
		codes[i] = jen.Id(ident(p.Name)).Add(r.typ(p.Type))
	}
	return codes
}

func (r *renderer) stmts(g *jen.Group, ss []gen.Stmt) {
	for _, s := range ss {
		g.Add(r.stmt(s))
	}
}

func (r *renderer) stmt(s gen.Stmt) *jen.Statement {
	switch s := s.(type) {
	case *gen.VarDecl:
		if s.Init == nil {
			return jen.Var().Id(ident(s.Name)).Add(r.typ(s.Type))
		}
		return jen.Id(ident(s.Name)).Op(":=").Add(r.expr(s.Init))
	case *gen.Assign:
		if p, ok := s.Left.(*gen.PropertyRef); ok {
			return r.expr(p.Target).Dot("Set" + exported(p.Name)).Call(r.expr(s.Right))
		}
		return r.expr(s.Left).Op("=").Add(r.expr(s.Right))
	case *gen.ExprStmt:
		return r.expr(s.X)
	case *gen.Return:
		if s.X == nil {
			return jen.Return()
		}
		return jen.Return(r.expr(s.X))
	case *gen.TryCatch:
		return r.tryCatch(s)
	case *gen.While:
		return jen.For(r.expr(s.Cond)).BlockFunc(func(g *jen.Group) {
			r.stmts(g, s.Body)
		})
	case *gen.If:
		return jen.If(r.expr(s.Cond)).BlockFunc(func(g *jen.Group) {
			r.stmts(g, s.Then)
		})
	case *gen.Rethrow:
		if len(r.catch) == 0 {
			return r.fail("rethrow outside of catch")
		}
		return jen.Panic(jen.Id(r.catch[len(r.catch)-1]))
	case *gen.Append:
		list := r.expr(s.List)
		return list.Clone().Op("=").Append(list, r.expr(s.Value))
	default:
		return r.fail("unsupported statement %T", s)
	}
}

// tryCatch runs the try block in a closure whose deferred recover hands
// a panic to the catch block.
func (r *renderer) tryCatch(s *gen.TryCatch) *jen.Statement {
	v := ident(s.Catch.Var)
	return jen.Func().Params().BlockFunc(func(g *jen.Group) {
		g.Defer().Func().Params().Block(
			jen.If(jen.Id(v).Op(":=").Recover(), jen.Id(v).Op("!=").Nil()).BlockFunc(func(g *jen.Group) {
				r.catch = append(r.catch, v)
				r.stmts(g, s.Catch.Body)
				r.catch = r.catch[:len(r.catch)-1]
			}),
		).Call()
		r.stmts(g, s.Try)
	}).Call()
}

func (r *renderer) expr(e gen.Expr) *jen.Statement {
	switch e := e.(type) {
	case *gen.This:
		return jen.Id(receiver)
	case *gen.FieldRef:
		return r.expr(e.Target).Dot(e.Name)
	case *gen.PropertyRef:
		return r.expr(e.Target).Dot(exported(e.Name)).Call()
	case *gen.VarRef:
		return jen.Id(ident(e.Name))
	case *gen.ArgRef:
		return jen.Id(ident(e.Name))
	case *gen.TypeExpr:
		return jen.Id(e.Type.Name)
	case *gen.Literal:
		return jen.Lit(e.Value)
	case *gen.Invoke:
		return r.expr(e.Target).Dot(e.Method).Call(r.args(e.Args)...)
	case *gen.New:
		if e.Type.Kind == gen.RefObject {
			return jen.Id("New" + e.Type.Name).Call(r.args(e.Args)...)
		}
		return r.typ(e.Type).Values(r.args(e.Args)...)
	case *gen.Cast:
		return r.expr(e.X).Assert(r.typ(e.Type))
	case *gen.Index:
		return r.expr(e.X).Dot("Value").Call(r.expr(e.Key))
	case *gen.SetValue:
		return jen.Id("value")
	default:
		return r.fail("unsupported expression %T", e)
	}
}

func (r *renderer) args(es []gen.Expr) []jen.Code {
	codes := make([]jen.Code, len(es))
	for i, e := range es {
		codes[i] = r.expr(e)
	}
	return codes
}

// typ returns the Go type of a reference. Objects are held by pointer and
// sequences and lists are both slices.
func (r *renderer) typ(t gen.TypeRef) *jen.Statement {
	switch t.Kind {
	case gen.RefObject:
		return jen.Op("*").Id(t.Name)
	case gen.RefSequence, gen.RefList:
		return jen.Index().Add(r.typ(*t.Elem))
	default:
		if pkg, name, ok := strings.Cut(t.Name, "."); ok {
			return jen.Qual(pkg, name)
		}
		return jen.Id(t.Name)
	}
}
