package gen

import (
	"slices"

	"github.com/syssam/dlog/schema"
)

// Operation is a modify operation of a data object.
type Operation uint8

const (
	OpCreate Operation = iota
	OpUpdate
	OpDelete
)

// Verb returns the method name prefix of the operation.
func (op Operation) Verb() string {
	switch op {
	case OpCreate:
		return "Insert"
	case OpUpdate:
		return "Update"
	default:
		return "Delete"
	}
}

// Binds reports whether the operation binds the column as a command
// parameter. Inserts skip identity columns, updates bind everything and
// deletes bind only identity columns.
func (op Operation) Binds(c schema.Column) bool {
	switch op {
	case OpCreate:
		return !c.Identity
	case OpUpdate:
		return true
	default:
		return c.Identity
	}
}

// Local variable names used by data object methods.
const (
	varDatabase  = "database"
	varCommand   = "command"
	varReader    = "reader"
	varResult    = "retval"
	varException = "exception"
)

// Builder builds the code model of entities and data objects. It never
// produces text.
type Builder struct {
	lang Language
	cfg  *Config
}

// NewBuilder returns a builder for the given language. A nil config uses
// the defaults.
func NewBuilder(lang Language, cfg *Config) *Builder {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	return &Builder{lang: lang, cfg: cfg}
}

// Field returns the private field backing a column.
func (b *Builder) Field(c schema.Column) *Field {
	return &Field{
		Name:       b.lang.FieldName(c.Name),
		Type:       Primitive(b.lang.TypeName(c.Type)),
		Visibility: Private,
	}
}

// Property returns the public property exposing a column's field.
func (b *Builder) Property(c schema.Column) *Property {
	ref := &FieldRef{Target: &This{}, Name: b.lang.FieldName(c.Name)}
	return &Property{
		Name:       c.Name,
		Type:       Primitive(b.lang.TypeName(c.Type)),
		Visibility: Public,
		Get:        []Stmt{&Return{X: ref}},
		Set:        []Stmt{&Assign{Left: ref, Right: &SetValue{}}},
	}
}

// DefaultConstructor returns a parameterless constructor with an empty body.
func (b *Builder) DefaultConstructor(vis Visibility) *Constructor {
	return &Constructor{Visibility: vis}
}

// ParamConstructor returns the public constructor taking one parameter per
// column, in column order, and assigning each field from it.
func (b *Builder) ParamConstructor(tv *schema.TableView) *Constructor {
	ctor := &Constructor{Visibility: Public}
	for _, c := range tv.Columns {
		p := b.lang.ParameterName(c.Name)
		ctor.Params = append(ctor.Params, Param{Name: p, Type: Primitive(b.lang.TypeName(c.Type))})
		ctor.Body = append(ctor.Body, &Assign{
			Left:  &FieldRef{Target: &This{}, Name: b.lang.FieldName(c.Name)},
			Right: &ArgRef{Name: p},
		})
	}
	return ctor
}

// Entity returns the entity type of a table: a field and a property per
// column followed by the entity constructors.
func (b *Builder) Entity(tv *schema.TableView) *TypeDecl {
	decl := &TypeDecl{Name: tv.Name}
	for _, c := range tv.Columns {
		decl.Members = append(decl.Members, b.Field(c), b.Property(c))
	}
	decl.Members = append(decl.Members, b.EntityConstructors(tv)...)
	return decl
}

// EntityConstructors returns the default and the parameter-based
// constructors. A table without columns gets only the default one, the
// other would have the same signature.
func (b *Builder) EntityConstructors(tv *schema.TableView) []Member {
	if len(tv.Columns) == 0 {
		return []Member{b.DefaultConstructor(Public)}
	}
	return []Member{b.DefaultConstructor(Public), b.ParamConstructor(tv)}
}

// DataObject returns the data-access type of a table.
func (b *Builder) DataObject(tv *schema.TableView) *TypeDecl {
	return &TypeDecl{
		Name: DataObjectName(tv.Name),
		Members: []Member{
			b.DefaultConstructor(Private),
			b.ModifyMethod(tv, OpCreate),
			b.ReadAllMethod(tv),
			b.ModifyMethod(tv, OpUpdate),
			b.ModifyMethod(tv, OpDelete),
		},
	}
}

// ModifyMethod returns the static method running the operation's stored
// procedure with the entity's bound columns.
func (b *Builder) ModifyMethod(tv *schema.TableView, op Operation) *Method {
	da := b.cfg.DataAccess
	name := op.Verb() + tv.Name
	entity := entityVar(tv.Name)
	try := b.openCommand(name)
	for _, c := range tv.Columns {
		if !op.Binds(c) {
			continue
		}
		try = append(try, &ExprStmt{X: &Invoke{
			Target: &VarRef{Name: varDatabase},
			Method: da.AddInParameter,
			Args: []Expr{
				&VarRef{Name: varCommand},
				&Literal{Value: "@" + c.Name},
				&FieldRef{Target: &TypeExpr{Type: Object(da.ParamType)}, Name: c.Type.DbType()},
				&PropertyRef{Target: &ArgRef{Name: entity}, Name: c.Name},
			},
		}})
	}
	try = append(try, &ExprStmt{X: &Invoke{
		Target: &VarRef{Name: varDatabase},
		Method: da.ExecuteNonQuery,
		Args:   []Expr{&VarRef{Name: varCommand}},
	}})
	return &Method{
		Name:       name,
		Visibility: Public,
		Static:     true,
		Params:     []Param{{Name: entity, Type: Object(tv.Name)}},
		Body:       []Stmt{&TryCatch{Try: try, Catch: b.catch()}},
	}
}

// ReadAllMethod returns the static method reading every row of the
// table's GetAll stored procedure into a sequence of entities.
func (b *Builder) ReadAllMethod(tv *schema.TableView) *Method {
	da := b.cfg.DataAccess
	name := "GetAll" + tv.Name
	elem := Object(tv.Name)
	entity := entityVar(tv.Name)
	loop := []Stmt{&VarDecl{Name: entity, Type: elem, Init: &New{Type: elem}}}
	for _, c := range tv.Columns {
		loop = append(loop, &Assign{
			Left: &PropertyRef{Target: &VarRef{Name: entity}, Name: c.Name},
			Right: &Cast{
				Type: Primitive(b.lang.TypeName(c.Type)),
				X:    &Index{X: &VarRef{Name: varReader}, Key: &Literal{Value: c.Name}},
			},
		})
	}
	loop = append(loop, &Append{List: &VarRef{Name: varResult}, Value: &VarRef{Name: entity}})
	try := append(b.openCommand(name),
		&VarDecl{
			Name: varReader,
			Type: Object(da.Reader),
			Init: &Invoke{Target: &VarRef{Name: varDatabase}, Method: da.ExecuteReader, Args: []Expr{&VarRef{Name: varCommand}}},
		},
		&While{
			Cond: &Invoke{Target: &VarRef{Name: varReader}, Method: da.Read},
			Body: loop,
		},
	)
	returns := SequenceOf(elem)
	return &Method{
		Name:       name,
		Visibility: Public,
		Static:     true,
		Returns:    &returns,
		Body: []Stmt{
			&VarDecl{Name: varResult, Type: ListOf(elem), Init: &New{Type: ListOf(elem)}},
			&TryCatch{Try: try, Catch: b.catch()},
			&Return{X: &VarRef{Name: varResult}},
		},
	}
}

// openCommand declares the database and the stored procedure command.
func (b *Builder) openCommand(proc string) []Stmt {
	da := b.cfg.DataAccess
	return []Stmt{
		&VarDecl{
			Name: varDatabase,
			Type: Object(da.Database),
			Init: &Invoke{Target: &TypeExpr{Type: Object(da.Factory)}, Method: da.CreateDatabase},
		},
		&VarDecl{
			Name: varCommand,
			Type: Object(da.Command),
			Init: &Invoke{Target: &VarRef{Name: varDatabase}, Method: da.GetCommand, Args: []Expr{&Literal{Value: proc}}},
		},
	}
}

// catch hands the exception to the policy hook and rethrows when the hook
// asks for it.
func (b *Builder) catch() Catch {
	ep := b.cfg.ExceptionPolicy
	return Catch{
		Var:  varException,
		Type: Object(b.cfg.DataAccess.Exception),
		Body: []Stmt{&If{
			Cond: &Invoke{
				Target: &TypeExpr{Type: Object(ep.Type)},
				Method: ep.Method,
				Args:   []Expr{&VarRef{Name: varException}, &Literal{Value: ep.Name}},
			},
			Then: []Stmt{&Rethrow{}},
		}},
	}
}

// entityVar is the local name of an entity instance. It steps aside when
// the table name would shadow one of the method's own locals.
func entityVar(table string) string {
	name := InstanceName(table)
	if slices.Contains([]string{varDatabase, varCommand, varReader, varResult, varException}, name) {
		name += "Item"
	}
	return name
}
