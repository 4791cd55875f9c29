package gen

// The code model is a small, language neutral tree of type declarations,
// members, statements and expressions. The Builder produces it from a
// table and each Language renders it.

// Visibility of a member.
type Visibility uint8

const (
	Public Visibility = iota
	Private
)

// RefKind classifies a type reference.
type RefKind uint8

const (
	// RefPrimitive is a type name already spelled in the target language,
	// as returned by Language.TypeName.
	RefPrimitive RefKind = iota
	// RefObject is a class declared by generated or external code.
	RefObject
	// RefSequence is a read-only sequence of Elem.
	RefSequence
	// RefList is a growable list of Elem.
	RefList
)

// TypeRef references a type.
type TypeRef struct {
	Name string
	Kind RefKind
	Elem *TypeRef
}

// Primitive returns a reference to a target-language type name.
func Primitive(name string) TypeRef { return TypeRef{Name: name, Kind: RefPrimitive} }

// Object returns a reference to a class.
func Object(name string) TypeRef { return TypeRef{Name: name, Kind: RefObject} }

// SequenceOf returns a reference to a read-only sequence of elem.
func SequenceOf(elem TypeRef) TypeRef { return TypeRef{Kind: RefSequence, Elem: &elem} }

// ListOf returns a reference to a growable list of elem.
func ListOf(elem TypeRef) TypeRef { return TypeRef{Kind: RefList, Elem: &elem} }

// TypeDecl is a class declaration.
type TypeDecl struct {
	Name    string
	Members []Member
}

// Fields returns the field members in declaration order.
func (d *TypeDecl) Fields() []*Field { return membersOf[*Field](d) }

// Properties returns the property members in declaration order.
func (d *TypeDecl) Properties() []*Property { return membersOf[*Property](d) }

// Constructors returns the constructor members in declaration order.
func (d *TypeDecl) Constructors() []*Constructor { return membersOf[*Constructor](d) }

// Methods returns the method members in declaration order.
func (d *TypeDecl) Methods() []*Method { return membersOf[*Method](d) }

// Method returns the method with the given name, or nil.
func (d *TypeDecl) Method(name string) *Method {
	for _, m := range d.Methods() {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func membersOf[T Member](d *TypeDecl) []T {
	var ms []T
	for _, m := range d.Members {
		if v, ok := m.(T); ok {
			ms = append(ms, v)
		}
	}
	return ms
}

// Member is one of *Field, *Property, *Constructor or *Method.
type Member interface {
	member()
}

type (
	// Field is a storage field.
	Field struct {
		Name       string
		Type       TypeRef
		Visibility Visibility
	}

	// Property is an accessor pair over a field.
	Property struct {
		Name       string
		Type       TypeRef
		Visibility Visibility
		Get        []Stmt
		Set        []Stmt
	}

	// Param is a constructor or method parameter.
	Param struct {
		Name string
		Type TypeRef
	}

	// Constructor has no name of its own. Renderers that print it outside
	// its declaring type leave the name for Language.AdjustConstructor.
	Constructor struct {
		Visibility Visibility
		Params     []Param
		Body       []Stmt
	}

	// Method is an instance or static method. A nil Returns means no
	// return value.
	Method struct {
		Name       string
		Visibility Visibility
		Static     bool
		Params     []Param
		Returns    *TypeRef
		Body       []Stmt
	}
)

func (*Field) member()       {}
func (*Property) member()    {}
func (*Constructor) member() {}
func (*Method) member()      {}

// Stmt is a statement node.
type Stmt interface {
	stmt()
}

type (
	// VarDecl declares and initializes a local variable.
	VarDecl struct {
		Name string
		Type TypeRef
		Init Expr
	}

	// Assign stores Right into Left.
	Assign struct {
		Left  Expr
		Right Expr
	}

	// ExprStmt evaluates X for its side effects.
	ExprStmt struct {
		X Expr
	}

	// Return returns X, or nothing when X is nil.
	Return struct {
		X Expr
	}

	// TryCatch runs Try and hands any exception to Catch.
	TryCatch struct {
		Try   []Stmt
		Catch Catch
	}

	// While repeats Body as long as Cond holds.
	While struct {
		Cond Expr
		Body []Stmt
	}

	// If runs Then when Cond holds.
	If struct {
		Cond Expr
		Then []Stmt
	}

	// Rethrow re-raises the exception being handled.
	Rethrow struct{}

	// Append adds Value to the list held by List.
	Append struct {
		List  Expr
		Value Expr
	}
)

// Catch is the handler of a TryCatch. Var names the caught exception.
type Catch struct {
	Var  string
	Type TypeRef
	Body []Stmt
}

func (*VarDecl) stmt()  {}
func (*Assign) stmt()   {}
func (*ExprStmt) stmt() {}
func (*Return) stmt()   {}
func (*TryCatch) stmt() {}
func (*While) stmt()    {}
func (*If) stmt()       {}
func (*Rethrow) stmt()  {}
func (*Append) stmt()   {}

// Expr is an expression node.
type Expr interface {
	expr()
}

type (
	// This is the current instance.
	This struct{}

	// FieldRef reads or writes a field of Target.
	FieldRef struct {
		Target Expr
		Name   string
	}

	// PropertyRef reads or writes a property of Target.
	PropertyRef struct {
		Target Expr
		Name   string
	}

	// VarRef references a local variable.
	VarRef struct {
		Name string
	}

	// ArgRef references a parameter.
	ArgRef struct {
		Name string
	}

	// TypeExpr references a type in expression position, as the target of
	// a static call or an enumeration member.
	TypeExpr struct {
		Type TypeRef
	}

	// Literal is a string, bool or integer constant.
	Literal struct {
		Value any
	}

	// Invoke calls Method on Target.
	Invoke struct {
		Target Expr
		Method string
		Args   []Expr
	}

	// New creates an instance of Type.
	New struct {
		Type TypeRef
		Args []Expr
	}

	// Cast converts X to Type.
	Cast struct {
		Type TypeRef
		X    Expr
	}

	// Index reads X[Key].
	Index struct {
		X   Expr
		Key Expr
	}

	// SetValue is the incoming value inside a property setter.
	SetValue struct{}
)

func (*This) expr()        {}
func (*FieldRef) expr()    {}
func (*PropertyRef) expr() {}
func (*VarRef) expr()      {}
func (*ArgRef) expr()      {}
func (*TypeExpr) expr()    {}
func (*Literal) expr()     {}
func (*Invoke) expr()      {}
func (*New) expr()         {}
func (*Cast) expr()        {}
func (*Index) expr()       {}
func (*SetValue) expr()    {}
