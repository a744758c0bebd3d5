package script

// Node is the sum type for every parsed expression and statement,
// generalizing the teacher's TokenGroup sum-type interface from a
// flat postfix token stream to a proper expression tree.
type Node interface {
	node()
}

type NumberLit struct{ Value float64 }
type StringLit struct{ Value string }
type BoolLit struct{ Value bool }

type Ident struct{ Name string }

type ArrayLit struct{ Elements []Node }

// Unary covers NOT, !, and unary minus.
type Unary struct {
	Op      TokenType
	Operand Node
}

// Binary covers every left-to-right binary operator: arithmetic,
// comparison, logical, and CAT (string/array concatenation).
type Binary struct {
	Op          TokenType
	Left, Right Node
}

// Ternary is `cond ? then : else`.
type Ternary struct {
	Cond, Then, Else Node
}

// Coalesce is `a ?? b`: a if a is not nil, else b.
type Coalesce struct {
	Left, Right Node
}

// Member is `base.field`, used both for object-property reads and,
// on the left of an assignment, for scene.light/scene.matter writes.
type Member struct {
	Base  Node
	Field string
}

// Index is `base[expr]`, array element access.
type Index struct {
	Base, Index Node
}

// Call is `callee(args...)`, used for every builtin invocation.
type Call struct {
	Callee Node
	Args   []Node
}

// Assign is `target = value`, where target is an Ident or a Member.
type Assign struct {
	Target Node
	Value  Node
}

// VarDecl is `def name = value;`.
type VarDecl struct {
	Name  string
	Value Node
}

// If is `if (cond) thenBlock else elseBlock`; Else may be nil.
type If struct {
	Cond       Node
	Then, Else []Node
}

// While is `while (cond) body`.
type While struct {
	Cond Node
	Body []Node
}

// ExprStmt wraps an expression evaluated purely for its side effects
// (typically a Call or an Assign).
type ExprStmt struct{ Expr Node }

func (NumberLit) node() {}
func (StringLit) node() {}
func (BoolLit) node()   {}
func (Ident) node()     {}
func (ArrayLit) node()  {}
func (Unary) node()     {}
func (Binary) node()    {}
func (Ternary) node()   {}
func (Coalesce) node()  {}
func (Member) node()    {}
func (Index) node()     {}
func (Call) node()      {}
func (Assign) node()    {}
func (VarDecl) node()   {}
func (If) node()        {}
func (While) node()     {}
func (ExprStmt) node()  {}
