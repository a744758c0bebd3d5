package script

import "testing"

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	p, err := NewParser(src)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(program) != 1 {
		t.Fatalf("got %d statements, want 1", len(program))
	}
	return program[0]
}

func TestParserPrecedenceClimbing(t *testing.T) {
	stmt := parseOne(t, "def x = 1 + 2 * 3;")
	decl, ok := stmt.(VarDecl)
	if !ok {
		t.Fatalf("got %T, want VarDecl", stmt)
	}
	add, ok := decl.Value.(Binary)
	if !ok || add.Op != TPlus {
		t.Fatalf("got %#v, want a top-level '+'", decl.Value)
	}
	if _, ok := add.Left.(NumberLit); !ok {
		t.Fatalf("left of '+' should be the literal 1, got %#v", add.Left)
	}
	mul, ok := add.Right.(Binary)
	if !ok || mul.Op != TStar {
		t.Fatalf("right of '+' should be '2 * 3', got %#v", add.Right)
	}
}

func TestParserTernaryAndCoalesce(t *testing.T) {
	stmt := parseOne(t, "def x = a ? b : c ?? d;")
	decl := stmt.(VarDecl)
	tern, ok := decl.Value.(Ternary)
	if !ok {
		t.Fatalf("got %#v, want Ternary", decl.Value)
	}
	if _, ok := tern.Else.(Coalesce); !ok {
		t.Fatalf("ternary else-branch should be a Coalesce, got %#v", tern.Else)
	}
}

func TestParserIfElseChain(t *testing.T) {
	stmt := parseOne(t, `if (x < 1) { def a = 1; } else if (x < 2) { def b = 2; } else { def c = 3; }`)
	top, ok := stmt.(If)
	if !ok {
		t.Fatalf("got %T, want If", stmt)
	}
	if len(top.Then) != 1 {
		t.Fatalf("got %d then-statements, want 1", len(top.Then))
	}
	if len(top.Else) != 1 {
		t.Fatalf("got %d else-statements, want 1", len(top.Else))
	}
	if _, ok := top.Else[0].(If); !ok {
		t.Fatalf("else-if should nest an If, got %#v", top.Else[0])
	}
}

func TestParserCallChainAndMemberAccess(t *testing.T) {
	stmt := parseOne(t, "def s = set_color(create_sphere(vector(0,0,0), 1), color(1,0,0)).field;")
	decl := stmt.(VarDecl)
	member, ok := decl.Value.(Member)
	if !ok || member.Field != "field" {
		t.Fatalf("got %#v, want a trailing .field member access", decl.Value)
	}
	if _, ok := member.Base.(Call); !ok {
		t.Fatalf("member base should be a Call, got %#v", member.Base)
	}
}

func TestParserAssignAcceptsArrowOperator(t *testing.T) {
	stmt := parseOne(t, "x <- 5;")
	exprStmt, ok := stmt.(ExprStmt)
	if !ok {
		t.Fatalf("got %T, want ExprStmt", stmt)
	}
	if _, ok := exprStmt.Expr.(Assign); !ok {
		t.Fatalf("got %#v, want Assign", exprStmt.Expr)
	}
}

func TestParserRejectsMissingSemicolon(t *testing.T) {
	p, err := NewParser("def x = 1")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a parse error for a missing semicolon")
	}
}

func TestParserArrayLiteral(t *testing.T) {
	stmt := parseOne(t, "def xs = [1, 2, 3];")
	decl := stmt.(VarDecl)
	arr, ok := decl.Value.(ArrayLit)
	if !ok {
		t.Fatalf("got %#v, want ArrayLit", decl.Value)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr.Elements))
	}
}
