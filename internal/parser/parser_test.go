package parser

import (
	"testing"

	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/lexer"
	"github.com/hersac/umbral/internal/token"
)

func testParser(input string) *Parser {
	return New(lexer.New(input), input)
}

func TestIntegerAndFloatLiterals(t *testing.T) {
	tests := []struct {
		input   string
		wantInt bool
		wantI   int64
		wantF   float64
	}{
		{"5;", true, 5, 0},
		{"0;", true, 0, 0},
		{"3.5;", false, 0, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := testParser(tt.input)
			prog, err := p.ParseProgram()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(prog.Statements) != 1 {
				t.Fatalf("got %d statements, want 1", len(prog.Statements))
			}
			stmt, ok := prog.Statements[0].(*ast.ExpressionStmt)
			if !ok {
				t.Fatalf("statement is %T, want *ast.ExpressionStmt", prog.Statements[0])
			}
			if tt.wantInt {
				lit, ok := stmt.Expr.(*ast.IntegerLiteral)
				if !ok {
					t.Fatalf("expr is %T, want *ast.IntegerLiteral", stmt.Expr)
				}
				if lit.Value != tt.wantI {
					t.Errorf("value = %d, want %d", lit.Value, tt.wantI)
				}
				return
			}
			lit, ok := stmt.Expr.(*ast.FloatLiteral)
			if !ok {
				t.Fatalf("expr is %T, want *ast.FloatLiteral", stmt.Expr)
			}
			if lit.Value != tt.wantF {
				t.Errorf("value = %v, want %v", lit.Value, tt.wantF)
			}
		})
	}
}

func TestVarDecl(t *testing.T) {
	p := testParser(`v: count -> Integer = 0;`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VarDecl", prog.Statements[0])
	}
	if decl.Name != "count" {
		t.Errorf("name = %q, want count", decl.Name)
	}
	if decl.Type == nil || decl.Type.Name != "Integer" {
		t.Errorf("type = %+v, want Integer", decl.Type)
	}
}

func TestExportedConstDecl(t *testing.T) {
	p := testParser(`ex: c: Pi = 3.14;`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl, ok := prog.Statements[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ConstDecl", prog.Statements[0])
	}
	if !decl.Exported {
		t.Error("expected Exported = true")
	}
}

func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 < 2 && 3 < 4;", "((1 < 2) && (3 < 4))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := testParser(tt.input)
			prog, err := p.ParseProgram()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			stmt := prog.Statements[0].(*ast.ExpressionStmt)
			got := stringifyExpr(stmt.Expr)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// stringifyExpr renders an expression as a fully-parenthesised string,
// enough to assert precedence and associativity without a full printer.
func stringifyExpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return itoa(n.Value)
	case *ast.Ident:
		return n.Name
	case *ast.GroupedExpr:
		return stringifyExpr(n.Inner)
	case *ast.BinaryExpr:
		op, ok := opSymbols[n.Op]
		if !ok {
			op = n.Op.String()
		}
		return "(" + stringifyExpr(n.Left) + " " + op + " " + stringifyExpr(n.Right) + ")"
	default:
		return "?"
	}
}

// opSymbols maps the operator kinds used above to their source spelling;
// token.Kind.String() yields the kind name (PLUS), not the symbol.
var opSymbols = map[token.Kind]string{
	token.PLUS: "+", token.STAR: "*", token.LT: "<", token.AND: "&&",
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestIfElseIfElse(t *testing.T) {
	p := testParser(`
i: (x) {
  r: 1;
} ie: (y) {
  r: 2;
} e: {
  r: 3;
}`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStmt", prog.Statements[0])
	}
	if len(stmt.Elifs) != 1 {
		t.Fatalf("got %d elifs, want 1", len(stmt.Elifs))
	}
	if stmt.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestForEach(t *testing.T) {
	p := testParser(`fe: (v: item <= items) { tprint(item); }`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt, ok := prog.Statements[0].(*ast.ForEachStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForEachStmt", prog.Statements[0])
	}
	if stmt.VarName != "item" {
		t.Errorf("var name = %q, want item", stmt.VarName)
	}
}

func TestTryCatchFinally(t *testing.T) {
	p := testParser(`
tc {
  tw: n: Error("boom");
} cat(e -> Error) {
  tprint(e);
} fin {
  tprint("done");
}`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt, ok := prog.Statements[0].(*ast.TryCatchStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.TryCatchStmt", prog.Statements[0])
	}
	if stmt.Catch == nil {
		t.Fatal("expected a catch clause")
	}
	if stmt.Catch.Type != "Error" {
		t.Errorf("catch type = %q, want Error", stmt.Catch.Type)
	}
	if stmt.Finally == nil {
		t.Fatal("expected a finally clause")
	}
}

func TestClassDeclWithExtendsAndImplements(t *testing.T) {
	p := testParser(`
cs: Dog extends Animal imp: Speaker {
  pu: name -> Text;
  pr: f: bark() {
    tprint("woof");
  }
}`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl, ok := prog.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ClassDecl", prog.Statements[0])
	}
	if len(decl.Extends) != 1 || decl.Extends[0] != "Animal" {
		t.Errorf("extends = %v, want [Animal]", decl.Extends)
	}
	if len(decl.Implements) != 1 || decl.Implements[0] != "Speaker" {
		t.Errorf("implements = %v, want [Speaker]", decl.Implements)
	}
	if len(decl.Properties) != 1 || len(decl.Methods) != 1 {
		t.Fatalf("got %d properties, %d methods", len(decl.Properties), len(decl.Methods))
	}
	if decl.Methods[0].Public {
		t.Error("expected bark() to be private")
	}
}

func TestEnumDecl(t *testing.T) {
	p := testParser(`em: Color { Red, Green = 5, Blue }`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl, ok := prog.Statements[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.EnumDecl", prog.Statements[0])
	}
	if len(decl.Variants) != 3 {
		t.Fatalf("got %d variants, want 3", len(decl.Variants))
	}
	if decl.Variants[1].Value == nil {
		t.Error("expected Green to carry an explicit value")
	}
}

func TestImportAllAndNamed(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.ImportItemKind
	}{
		{`equip: * origin: "./util.umbral";`, ast.ImportAll},
		{`equip: helper origin: "./util.umbral";`, ast.ImportOne},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := testParser(tt.input)
			prog, err := p.ParseProgram()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			decl, ok := prog.Statements[0].(*ast.ImportDecl)
			if !ok {
				t.Fatalf("statement is %T, want *ast.ImportDecl", prog.Statements[0])
			}
			if decl.Items[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", decl.Items[0].Kind, tt.kind)
			}
			if decl.Path != "./util.umbral" {
				t.Errorf("path = %q, want ./util.umbral", decl.Path)
			}
		})
	}
}

func TestAssignmentToProperty(t *testing.T) {
	p := testParser(`th.name = "x";`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prog.Statements[0].(*ast.Assignment); !ok {
		t.Fatalf("statement is %T, want *ast.Assignment", prog.Statements[0])
	}
}

// TestAssignmentToIndexIsAParseError covers spec §4.2: assignment only
// accepts an identifier or a property access on the left; `xs[0] = v;` has
// no assignment-target form and must abort parsing like any other invalid
// target.
func TestAssignmentToIndexIsAParseError(t *testing.T) {
	p := testParser(`items[0] = 1;`)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a parse error for index-assignment target")
	}
}

func TestFirstErrorAborts(t *testing.T) {
	p := testParser(`v: x = ;`)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("error is %T, want *Error", err)
	}
}

func TestAwaitAndAsyncFn(t *testing.T) {
	p := testParser(`
asy: f: fetch() -> Text {
  r: await doCall();
}`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := prog.Statements[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FnDecl", prog.Statements[0])
	}
	if !fn.Async {
		t.Error("expected fetch() to be async")
	}
	ret := fn.Body[0].(*ast.ReturnStmt)
	if _, ok := ret.Value.(*ast.AwaitExpr); !ok {
		t.Fatalf("return value is %T, want *ast.AwaitExpr", ret.Value)
	}
}

func TestObjectAndArrayLiterals(t *testing.T) {
	p := testParser(`v: x = [ a => 1, b => 2 ];`)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := prog.Statements[0].(*ast.VarDecl)
	obj, ok := decl.Init.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("init is %T, want *ast.ObjectLiteral", decl.Init)
	}
	if len(obj.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(obj.Entries))
	}

	p2 := testParser(`v: y = {1, 2, 3};`)
	prog2, err := p2.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl2 := prog2.Statements[0].(*ast.VarDecl)
	arr, ok := decl2.Init.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("init is %T, want *ast.ArrayLiteral", decl2.Init)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr.Elements))
	}
}
