package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/hersac/umbral/internal/diag"
	"github.com/hersac/umbral/internal/lexer"
	"github.com/hersac/umbral/internal/parser"
)

// run lexes, parses, and evaluates source against a fresh Interpreter,
// returning everything tprint wrote to stdout, covering the worked
// scenarios in spec §8.
func run(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	rep := diag.NewReporter(&out, false)
	ip := New(".", &out, rep)

	prog, err := parser.New(lexer.New(source), source).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := ip.Run(prog); err != nil {
		t.Logf("runtime error: %v", err)
	}
	return out.String()
}

// TestEndToEndScenarios covers spec §8's six worked scenarios verbatim.
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"arithmetic", `v: x = 10; v: y = 20; tprint(x + y);`},
		{"constant", `c: PI -> Flo = 3.14; tprint(PI);`},
		{"function", `f: add(a, b) { r: (a + b); } tprint(add(2, 3));`},
		{"class", `cs: Point { pu x; pu y; pu f: Point(ax, ay) { th.x = ax; th.y = ay; } pu f: sum() { r: (th.x + th.y); } } v: p = n: Point(4, 5); tprint(p.sum());`},
		{"loop", `v: xs = {1, 2, 3}; fe: (v: x <= xs) { tprint(x); }`},
		{"interpolation", `v: n = "world"; tprint("hello &n!");`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps.MatchSnapshot(t, tt.name+"_output", run(t, tt.source))
		})
	}
}

// TestValueSemantics covers §8 invariant 3: List/Dict/scalar are
// value-typed, Instance is reference-typed.
func TestValueSemantics(t *testing.T) {
	t.Run("list copy is independent", func(t *testing.T) {
		out := run(t, `v: a = {1, 2, 3}; v: b = a; b = b.push(4); tprint(a.len()); tprint(b.len());`)
		snaps.MatchSnapshot(t, "list_copy_output", out)
	})

	t.Run("instance assignment aliases", func(t *testing.T) {
		out := run(t, `cs: Box { pu v; } v: a = n: Box(); a.v = 1; v: b = a; b.v = 2; tprint(a.v);`)
		snaps.MatchSnapshot(t, "instance_alias_output", out)
	})
}

// TestBoundaryBehaviour covers every boundary case spec §8 enumerates.
func TestBoundaryBehaviour(t *testing.T) {
	t.Run("empty source is a lex error", func(t *testing.T) {
		_, err := parser.New(lexer.New(""), "").ParseProgram()
		if err == nil {
			t.Fatalf("expected a lex/parse error for empty source")
		}
	})

	t.Run("division by zero yields Null and a diagnostic", func(t *testing.T) {
		var out bytes.Buffer
		rep := diag.NewReporter(&out, false)
		ip := New(".", &out, rep)
		prog, err := parser.New(lexer.New(`v: x = 1 / 0; tprint(x);`), "").ParseProgram()
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		if err := ip.Run(prog); err != nil {
			t.Fatalf("unexpected uncaught exception: %v", err)
		}
		snaps.MatchSnapshot(t, "division_by_zero_output", out.String())
	})

	t.Run("out-of-range index yields Null", func(t *testing.T) {
		out := run(t, `v: xs = {1, 2}; tprint(xs[5]);`)
		snaps.MatchSnapshot(t, "out_of_range_index_output", out)
	})

	t.Run("method call on Null yields Null and a diagnostic", func(t *testing.T) {
		out := run(t, `v: x = null; tprint(x.length());`)
		snaps.MatchSnapshot(t, "method_on_null_output", out)
	})

	t.Run("assigning to an undeclared name does not create a binding", func(t *testing.T) {
		out := run(t, `undeclared = 5; tprint(undeclared);`)
		snaps.MatchSnapshot(t, "undeclared_assignment_output", out)
	})
}

// TestAwaitSynchronousEquivalence covers §8 invariant 5.
func TestAwaitSynchronousEquivalence(t *testing.T) {
	asyncOut := run(t, `asy: f: double(n) { r: (n * 2); } v: p = double(21); tprint(await p);`)
	syncOut := run(t, `f: double(n) { r: (n * 2); } tprint(double(21));`)
	if asyncOut != syncOut {
		t.Errorf("await(async_fn(args)) = %q, want %q (synchronous equivalent)", asyncOut, syncOut)
	}
}
