package stdlib

import (
	"bytes"
	"testing"

	"github.com/hersac/umbral/internal/diag"
	"github.com/hersac/umbral/internal/interp"
	"github.com/hersac/umbral/internal/lexer"
	"github.com/hersac/umbral/internal/parser"
)

// newTestInterp builds an Interpreter with Std/Error registered, exactly as
// pkg/umbral.New does through the StdlibInit hook — calling Init directly
// since these test files live in the same package.
func newTestInterp(out *bytes.Buffer) *interp.Interpreter {
	rep := diag.NewReporter(out, false)
	ip := interp.New(".", out, rep)
	Init(ip.Global, ip.Registry)
	return ip
}

// runSource lexes, parses, and runs source against a fresh test
// Interpreter, returning everything tprint wrote to stdout.
func runSource(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	ip := newTestInterp(&out)
	prog, err := parser.New(lexer.New(source), source).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := ip.Run(prog); err != nil {
		t.Fatalf("uncaught exception: %v", err)
	}
	return out.String()
}
