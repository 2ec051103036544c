// Package umbral is the public embedding API: construct an interpreter,
// point it at a base directory for module resolution, and run source text
// or a file against it. cmd/umbral is a thin CLI wrapper over this package.
package umbral

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hersac/umbral/internal/diag"
	"github.com/hersac/umbral/internal/interp"
	"github.com/hersac/umbral/internal/lexer"
	"github.com/hersac/umbral/internal/parser"
	"github.com/hersac/umbral/internal/stdlib"
	"github.com/hersac/umbral/internal/token"
)

// Option configures a Machine at construction time.
type Option func(*config)

type config struct {
	stdout io.Writer
	stderr io.Writer
	color  bool
}

// WithStdout sets the writer `tprint` output is sent to. Defaults to
// os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithStderr sets the writer diagnostics are sent to. Defaults to
// os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *config) { c.stderr = w }
}

// WithColor enables ANSI-coloured diagnostic output.
func WithColor(enabled bool) Option {
	return func(c *config) { c.color = enabled }
}

// Machine is one embeddable Umbral program host: a single persistent
// interpreter plus the diagnostic sink it reports through, suitable for
// either one-shot file execution or a REPL's successive Run calls.
type Machine struct {
	interp *interp.Interpreter
	diag   *diag.Reporter
}

// New creates a Machine rooted at baseDir, the directory `equip`/`origin`
// imports are resolved relative to.
func New(baseDir string, opts ...Option) *Machine {
	cfg := &config{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}
	rep := diag.NewReporter(cfg.stderr, cfg.color)
	ip := interp.New(baseDir, cfg.stdout, rep)
	ip.StdlibInit = stdlib.Init
	ip.StdlibInit(ip.Global, ip.Registry)
	return &Machine{interp: ip, diag: rep}
}

// RunFile reads path as UTF-8 source, rebases module resolution to its
// parent directory (spec §6 "CLI ... set the interpreter's base directory
// to the file's parent"), and runs it.
func RunFile(path string, opts ...Option) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	m := New(filepath.Dir(path), opts...)
	return m.Run(string(src), path)
}

// Run lexes, parses, and executes source against this Machine's persistent
// interpreter state, reporting lex/parse errors the same way a runtime
// diagnostic is reported (spec §7's four-kind taxonomy, all routed through
// one Reporter).
func (m *Machine) Run(source, filename string) error {
	m.diag.Source = source
	m.diag.File = filename

	lx := lexer.New(source)
	ps := parser.New(lx, source)
	prog, err := ps.ParseProgram()
	if err != nil {
		pos := token.Position{}
		msg := err.Error()
		if pe, ok := err.(*parser.Error); ok {
			pos = pe.Pos
			if pe.Lex {
				m.diag.Lexf(pos, "%s", pe.Message)
				return err
			}
			m.diag.Parsef(pos, "%s", pe.Message)
			return err
		}
		m.diag.Parsef(pos, "%s", msg)
		return err
	}
	return m.interp.Run(prog)
}

// Reset discards all variable/class/function state, reinstalling the
// standard library fresh, matching the REPL's `:clear` command (spec §6).
func (m *Machine) Reset(baseDir string, opts ...Option) {
	*m = *New(baseDir, opts...)
}
