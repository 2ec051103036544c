// Package diag formats and emits the four error kinds from spec §7: lex,
// parse, runtime diagnostic, and uncaught language exception. A single
// Diagnostic type and a Reporter write straight to an io.Writer (the host
// error stream) instead of returning formatted strings for the caller to
// print, since spec §7's "Runtime diagnostic" kind is fire-and-forget: it
// prints and execution continues, it is never collected into a batch.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hersac/umbral/internal/token"
)

// Kind is one of the four error kinds from spec §7.
type Kind int

const (
	Lex Kind = iota
	Parse
	Runtime
	Exception
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Runtime:
		return "runtime diagnostic"
	case Exception:
		return "uncaught exception"
	default:
		return "error"
	}
}

// Diagnostic is a single positioned error, formattable with or without
// source context, per spec §6 "offending line + ^ indicator + one line of
// context above and below if available".
type Diagnostic struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     token.Position
}

func New(kind Kind, pos token.Position, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Pos: pos}
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// sourceLine extracts a 1-indexed line from d.Source.
func (d *Diagnostic) sourceLine(n int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Format renders the diagnostic with one line of context above and below,
// matching spec §6's error-output contract. Colour is applied via
// fatih/color when enabled (CLI/REPL decide based on terminal detection).
func (d *Diagnostic) Format(useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s", d.Kind)
	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", strings.ToUpper(header[:1])+header[1:], d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", strings.ToUpper(header[:1])+header[1:], d.Pos.Line, d.Pos.Column)
	}

	bold := color.New(color.Bold)
	red := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	printLine := func(n int, highlight bool) {
		text := d.sourceLine(n)
		if text == "" && n != d.Pos.Line {
			return
		}
		prefix := fmt.Sprintf("%4d | ", n)
		if useColor && highlight {
			bold.Fprint(&sb, prefix+text)
		} else if useColor {
			dim.Fprint(&sb, prefix+text)
		} else {
			sb.WriteString(prefix + text)
		}
		sb.WriteString("\n")
		if highlight {
			sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
			if useColor {
				red.Fprintln(&sb, "^")
			} else {
				sb.WriteString("^\n")
			}
		}
	}

	if d.Source != "" {
		printLine(d.Pos.Line-1, false)
		printLine(d.Pos.Line, true)
		printLine(d.Pos.Line+1, false)
	}

	if useColor {
		bold.Fprint(&sb, d.Message)
	} else {
		sb.WriteString(d.Message)
	}
	return sb.String()
}

// Reporter writes diagnostics line-by-line to the host error stream, per
// spec §6 "Diagnostics are written line-by-line to the host error stream."
type Reporter struct {
	W      io.Writer
	Color  bool
	Source string
	File   string
}

func NewReporter(w io.Writer, useColor bool) *Reporter {
	return &Reporter{W: w, Color: useColor}
}

func (r *Reporter) Report(d *Diagnostic) {
	d.Source = r.Source
	d.File = r.File
	fmt.Fprintln(r.W, d.Format(r.Color))
}

// Runtimef emits a spec §7 "Runtime diagnostic" at pos and returns nothing:
// callers fall back to Null after calling this, per the evaluator's
// "prints to error stream, produces Null, execution continues" rule.
func (r *Reporter) Runtimef(pos token.Position, format string, args ...any) {
	r.Report(New(Runtime, pos, fmt.Sprintf(format, args...)))
}

func (r *Reporter) Parsef(pos token.Position, format string, args ...any) {
	r.Report(New(Parse, pos, fmt.Sprintf(format, args...)))
}

func (r *Reporter) Lexf(pos token.Position, format string, args ...any) {
	r.Report(New(Lex, pos, fmt.Sprintf(format, args...)))
}

func (r *Reporter) Exceptionf(pos token.Position, format string, args ...any) {
	r.Report(New(Exception, pos, fmt.Sprintf(format, args...)))
}
