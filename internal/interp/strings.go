package interp

import (
	"strings"
	"unicode"

	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/lexer"
	"github.com/hersac/umbral/internal/parser"
	"github.com/hersac/umbral/internal/token"
)

// evalStringLiteral applies, in order, triple-single indentation stripping
// (only for Multiline strings) and then `&`-interpolation (only for
// Interpolatable strings) — stripping must run first so an interpolated
// fragment's own text can't straddle the stripped margin (spec §9).
func (i *Interpreter) evalStringLiteral(e *ast.StringLiteral, env *Environment) Value {
	raw := e.Value
	if e.Multiline {
		raw = stripIndentation(raw)
	}
	if !e.Interpolatable {
		return &TextValue{Value: raw}
	}
	return i.interpolate(raw, env, e.Position)
}

// stripIndentation removes the minimum leading-whitespace count found among
// non-blank lines from every line, per spec §4.3.
func stripIndentation(s string) string {
	lines := strings.Split(s, "\n")
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := 0
		for _, r := range line {
			if r == ' ' || r == '\t' {
				n++
			} else {
				break
			}
		}
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent <= 0 {
		return s
	}
	out := make([]string, len(lines))
	for idx, line := range lines {
		if len(line) >= minIndent {
			out[idx] = line[minIndent:]
		} else {
			out[idx] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(out, "\n")
}

// interpolate scans s for unescaped `&` markers, evaluating each captured
// fragment with a bracket-depth state machine and splicing its
// string-converted result into the output, per spec §4.3.
func (i *Interpreter) interpolate(s string, env *Environment, pos token.Position) Value {
	var sb strings.Builder
	runes := []rune(s)
	idx := 0
	for idx < len(runes) {
		ch := runes[idx]
		if ch == '\\' && idx+1 < len(runes) && runes[idx+1] == '&' {
			sb.WriteRune('&')
			idx += 2
			continue
		}
		if ch != '&' {
			sb.WriteRune(ch)
			idx++
			continue
		}

		j := idx + 1
		depth := 0
	scan:
		for j < len(runes) {
			c := runes[j]
			switch {
			case c == '(' || c == '[':
				depth++
			case c == ')' || c == ']':
				if depth == 0 {
					break scan
				}
				depth--
			case depth == 0 && !isFragmentRune(c):
				break scan
			}
			j++
		}

		fragment := strings.TrimSpace(string(runes[idx+1 : min(j, len(runes))]))
		if fragment == "" {
			sb.WriteRune('&')
			idx++
			continue
		}
		sb.WriteString(i.evalFragment(fragment, env, pos).String())
		idx = j
	}
	return &TextValue{Value: sb.String()}
}

func isFragmentRune(c rune) bool {
	return c == '.' || c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// evalFragment parses and evaluates a restricted expression fragment
// captured from inside a string literal, reusing the full lexer/parser
// pipeline on just that substring.
func (i *Interpreter) evalFragment(fragment string, env *Environment, pos token.Position) Value {
	prog, err := parser.New(lexer.New(fragment+";"), fragment).ParseProgram()
	if err != nil || len(prog.Statements) == 0 {
		i.Diag.Runtimef(pos, "invalid interpolated expression %q", fragment)
		return Null
	}
	exprStmt, ok := prog.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		i.Diag.Runtimef(pos, "invalid interpolated expression %q", fragment)
		return Null
	}
	v := i.eval(exprStmt.Expr, env)
	if i.sig.Active() {
		i.sig.Clear()
		return Null
	}
	return v
}
