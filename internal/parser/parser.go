// Package parser implements the recursive-descent, precedence-climbing
// (Pratt) parser that turns a token stream into an *ast.Program.
//
// Failure semantics follow spec §4.2: the first unexpected or missing token
// raises a parse error that aborts parsing immediately — there is no error
// recovery or synchronisation.
package parser

import (
	"fmt"

	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/lexer"
	"github.com/hersac/umbral/internal/token"
)

// Precedence levels, lowest to highest, per spec §4.2 "Expressions".
const (
	_ int = iota
	LOWEST
	OR_PREC
	AND_PREC
	EQUALITY
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POSTFIX
)

var precedences = map[token.Kind]int{
	token.OR:      OR_PREC,
	token.AND:     AND_PREC,
	token.EQ:      EQUALITY,
	token.NEQ:     EQUALITY,
	token.LT:      RELATIONAL,
	token.LE:      RELATIONAL,
	token.GT:      RELATIONAL,
	token.GE:      RELATIONAL,
	token.PLUS:    ADDITIVE,
	token.MINUS:   ADDITIVE,
	token.STAR:    MULTIPLICATIVE,
	token.SLASH:   MULTIPLICATIVE,
	token.PERCENT: MULTIPLICATIVE,
	token.LPAREN:  POSTFIX,
	token.LBRACK:  POSTFIX,
	token.DOT:     POSTFIX,
	token.INC:     POSTFIX,
	token.DEC:     POSTFIX,
}

// Error is a parse-time diagnostic carrying a message, an offset, and a
// best-effort line/column pair plus the offending source line, per spec
// §4.2's contract. Lex distinguishes the one lex-error case a Parser can
// itself raise (an empty token stream, spec §7's "Lex error" row) from an
// ordinary parse error.
type Error struct {
	Message string
	Pos     token.Position
	Source  string
	Lex     bool
}

func (e *Error) Error() string {
	kind := "parse error"
	if e.Lex {
		kind = "lex error"
	}
	return fmt.Sprintf("%s at %s: %s", kind, e.Pos, e.Message)
}

// abortParse is the internal panic payload used to unwind out of arbitrarily
// nested recursive-descent calls on the first error, matching the "no
// recovery" contract.
type abortParse struct{ err *Error }

// Parser consumes a fully materialised token stream (per spec §3, the
// lexer's output is finite and fully scanned before parsing begins) and
// source text for error context.
type Parser struct {
	tokens []token.Token
	pos    int
	source string

	prefixFns map[token.Kind]func() ast.Expression
	infixFns  map[token.Kind]func(ast.Expression) ast.Expression
}

// New creates a Parser over l's full token stream.
func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{tokens: l.Tokenize(), source: source}
	p.prefixFns = map[token.Kind]func() ast.Expression{
		token.INT:      p.parseIntOrFloat,
		token.STRING:   p.parseString,
		token.STRINGML: p.parseString,
		token.TRUE:     p.parseBool,
		token.FALSE:    p.parseBool,
		token.NULL:     p.parseNull,
		token.THIS:     p.parseThis,
		token.IDENT:    p.parseIdentOrCall,
		token.TYPENAME: p.parseTypeNameExpr,
		token.NEW:      p.parseExplicitInstantiate,
		token.LPAREN:   p.parseGrouped,
		token.LBRACE:   p.parseArrayLiteral,
		token.LBRACK:   p.parseObjectLiteral,
		token.NOT:      p.parseUnary,
		token.MINUS:    p.parseUnary,
		token.DOTDOT:   p.parseUnary,
		token.AWAIT:    p.parseAwait,
	}
	p.infixFns = map[token.Kind]func(ast.Expression) ast.Expression{
		token.PLUS:    p.parseBinary,
		token.MINUS:   p.parseBinary,
		token.STAR:    p.parseBinary,
		token.SLASH:   p.parseBinary,
		token.PERCENT: p.parseBinary,
		token.EQ:      p.parseBinary,
		token.NEQ:     p.parseBinary,
		token.LT:      p.parseBinary,
		token.LE:      p.parseBinary,
		token.GT:      p.parseBinary,
		token.GE:      p.parseBinary,
		token.AND:     p.parseBinary,
		token.OR:      p.parseBinary,
		token.LPAREN:  p.parseCall,
		token.DOT:     p.parseProperty,
		token.LBRACK:  p.parseIndex,
		token.INC:     p.parsePostIncDec,
		token.DEC:     p.parsePostIncDec,
	}
	return p
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) accept(k token.Kind) bool {
	if p.curIs(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind) token.Token {
	if !p.curIs(k) {
		p.fail(fmt.Sprintf("expected %s, got %s (%q)", k, p.cur().Kind, p.cur().Text))
	}
	return p.advance()
}

// acceptSemi consumes an optional trailing ';' per spec's "optional" rule on
// most statement forms.
func (p *Parser) acceptSemi() { p.accept(token.SEMI) }

func (p *Parser) fail(msg string) {
	panic(abortParse{&Error{Message: msg, Pos: p.cur().Pos, Source: p.source}})
}

// failLex raises the one lex-error case a Parser detects itself: an empty
// token stream (spec §7's "Lex error" row), rather than a parse error.
func (p *Parser) failLex(msg string) {
	panic(abortParse{&Error{Message: msg, Pos: p.cur().Pos, Source: p.source, Lex: true}})
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Kind]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream into a Program. On the first
// parse error it returns (nil, *Error); there is no recovery. An empty
// token stream (the source was empty, or held only whitespace/comments) is
// reported as a lex error instead, per spec §7.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ab, ok := r.(abortParse); ok {
				err = ab.err
				return
			}
			panic(r)
		}
	}()

	if len(p.tokens) == 1 && p.tokens[0].Kind == token.EOF {
		p.failLex("empty source")
	}

	prog = &ast.Program{}
	for !p.curIs(token.EOF) {
		prog.Statements = append(prog.Statements, p.parseStatement())
	}
	return prog, nil
}
