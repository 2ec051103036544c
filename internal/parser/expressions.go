package parser

import (
	"strconv"
	"strings"

	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/token"
)

func (p *Parser) curIsIdent(text string) bool {
	return p.cur().Kind == token.IDENT && p.cur().Text == text
}

// parseExpression is the Pratt-parser entry point: parse a prefix
// expression, then fold in infix/postfix operators while their precedence
// exceeds minPrec. Logical && and || short-circuit at evaluation time, not
// here (parsing only builds the tree).
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur().Kind]
	if !ok {
		p.fail("unexpected token " + p.cur().Kind.String() + " in expression")
	}
	left := prefix()

	for minPrec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Kind]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntOrFloat() ast.Expression {
	tok := p.advance()
	if strings.Contains(tok.Text, ".") {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.fail("invalid float literal: " + tok.Text)
		}
		return &ast.FloatLiteral{Position: tok.Pos, Value: f}
	}
	i, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		p.fail("invalid integer literal: " + tok.Text)
	}
	return &ast.IntegerLiteral{Position: tok.Pos, Value: i}
}

func (p *Parser) parseString() ast.Expression {
	tok := p.advance()
	multiline := tok.Kind == token.STRINGML
	raw := tok.Text
	var quoteLen int
	var interpolatable bool
	switch {
	case multiline:
		quoteLen = 3
		interpolatable = true
	case strings.HasPrefix(raw, `"`):
		quoteLen = 1
		interpolatable = true
	default:
		quoteLen = 1
		interpolatable = false
	}
	value := raw
	if len(raw) >= 2*quoteLen {
		value = raw[quoteLen : len(raw)-quoteLen]
	}
	return &ast.StringLiteral{
		Position:       tok.Pos,
		Value:          value,
		Interpolatable: interpolatable,
		Multiline:      multiline,
	}
}

func (p *Parser) parseBool() ast.Expression {
	tok := p.advance()
	return &ast.BoolLiteral{Position: tok.Pos, Value: tok.Kind == token.TRUE}
}

func (p *Parser) parseNull() ast.Expression {
	tok := p.advance()
	return &ast.NullLiteral{Position: tok.Pos}
}

func (p *Parser) parseThis() ast.Expression {
	tok := p.advance()
	return &ast.ThisExpr{Position: tok.Pos}
}

func (p *Parser) parseAwait() ast.Expression {
	tok := p.advance()
	inner := p.parseExpression(UNARY)
	return &ast.AwaitExpr{Position: tok.Pos, Inner: inner}
}

// parseIdentOrCall parses a bare identifier. Whether it denotes a variable
// or a function call is resolved by the postfix '(' infix handler, and
// whether a call's name is a function or a registered class is an
// evaluator-time decision (spec §4.2 tie-break note).
func (p *Parser) parseIdentOrCall() ast.Expression {
	tok := p.advance()
	return &ast.Ident{Position: tok.Pos, Name: tok.Text}
}

// parseTypeNameExpr parses a TypeName appearing in expression position,
// which is always either `Type(args)` instantiation or a bare type-as-value
// reference (used e.g. as an enum qualifier elsewhere in the grammar).
func (p *Parser) parseTypeNameExpr() ast.Expression {
	tok := p.advance()
	if p.curIs(token.LPAREN) {
		args := p.parseArgs()
		return &ast.InstantiateExpr{Position: tok.Pos, Type: tok.Text, Args: args}
	}
	return &ast.Ident{Position: tok.Pos, Name: tok.Text}
}

// parseExplicitInstantiate parses `n: Type(args)`.
func (p *Parser) parseExplicitInstantiate() ast.Expression {
	start := p.advance() // consumes NEW
	typeTok := p.expect(token.TYPENAME)
	args := p.parseArgs()
	return &ast.InstantiateExpr{Position: start.Pos, Type: typeTok.Text, Args: args}
}

func (p *Parser) parseArgs() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseGrouped() ast.Expression {
	start := p.expect(token.LPAREN)
	inner := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return &ast.GroupedExpr{Position: start.Pos, Inner: inner}
}

// parseArrayLiteral parses `{e, e, ...}`, permitting a trailing comma before
// the closing brace per spec §4.2 "Tie-breaks and edge cases".
func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.expect(token.LBRACE)
	var elems []ast.Expression
	for !p.curIs(token.RBRACE) {
		elems = append(elems, p.parseExpression(LOWEST))
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return &ast.ArrayLiteral{Position: start.Pos, Elements: elems}
}

// parseObjectLiteral parses `[ key => value, ... ]`.
func (p *Parser) parseObjectLiteral() ast.Expression {
	start := p.expect(token.LBRACK)
	var entries []ast.ObjectEntry
	for !p.curIs(token.RBRACK) {
		var key string
		switch {
		case p.curIs(token.IDENT) || p.curIs(token.TYPENAME):
			key = p.advance().Text
		case p.curIs(token.STRING):
			raw := p.advance().Text
			key = raw
			if len(raw) >= 2 {
				key = raw[1 : len(raw)-1]
			}
		default:
			p.fail("expected object key, got " + p.cur().Kind.String())
		}
		p.expect(token.FATARROW)
		value := p.parseExpression(LOWEST)
		entries = append(entries, ast.ObjectEntry{Key: key, Value: value})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACK)
	return &ast.ObjectLiteral{Position: start.Pos, Entries: entries}
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpr{Position: tok.Pos, Op: tok.Kind, Operand: operand}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := precedences[tok.Kind]
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Position: tok.Pos, Op: tok.Kind, Left: left, Right: right}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	pos := p.cur().Pos
	args := p.parseArgs()
	return &ast.CallExpr{Position: pos, Callee: callee, Args: args}
}

func (p *Parser) parseProperty(obj ast.Expression) ast.Expression {
	tok := p.expect(token.DOT)
	var name string
	if p.curIs(token.IDENT) || p.curIs(token.TYPENAME) {
		name = p.advance().Text
	} else {
		p.fail("expected property name after '.', got " + p.cur().Kind.String())
	}
	return &ast.PropertyExpr{Position: tok.Pos, Object: obj, Name: name}
}

func (p *Parser) parseIndex(obj ast.Expression) ast.Expression {
	tok := p.expect(token.LBRACK)
	idx := p.parseExpression(LOWEST)
	p.expect(token.RBRACK)
	return &ast.IndexExpr{Position: tok.Pos, Object: obj, Index: idx}
}

func (p *Parser) parsePostIncDec(target ast.Expression) ast.Expression {
	tok := p.advance()
	ident, ok := target.(*ast.Ident)
	if !ok {
		p.fail("'" + tok.Text + "' may only be applied to an identifier")
	}
	return &ast.IncDecExpr{Position: tok.Pos, Op: tok.Kind, Target: ident}
}
