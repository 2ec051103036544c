package parser

import (
	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/token"
)

func (p *Parser) parseBlock() []ast.Statement {
	p.expect(token.LBRACE)
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return stmts
}

// parseStatement dispatches on the current token to the declaration or
// control-flow form it introduces, defaulting to an assignment-or-expression
// statement when none match.
func (p *Parser) parseStatement() ast.Statement {
	exported := false
	if p.curIs(token.EXPORT) {
		p.advance()
		exported = true
	}

	switch {
	case p.curIs(token.DECL_VAR):
		return p.parseVarDecl(exported)
	case p.curIs(token.DECL_CONST):
		return p.parseConstDecl(exported)
	case p.curIs(token.ASYNC):
		p.advance()
		return p.parseFnDecl(exported, true)
	case p.curIs(token.DECL_FN):
		return p.parseFnDecl(exported, false)
	case p.curIs(token.DECL_CLASS):
		return p.parseClassDecl(exported)
	case p.curIs(token.DECL_IFACE):
		return p.parseInterfaceDecl(exported)
	case p.curIs(token.DECL_ENUM):
		return p.parseEnumDecl(exported)
	case p.curIs(token.EQUIP):
		return p.parseImportDecl()
	case p.curIs(token.IF):
		return p.parseIfStmt()
	case p.curIs(token.SWITCH):
		return p.parseSwitchStmt()
	case p.curIs(token.FOR):
		return p.parseForStmt()
	case p.curIs(token.FOREACH):
		return p.parseForEachStmt()
	case p.curIs(token.WHILE):
		return p.parseWhileStmt()
	case p.curIs(token.DOWHILE):
		return p.parseDoWhileStmt()
	case p.curIs(token.TRY) || (p.curIsIdent("tc") && p.peek(1).Kind == token.LBRACE):
		return p.parseTryCatchStmt()
	case p.curIs(token.THROW):
		return p.parseThrowStmt()
	case p.curIs(token.RETURN):
		return p.parseReturnStmt()
	case p.curIs(token.TPRINT):
		return p.parseTPrintStmt()
	case p.curIs(token.LBRACE):
		start := p.cur().Pos
		return &ast.BlockStmt{Position: start, Body: p.parseBlock()}
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.advance() // IF
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	then := p.parseBlock()

	stmt := &ast.IfStmt{Position: start.Pos, Cond: cond, Then: then}
	for p.curIs(token.ELSEIF) {
		p.advance()
		p.expect(token.LPAREN)
		ec := p.parseExpression(LOWEST)
		p.expect(token.RPAREN)
		eb := p.parseBlock()
		stmt.Elifs = append(stmt.Elifs, ast.ElifClause{Cond: ec, Body: eb})
	}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

// parseSwitchStmt parses `sw: (scrutinee) { ca: expr => stmt; ... (def: => stmt;)? }`.
func (p *Parser) parseSwitchStmt() *ast.SwitchStmt {
	start := p.advance() // SWITCH
	p.expect(token.LPAREN)
	scrutinee := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)

	stmt := &ast.SwitchStmt{Position: start.Pos, Scrutinee: scrutinee}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.DEFAULT) {
			p.advance()
			p.expect(token.FATARROW)
			stmt.Default = p.parseStatement()
			continue
		}
		p.expect(token.CASE)
		val := p.parseExpression(LOWEST)
		p.expect(token.FATARROW)
		body := p.parseStatement()
		stmt.Cases = append(stmt.Cases, ast.SwitchCase{Value: val, Body: body})
	}
	p.expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.advance() // FOR
	p.expect(token.LPAREN)

	var init ast.Statement
	if !p.curIs(token.SEMI) {
		init = p.parseSimpleStmt()
	} else {
		p.advance()
	}

	var cond ast.Expression
	if !p.curIs(token.SEMI) {
		cond = p.parseExpression(LOWEST)
	}
	p.expect(token.SEMI)

	var step ast.Statement
	if !p.curIs(token.RPAREN) {
		step = p.parseSimpleStmtNoSemi()
	}
	p.expect(token.RPAREN)

	body := p.parseBlock()
	return &ast.ForStmt{Position: start.Pos, Init: init, Cond: cond, Step: step, Body: body}
}

// parseForEachStmt parses `fe: (v: name (-> Type)? <= iterable) { body }`.
func (p *Parser) parseForEachStmt() *ast.ForEachStmt {
	start := p.advance() // FOREACH
	p.expect(token.LPAREN)
	p.expect(token.DECL_VAR)
	name := p.expect(token.IDENT).Text
	typ := p.parseTypeAnnotation()
	p.expect(token.LE)
	iterable := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.ForEachStmt{Position: start.Pos, VarName: name, Type: typ, Iterable: iterable, Body: body}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.advance() // WHILE
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Position: start.Pos, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStmt() *ast.DoWhileStmt {
	start := p.advance() // DOWHILE
	body := p.parseBlock()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.acceptSemi()
	return &ast.DoWhileStmt{Position: start.Pos, Body: body, Cond: cond}
}

// parseTryCatchStmt parses `tc { try } (cat(Ident (-> TypeName)?) { ... })? (fin { ... })?`.
// "cat" and "fin" are recognised by literal identifier text, matching the
// lexer's decision to leave them outside the contextual short-form set; a
// bare `tc` followed by `{` is accepted the same way, as is `tc:`.
func (p *Parser) parseTryCatchStmt() *ast.TryCatchStmt {
	start := p.advance() // TRY, or the identifier "tc"
	tryBody := p.parseBlock()
	stmt := &ast.TryCatchStmt{Position: start.Pos, Try: tryBody}

	if p.curIsIdent("cat") {
		p.advance()
		p.expect(token.LPAREN)
		varName := p.expect(token.IDENT).Text
		var typeName string
		if typ := p.parseTypeAnnotation(); typ != nil {
			typeName = typ.Name
		}
		p.expect(token.RPAREN)
		body := p.parseBlock()
		stmt.Catch = &ast.CatchClause{VarName: varName, Type: typeName, Body: body}
	}
	if p.curIsIdent("fin") {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseThrowStmt() *ast.ThrowStmt {
	start := p.advance() // THROW
	val := p.parseExpression(LOWEST)
	p.acceptSemi()
	return &ast.ThrowStmt{Position: start.Pos, Value: val}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.advance() // RETURN
	var val ast.Expression
	if !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) {
		val = p.parseExpression(LOWEST)
	}
	p.acceptSemi()
	return &ast.ReturnStmt{Position: start.Pos, Value: val}
}

func (p *Parser) parseTPrintStmt() *ast.TPrintStmt {
	start := p.advance() // TPRINT
	args := p.parseArgs()
	p.acceptSemi()
	return &ast.TPrintStmt{Position: start.Pos, Args: args}
}

// parseSimpleStmt parses an assignment or bare expression statement followed
// by an optional ';'. Used both at top level and inside for-loop headers.
func (p *Parser) parseSimpleStmt() ast.Statement {
	stmt := p.parseSimpleStmtNoSemi()
	p.acceptSemi()
	return stmt
}

func (p *Parser) parseSimpleStmtNoSemi() ast.Statement {
	start := p.cur().Pos
	expr := p.parseExpression(LOWEST)

	if p.curIs(token.ASSIGN) {
		target, ok := expr.(ast.AssignTarget)
		if !ok {
			p.fail("invalid assignment target")
		}
		p.advance()
		value := p.parseExpression(LOWEST)
		return &ast.Assignment{Position: start, Target: target, Value: value}
	}
	return &ast.ExpressionStmt{Position: start, Expr: expr}
}
