package parser

import (
	"strings"

	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/token"
)

// parseTypeAnnotation parses an optional `-> (\[\])*TypeName` suffix,
// folding leading `[]` dimension markers into the annotation's textual name
// (spec §4.2 "Types").
func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	if !p.accept(token.ARROW) {
		return nil
	}
	var dims strings.Builder
	for p.curIs(token.LBRACK) && p.peek(1).Kind == token.RBRACK {
		p.advance()
		p.advance()
		dims.WriteString("[]")
	}
	name := p.expect(token.TYPENAME).Text
	return &ast.TypeAnnotation{Name: dims.String() + name}
}

func (p *Parser) parseVarDecl(exported bool) *ast.VarDecl {
	start := p.advance() // DECL_VAR
	name := p.expect(token.IDENT).Text
	typ := p.parseTypeAnnotation()
	var init ast.Expression
	if p.accept(token.ASSIGN) {
		init = p.parseExpression(LOWEST)
	}
	p.acceptSemi()
	return &ast.VarDecl{Position: start.Pos, Name: name, Type: typ, Init: init, Exported: exported}
}

func (p *Parser) parseConstDecl(exported bool) *ast.ConstDecl {
	start := p.advance() // DECL_CONST
	var name string
	if p.curIs(token.TYPENAME) {
		name = p.advance().Text
	} else {
		name = p.expect(token.IDENT).Text
	}
	typ := p.parseTypeAnnotation()
	p.expect(token.ASSIGN)
	init := p.parseExpression(LOWEST)
	p.acceptSemi()
	return &ast.ConstDecl{Position: start.Pos, Name: name, Type: typ, Init: init, Exported: exported}
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.curIs(token.RPAREN) {
		name := p.expect(token.IDENT).Text
		typ := p.parseTypeAnnotation()
		params = append(params, ast.Param{Name: name, Type: typ})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFnDecl(exported, async bool) *ast.FnDecl {
	start := p.advance() // DECL_FN
	name := p.expect(token.IDENT).Text
	params := p.parseParams()
	ret := p.parseTypeAnnotation()
	body := p.parseBlock()
	return &ast.FnDecl{Position: start.Pos, Name: name, Params: params, ReturnType: ret, Body: body, Exported: exported, Async: async}
}

// parseClassDecl parses `cs: Name (extends Base (, Base)*)? (imp: I (, I)*)? { members }`.
// "extends" is matched by literal identifier text rather than by a
// dedicated token kind, since it falls outside the contextual short-form
// set enumerated for this surface.
func (p *Parser) parseClassDecl(exported bool) *ast.ClassDecl {
	start := p.advance() // DECL_CLASS
	name := p.expect(token.TYPENAME).Text

	decl := &ast.ClassDecl{Position: start.Pos, Name: name, Exported: exported}

	if p.curIsIdent("extends") {
		p.advance()
		decl.Extends = append(decl.Extends, p.expect(token.TYPENAME).Text)
		for p.accept(token.COMMA) {
			decl.Extends = append(decl.Extends, p.expect(token.TYPENAME).Text)
		}
	}
	if p.curIs(token.IMPLEMENTS) {
		p.advance()
		decl.Implements = append(decl.Implements, p.expect(token.TYPENAME).Text)
		for p.accept(token.COMMA) {
			decl.Implements = append(decl.Implements, p.expect(token.TYPENAME).Text)
		}
	}

	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) {
		p.parseClassMember(decl)
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	public := true
	switch {
	case p.curIs(token.PROP_PUB):
		p.advance()
	case p.curIs(token.PROP_PRIV):
		p.advance()
		public = false
	}

	async := false
	if p.curIs(token.ASYNC) {
		p.advance()
		async = true
	}

	if p.curIs(token.DECL_FN) {
		p.advance()
		var name string
		if p.curIs(token.TYPENAME) { // constructor: method named after the class
			name = p.advance().Text
		} else {
			name = p.expect(token.IDENT).Text
		}
		params := p.parseParams()
		ret := p.parseTypeAnnotation()
		body := p.parseBlock()
		decl.Methods = append(decl.Methods, ast.Method{
			Name: name, Params: params, ReturnType: ret, Body: body, Public: public, Async: async,
		})
		return
	}

	// Property: name (-> Type)? (= expr)? ;
	name := p.expect(token.IDENT).Text
	typ := p.parseTypeAnnotation()
	var initial ast.Expression
	if p.accept(token.ASSIGN) {
		initial = p.parseExpression(LOWEST)
	}
	p.acceptSemi()
	decl.Properties = append(decl.Properties, ast.Prop{Name: name, Type: typ, Public: public, Initial: initial})
}

// parseInterfaceDecl parses `in: Name { (pu:)? f: method(params) (-> Type)?; ... }`.
func (p *Parser) parseInterfaceDecl(exported bool) *ast.InterfaceDecl {
	start := p.advance() // DECL_IFACE
	name := p.expect(token.TYPENAME).Text
	decl := &ast.InterfaceDecl{Position: start.Pos, Name: name, Exported: exported}

	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) {
		public := true
		if p.curIs(token.PROP_PUB) {
			p.advance()
		} else if p.curIs(token.PROP_PRIV) {
			p.advance()
			public = false
		}
		async := false
		if p.curIs(token.ASYNC) {
			p.advance()
			async = true
		}
		p.expect(token.DECL_FN)
		mname := p.expect(token.IDENT).Text
		params := p.parseParams()
		ret := p.parseTypeAnnotation()
		p.acceptSemi()
		decl.Methods = append(decl.Methods, ast.Method{
			Name: mname, Params: params, ReturnType: ret, Body: nil, Public: public, Async: async,
		})
	}
	p.expect(token.RBRACE)
	return decl
}

// parseEnumDecl parses `em: Name { Variant (= expr)? (, Variant (= expr)?)* (,)? }`.
func (p *Parser) parseEnumDecl(exported bool) *ast.EnumDecl {
	start := p.advance() // DECL_ENUM
	name := p.expect(token.TYPENAME).Text
	decl := &ast.EnumDecl{Position: start.Pos, Name: name, Exported: exported}

	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) {
		vname := p.expect(token.TYPENAME).Text
		var value ast.Expression
		if p.accept(token.ASSIGN) {
			value = p.parseExpression(LOWEST)
		}
		decl.Variants = append(decl.Variants, ast.EnumVariant{Name: vname, Value: value})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return decl
}

// parseImportItem parses the bracketed/bare item list following `equip`,
// handling all four projection kinds from spec §4.3.
func (p *Parser) parseImportItem() ast.ImportItem {
	switch {
	case p.curIs(token.STAR):
		p.advance()
		return ast.ImportItem{Kind: ast.ImportAll}
	case p.curIs(token.LBRACK):
		p.advance()
		var items []ast.ImportItem
		for !p.curIs(token.RBRACK) {
			items = append(items, p.parseImportItem())
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RBRACK)
		return ast.ImportItem{Kind: ast.ImportList, Items: items}
	default:
		name := p.advance().Text
		item := ast.ImportItem{Kind: ast.ImportOne, Name: name}
		if p.curIs(token.DOT) {
			p.advance()
			item.Kind = ast.ImportModule
		}
		if p.curIs(token.AS) {
			p.advance()
			item.Alias = p.expect(token.IDENT).Text
		}
		return item
	}
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.expect(token.EQUIP)
	var items []ast.ImportItem
	items = append(items, p.parseImportItem())
	for p.accept(token.COMMA) {
		items = append(items, p.parseImportItem())
	}
	p.expect(token.ORIGIN)
	pathTok := p.expect(token.STRING)
	path := pathTok.Text
	if len(path) >= 2 {
		path = path[1 : len(path)-1]
	}
	p.acceptSemi()
	return &ast.ImportDecl{Position: start.Pos, Items: items, Path: path}
}
