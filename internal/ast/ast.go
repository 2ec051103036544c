// Package ast defines the typed syntax tree produced by the parser.
//
// Every node is produced only by the parser; once emitted, nodes are cloned
// by the evaluator rather than mutated in place (spec §3 invariant).
package ast

import "github.com/hersac/umbral/internal/token"

// Node is the root interface implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Statement is any top-level or block-level construct.
type Statement interface {
	Node
	statementNode()
}

// Expression is any value-producing construct.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a sequence of statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}

// Ident is a bare identifier reference.
type Ident struct {
	Position token.Position
	Name     string
}

func (i *Ident) Pos() token.Position  { return i.Position }
func (i *Ident) expressionNode()      {}
