package ast

import "github.com/hersac/umbral/internal/token"

// TypeAnnotation is a parsed `-> TypeName` suffix, with any leading `[]`
// dimension markers folded into the textual name (e.g. "[]Integer").
type TypeAnnotation struct {
	Name string
}

// VarDecl is `v: name (-> Type)? = expr;`.
type VarDecl struct {
	Position token.Position
	Name     string
	Type     *TypeAnnotation
	Init     Expression
	Exported bool
}

func (n *VarDecl) Pos() token.Position { return n.Position }
func (n *VarDecl) statementNode()      {}

// ConstDecl is `c: name (-> Type)? = expr;`. Type is nil when no annotation
// is written; no type is inferred from Init.
type ConstDecl struct {
	Position token.Position
	Name     string
	Type     *TypeAnnotation
	Init     Expression
	Exported bool
}

func (n *ConstDecl) Pos() token.Position { return n.Position }
func (n *ConstDecl) statementNode()      {}

// Param is one function/method parameter.
type Param struct {
	Name string
	Type *TypeAnnotation
}

// FnDecl is a top-level function declaration.
type FnDecl struct {
	Position   token.Position
	Name       string
	Params     []Param
	ReturnType *TypeAnnotation
	Body       []Statement
	Exported   bool
	Async      bool
}

func (n *FnDecl) Pos() token.Position { return n.Position }
func (n *FnDecl) statementNode()      {}

// Prop is one class property member.
type Prop struct {
	Name    string
	Type    *TypeAnnotation
	Public  bool
	Initial Expression
}

// Method is one class or interface method member.
type Method struct {
	Name       string
	Params     []Param
	ReturnType *TypeAnnotation
	Body       []Statement // nil for interface method signatures
	Public     bool
	Async      bool
}

// ClassDecl is `cs: Name (extends Base, ...)? (imp: IFace, ...)? { members }`.
type ClassDecl struct {
	Position   token.Position
	Name       string
	Extends    []string
	Implements []string
	Properties []Prop
	Methods    []Method
	Exported   bool
}

func (n *ClassDecl) Pos() token.Position { return n.Position }
func (n *ClassDecl) statementNode()      {}

// InterfaceDecl is `in: Name { pu? f: method(params) -> Type?; ... }`.
type InterfaceDecl struct {
	Position token.Position
	Name     string
	Methods  []Method
	Exported bool
}

func (n *InterfaceDecl) Pos() token.Position { return n.Position }
func (n *InterfaceDecl) statementNode()      {}

// EnumVariant is one `Name` or `Name = expr` entry.
type EnumVariant struct {
	Name  string
	Value Expression // nil when implicit
}

// EnumDecl is `em: Name { variant, variant = expr, ... }`.
type EnumDecl struct {
	Position token.Position
	Name     string
	Variants []EnumVariant
	Exported bool
}

func (n *EnumDecl) Pos() token.Position { return n.Position }
func (n *EnumDecl) statementNode()      {}

// ImportItemKind distinguishes the four projection forms from spec §4.3
// "Module loader / Projection".
type ImportItemKind int

const (
	ImportAll ImportItemKind = iota
	ImportOne
	ImportModule
	ImportList
)

// ImportItem is one entry of an `equip` clause.
type ImportItem struct {
	Kind  ImportItemKind
	Name  string // for ImportOne / ImportModule: the exported/module name
	Alias string // optional alias; "" when absent
	Items []ImportItem
}

// ImportDecl is `equip <items> origin "path";`.
type ImportDecl struct {
	Position token.Position
	Items    []ImportItem
	Path     string
}

func (n *ImportDecl) Pos() token.Position { return n.Position }
func (n *ImportDecl) statementNode()      {}
