package interp

import "github.com/hersac/umbral/internal/ast"

// ClassInfo is the runtime description of a declared class: its own
// properties/methods plus a resolved parent chain for inheritance lookup.
type ClassInfo struct {
	Name       string
	Parents    []*ClassInfo
	Implements []string
	Properties []ast.Prop
	Methods    map[string]*ast.Method
	Env        *Environment // closure environment the class was declared in
}

// FindMethod searches this class then its parents, depth-first, matching
// the original's method-resolution order for single/multiple inheritance.
func (c *ClassInfo) FindMethod(name string) (*ast.Method, *ClassInfo) {
	if m, ok := c.Methods[name]; ok {
		return m, c
	}
	for _, p := range c.Parents {
		if m, owner := p.FindMethod(name); m != nil {
			return m, owner
		}
	}
	return nil, nil
}

// AllProperties collects this class's and every ancestor's property
// declarations, parents first so a subclass's own declaration of the same
// name takes precedence when fields are initialised.
func (c *ClassInfo) AllProperties() []ast.Prop {
	var props []ast.Prop
	for _, p := range c.Parents {
		props = append(props, p.AllProperties()...)
	}
	props = append(props, c.Properties...)
	return props
}

// ImplementsInterface reports whether this class (or an ancestor) declares the
// named interface.
func (c *ClassInfo) ImplementsInterface(name string) bool {
	for _, i := range c.Implements {
		if i == name {
			return true
		}
	}
	for _, p := range c.Parents {
		if p.ImplementsInterface(name) {
			return true
		}
	}
	return false
}

// InterfaceInfo is the runtime description of a declared interface. It is
// registered and projected through imports; classes naming it in `imp:` are
// not checked against its methods.
type InterfaceInfo struct {
	Name    string
	Methods []ast.Method
}

// EnumInfo is the runtime description of a declared enum, with precomputed
// ordinal values (spec's implicit-increment rule: an unset variant's value
// is its predecessor's value plus one, starting at 0).
type EnumInfo struct {
	Name     string
	Variants map[string]*EnumValue
	Order    []string
}

// Registry holds every class/interface/enum declared by a program or one of
// its imported modules.
type Registry struct {
	Classes    map[string]*ClassInfo
	Interfaces map[string]*InterfaceInfo
	Enums      map[string]*EnumInfo
}

func NewRegistry() *Registry {
	return &Registry{
		Classes:    make(map[string]*ClassInfo),
		Interfaces: make(map[string]*InterfaceInfo),
		Enums:      make(map[string]*EnumInfo),
	}
}
