package interp

import "github.com/hersac/umbral/internal/ast"

// declareClass registers a class declaration into the registry. Method
// bodies keep closing over env (the scope the class was declared in), not
// over the class itself, matching how FnDecl closures work (spec §4.3
// "Function calls").
func (i *Interpreter) declareClass(d *ast.ClassDecl, env *Environment) {
	class := &ClassInfo{
		Name:       d.Name,
		Implements: d.Implements,
		Properties: d.Properties,
		Methods:    make(map[string]*ast.Method, len(d.Methods)),
		Env:        env,
	}
	for idx := range d.Methods {
		m := d.Methods[idx]
		class.Methods[m.Name] = &m
	}
	for _, parentName := range d.Extends {
		parent, ok := i.Registry.Classes[parentName]
		if !ok {
			i.Diag.Runtimef(d.Position, "class %q extends unknown base %q", d.Name, parentName)
			continue
		}
		class.Parents = append(class.Parents, parent)
	}
	i.Registry.Classes[d.Name] = class
	if d.Exported {
		i.Exports[d.Name] = true
	}
}

func (i *Interpreter) declareInterface(d *ast.InterfaceDecl, env *Environment) {
	i.Registry.Interfaces[d.Name] = &InterfaceInfo{Name: d.Name, Methods: d.Methods}
	if d.Exported {
		i.Exports[d.Name] = true
	}
}

// declareEnum registers an enum, computing each variant's ordinal: an
// explicit initialiser sets the running counter, otherwise it is the
// previous variant's ordinal plus one, starting at 0 (spec §9).
func (i *Interpreter) declareEnum(d *ast.EnumDecl, env *Environment) {
	info := &EnumInfo{Name: d.Name, Variants: make(map[string]*EnumValue, len(d.Variants))}
	var ordinal int64
	for _, v := range d.Variants {
		var ordVal Value = &IntegerValue{Value: ordinal}
		if v.Value != nil {
			val := i.eval(v.Value, env)
			if i.sig.Active() {
				i.sig.Clear()
			} else {
				ordVal = val
				if iv, ok := val.(*IntegerValue); ok {
					ordinal = iv.Value
				}
			}
		}
		ev := &EnumValue{EnumName: d.Name, Variant: v.Name, Ordinal: ordVal}
		info.Variants[v.Name] = ev
		info.Order = append(info.Order, v.Name)
		ordinal++
	}
	i.Registry.Enums[d.Name] = info
	if d.Exported {
		i.Exports[d.Name] = true
	}
}
