package interp

import (
	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/token"
)

// eval evaluates a single expression in env. A sig check is expected of
// every caller immediately after: once a return/throw signal is active the
// returned Value is meaningless and must not be used.
func (i *Interpreter) eval(expr ast.Expression, env *Environment) Value {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &IntegerValue{Value: e.Value}
	case *ast.FloatLiteral:
		return &FloatValue{Value: e.Value}
	case *ast.StringLiteral:
		return i.evalStringLiteral(e, env)
	case *ast.BoolLiteral:
		return &BoolValue{Value: e.Value}
	case *ast.NullLiteral:
		return Null
	case *ast.ThisExpr:
		if v, ok := env.Get("th"); ok {
			return v
		}
		i.Diag.Runtimef(e.Position, "'th' used outside a method")
		return Null
	case *ast.Ident:
		if v, ok := env.Get(e.Name); ok {
			return cloneForRead(v)
		}
		i.Diag.Runtimef(e.Position, "undefined name %q", e.Name)
		return Null
	case *ast.GroupedExpr:
		return i.eval(e.Inner, env)
	case *ast.UnaryExpr:
		return i.evalUnary(e, env)
	case *ast.BinaryExpr:
		return i.evalBinary(e, env)
	case *ast.IncDecExpr:
		return i.evalIncDec(e, env)
	case *ast.AwaitExpr:
		return i.evalAwait(e, env)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(e, env)
	case *ast.ObjectLiteral:
		return i.evalObjectLiteral(e, env)
	case *ast.InstantiateExpr:
		return i.evalInstantiate(e, env)
	case *ast.PropertyExpr:
		return i.evalProperty(e, env)
	case *ast.IndexExpr:
		return i.evalIndex(e, env)
	case *ast.CallExpr:
		return i.evalCall(e, env)
	default:
		return Null
	}
}

func (i *Interpreter) evalArgs(exprs []ast.Expression, env *Environment) []Value {
	args := make([]Value, 0, len(exprs))
	for _, e := range exprs {
		v := i.eval(e, env)
		if i.sig.Active() {
			return args
		}
		args = append(args, v)
	}
	return args
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr, env *Environment) Value {
	switch e.Op {
	case token.NOT:
		v := i.eval(e.Operand, env)
		if i.sig.Active() {
			return Null
		}
		return &BoolValue{Value: !truthy(v)}
	case token.MINUS:
		v := i.eval(e.Operand, env)
		if i.sig.Active() {
			return Null
		}
		switch t := v.(type) {
		case *IntegerValue:
			return &IntegerValue{Value: -t.Value}
		case *FloatValue:
			return &FloatValue{Value: -t.Value}
		default:
			i.Diag.Runtimef(e.Position, "unary '-' requires a numeric operand, got %s", typeNameOf(v))
			return Null
		}
	case token.DOTDOT:
		// Valid only as a direct element of an array literal (handled in
		// evalArrayLiteral); reaching here means it was misplaced.
		i.Diag.Runtimef(e.Position, "spread '..' may only appear inside an array literal")
		return Null
	default:
		i.Diag.Runtimef(e.Position, "unsupported unary operator")
		return Null
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpr, env *Environment) Value {
	if e.Op == token.AND {
		l := i.eval(e.Left, env)
		if i.sig.Active() {
			return Null
		}
		if !truthy(l) {
			return &BoolValue{Value: false}
		}
		r := i.eval(e.Right, env)
		if i.sig.Active() {
			return Null
		}
		return &BoolValue{Value: truthy(r)}
	}
	if e.Op == token.OR {
		l := i.eval(e.Left, env)
		if i.sig.Active() {
			return Null
		}
		if truthy(l) {
			return &BoolValue{Value: true}
		}
		r := i.eval(e.Right, env)
		if i.sig.Active() {
			return Null
		}
		return &BoolValue{Value: truthy(r)}
	}

	l := i.eval(e.Left, env)
	if i.sig.Active() {
		return Null
	}
	r := i.eval(e.Right, env)
	if i.sig.Active() {
		return Null
	}
	return i.applyBinary(e.Op, l, r, e.Position)
}

func (i *Interpreter) applyBinary(op token.Kind, l, r Value, pos token.Position) Value {
	switch op {
	case token.PLUS:
		if lt, ok := l.(*TextValue); ok {
			if rt, ok := r.(*TextValue); ok {
				return &TextValue{Value: lt.Value + rt.Value}
			}
		}
		if ll, ok := l.(*ListValue); ok {
			if rl, ok := r.(*ListValue); ok {
				merged := make([]Value, 0, len(ll.Elements)+len(rl.Elements))
				merged = append(merged, ll.Elements...)
				merged = append(merged, rl.Elements...)
				return &ListValue{Elements: merged}
			}
		}
		return i.numericBinary(op, l, r, pos)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return i.numericBinary(op, l, r, pos)
	case token.EQ:
		return &BoolValue{Value: valuesEqual(l, r)}
	case token.NEQ:
		return &BoolValue{Value: !valuesEqual(l, r)}
	case token.LT, token.LE, token.GT, token.GE:
		return i.compareBinary(op, l, r, pos)
	default:
		i.Diag.Runtimef(pos, "unsupported binary operator %s", op)
		return Null
	}
}

func (i *Interpreter) numericBinary(op token.Kind, l, r Value, pos token.Position) Value {
	li, lIsInt := l.(*IntegerValue)
	lf, lIsFloat := l.(*FloatValue)
	ri, rIsInt := r.(*IntegerValue)
	rf, rIsFloat := r.(*FloatValue)

	if !(lIsInt || lIsFloat) || !(rIsInt || rIsFloat) {
		i.Diag.Runtimef(pos, "operator %s requires numeric operands, got %s and %s", op, typeNameOf(l), typeNameOf(r))
		return Null
	}

	if op == token.PERCENT {
		if !lIsInt || !rIsInt {
			i.Diag.Runtimef(pos, "'%%' requires Integer operands")
			return Null
		}
		if ri.Value == 0 {
			i.Diag.Runtimef(pos, "modulo by zero")
			return Null
		}
		return &IntegerValue{Value: li.Value % ri.Value}
	}

	if lIsInt && rIsInt {
		switch op {
		case token.PLUS:
			return &IntegerValue{Value: li.Value + ri.Value}
		case token.MINUS:
			return &IntegerValue{Value: li.Value - ri.Value}
		case token.STAR:
			return &IntegerValue{Value: li.Value * ri.Value}
		case token.SLASH:
			if ri.Value == 0 {
				i.Diag.Runtimef(pos, "division by zero")
				return Null
			}
			return &IntegerValue{Value: li.Value / ri.Value}
		}
	}

	lv, rv := asFloat(lIsInt, li, lf), asFloat(rIsInt, ri, rf)
	switch op {
	case token.PLUS:
		return &FloatValue{Value: lv + rv}
	case token.MINUS:
		return &FloatValue{Value: lv - rv}
	case token.STAR:
		return &FloatValue{Value: lv * rv}
	case token.SLASH:
		if rv == 0 {
			i.Diag.Runtimef(pos, "division by zero")
			return Null
		}
		return &FloatValue{Value: lv / rv}
	}
	return Null
}

func asFloat(isInt bool, iv *IntegerValue, fv *FloatValue) float64 {
	if isInt {
		return float64(iv.Value)
	}
	return fv.Value
}

func (i *Interpreter) compareBinary(op token.Kind, l, r Value, pos token.Position) Value {
	lv, lok := numericOf(l)
	rv, rok := numericOf(r)
	if !lok || !rok {
		i.Diag.Runtimef(pos, "comparison requires numeric operands, got %s and %s", typeNameOf(l), typeNameOf(r))
		return Null
	}
	switch op {
	case token.LT:
		return &BoolValue{Value: lv < rv}
	case token.LE:
		return &BoolValue{Value: lv <= rv}
	case token.GT:
		return &BoolValue{Value: lv > rv}
	case token.GE:
		return &BoolValue{Value: lv >= rv}
	}
	return Null
}

func numericOf(v Value) (float64, bool) {
	switch t := v.(type) {
	case *IntegerValue:
		return float64(t.Value), true
	case *FloatValue:
		return t.Value, true
	}
	return 0, false
}

// valuesEqual is structural on scalars/List/Dict, reference-identity on
// Instance/Promise, and epsilon-tolerant on floats (spec §4.3).
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *IntegerValue:
		switch bv := b.(type) {
		case *IntegerValue:
			return av.Value == bv.Value
		case *FloatValue:
			return floatEq(float64(av.Value), bv.Value)
		}
		return false
	case *FloatValue:
		switch bv := b.(type) {
		case *IntegerValue:
			return floatEq(av.Value, float64(bv.Value))
		case *FloatValue:
			return floatEq(av.Value, bv.Value)
		}
		return false
	case *TextValue:
		bv, ok := b.(*TextValue)
		return ok && av.Value == bv.Value
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Value == bv.Value
	case *NullValue:
		_, ok := b.(*NullValue)
		return ok
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for idx := range av.Elements {
			if !valuesEqual(av.Elements[idx], bv.Elements[idx]) {
				return false
			}
		}
		return true
	case *DictValue:
		bv, ok := b.(*DictValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			v1, _ := av.Get(k)
			v2, ok2 := bv.Get(k)
			if !ok2 || !valuesEqual(v1, v2) {
				return false
			}
		}
		return true
	case *InstanceValue:
		bv, ok := b.(*InstanceValue)
		return ok && av.Data == bv.Data
	case *PromiseValue:
		bv, ok := b.(*PromiseValue)
		return ok && av == bv
	case *EnumValue:
		bv, ok := b.(*EnumValue)
		return ok && av.EnumName == bv.EnumName && av.Variant == bv.Variant
	default:
		return false
	}
}

func floatEq(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func (i *Interpreter) evalIncDec(e *ast.IncDecExpr, env *Environment) Value {
	cur, ok := env.Get(e.Target.Name)
	if !ok {
		i.Diag.Runtimef(e.Position, "undefined name %q", e.Target.Name)
		return Null
	}
	delta := int64(1)
	fdelta := 1.0
	if e.Op == token.DEC {
		delta, fdelta = -1, -1
	}
	switch t := cur.(type) {
	case *IntegerValue:
		nv := &IntegerValue{Value: t.Value + delta}
		_ = env.Assign(e.Target.Name, nv)
		return nv
	case *FloatValue:
		nv := &FloatValue{Value: t.Value + fdelta}
		_ = env.Assign(e.Target.Name, nv)
		return nv
	default:
		i.Diag.Runtimef(e.Position, "'++'/'--' require a numeric operand, got %s", typeNameOf(cur))
		return Null
	}
}

func (i *Interpreter) evalAwait(e *ast.AwaitExpr, env *Environment) Value {
	v := i.eval(e.Inner, env)
	if i.sig.Active() {
		return Null
	}
	p, ok := v.(*PromiseValue)
	if !ok {
		return v
	}
	result, err := p.Await()
	if err != nil {
		i.Diag.Runtimef(e.Position, "async task failed: %s", err.Error())
		return Null
	}
	return result
}

func (i *Interpreter) evalArrayLiteral(e *ast.ArrayLiteral, env *Environment) Value {
	var elems []Value
	for _, el := range e.Elements {
		if u, ok := el.(*ast.UnaryExpr); ok && u.Op == token.DOTDOT {
			v := i.eval(u.Operand, env)
			if i.sig.Active() {
				return Null
			}
			if lst, ok := v.(*ListValue); ok {
				elems = append(elems, lst.Elements...)
				continue
			}
			i.Diag.Runtimef(u.Position, "spread '..' requires a List, got %s", typeNameOf(v))
			continue
		}
		v := i.eval(el, env)
		if i.sig.Active() {
			return Null
		}
		elems = append(elems, v)
	}
	return &ListValue{Elements: elems}
}

func (i *Interpreter) evalObjectLiteral(e *ast.ObjectLiteral, env *Environment) Value {
	d := NewDict()
	for _, entry := range e.Entries {
		v := i.eval(entry.Value, env)
		if i.sig.Active() {
			return Null
		}
		d.Set(entry.Key, v)
	}
	return d
}

func (i *Interpreter) evalProperty(e *ast.PropertyExpr, env *Environment) Value {
	if identObj, ok := e.Object.(*ast.Ident); ok {
		if enumInfo, ok := i.Registry.Enums[identObj.Name]; ok {
			if ev, ok := enumInfo.Variants[e.Name]; ok {
				return ev
			}
			i.Diag.Runtimef(e.Position, "enum %q has no variant %q", identObj.Name, e.Name)
			return Null
		}
	}

	obj := i.eval(e.Object, env)
	if i.sig.Active() {
		return Null
	}
	switch o := obj.(type) {
	case *InstanceValue:
		if v, ok := o.Data.Get(e.Name); ok {
			return v
		}
		if method, owner := o.Data.Class.FindMethod(e.Name); method != nil {
			return &FunctionValue{Name: method.Name, Params: method.Params, Body: method.Body, Env: owner.Env, Async: method.Async, This: o, ClassOf: owner.Name}
		}
		i.Diag.Runtimef(e.Position, "%s has no property %q", o.Data.Class.Name, e.Name)
		return Null
	case *DictValue:
		if v, ok := o.Get(e.Name); ok {
			return v
		}
		i.Diag.Runtimef(e.Position, "Dict has no key %q", e.Name)
		return Null
	case *ListValue:
		if e.Name == "length" {
			return &IntegerValue{Value: int64(len(o.Elements))}
		}
		i.Diag.Runtimef(e.Position, "List has no property %q", e.Name)
		return Null
	default:
		i.Diag.Runtimef(e.Position, "cannot access property %q on a %s value", e.Name, typeNameOf(obj))
		return Null
	}
}

func (i *Interpreter) evalIndex(e *ast.IndexExpr, env *Environment) Value {
	obj := i.eval(e.Object, env)
	if i.sig.Active() {
		return Null
	}
	idx := i.eval(e.Index, env)
	if i.sig.Active() {
		return Null
	}
	switch o := obj.(type) {
	case *ListValue:
		n, ok := idx.(*IntegerValue)
		if !ok || n.Value < 0 || int(n.Value) >= len(o.Elements) {
			i.Diag.Runtimef(e.Position, "list index out of range")
			return Null
		}
		return o.Elements[n.Value]
	case *DictValue:
		key := stringifyForDisplay(idx)
		if v, ok := o.Get(key); ok {
			return v
		}
		i.Diag.Runtimef(e.Position, "Dict has no key %q", key)
		return Null
	default:
		i.Diag.Runtimef(e.Position, "cannot index a %s value", typeNameOf(obj))
		return Null
	}
}

func (i *Interpreter) evalCall(e *ast.CallExpr, env *Environment) Value {
	if prop, ok := e.Callee.(*ast.PropertyExpr); ok {
		return i.evalMethodCall(prop, e.Args, env, e.Position)
	}
	// `tprint(a, b)` prints like the `tprint:` statement unless the name has
	// been bound to something else.
	if id, ok := e.Callee.(*ast.Ident); ok && id.Name == "tprint" && !env.Has("tprint") {
		i.execTPrint(&ast.TPrintStmt{Position: e.Position, Args: e.Args}, env)
		return Null
	}
	callee := i.eval(e.Callee, env)
	if i.sig.Active() {
		return Null
	}
	args := i.evalArgs(e.Args, env)
	if i.sig.Active() {
		return Null
	}
	return i.callValue(callee, args, e.Position)
}

// Call invokes any callable Value (user function or native function) from
// native Go code — the entry point stdlib higher-order functions (map,
// filter, reduce, sort) use to run a callback argument.
func (i *Interpreter) Call(v Value, args []Value) Value {
	return i.callValue(v, args, token.Position{})
}

func (i *Interpreter) callValue(v Value, args []Value, pos token.Position) Value {
	switch fn := v.(type) {
	case *FunctionValue:
		if fn.Async {
			return i.spawnAsync(fn, args)
		}
		return i.callFunction(fn, args)
	case *NativeFunctionValue:
		return i.callNative(fn, args, pos)
	default:
		i.Diag.Runtimef(pos, "value of type %s is not callable", typeNameOf(v))
		return Null
	}
}

func (i *Interpreter) callFunction(fn *FunctionValue, args []Value) Value {
	callEnv := NewEnclosedEnvironment(fn.Env)
	if fn.This != nil {
		callEnv.Define("th", fn.This, false)
	}
	for idx, p := range fn.Params {
		v := Value(Null)
		if idx < len(args) {
			v = args[idx]
		}
		callEnv.Define(p.Name, v, false)
	}
	i.execStmts(fn.Body, callEnv)
	if i.sig.Kind == SigReturn {
		v := i.sig.Value
		i.sig.Clear()
		return v
	}
	return Null
}

func (i *Interpreter) callNative(fn *NativeFunctionValue, args []Value, pos token.Position) Value {
	v, err := fn.Fn(i, args)
	if err != nil {
		i.Diag.Runtimef(pos, "%s", err.Error())
		return Null
	}
	if v == nil {
		return Null
	}
	return v
}

func (i *Interpreter) evalMethodCall(prop *ast.PropertyExpr, argExprs []ast.Expression, env *Environment, pos token.Position) Value {
	obj := i.eval(prop.Object, env)
	if i.sig.Active() {
		return Null
	}
	args := i.evalArgs(argExprs, env)
	if i.sig.Active() {
		return Null
	}
	switch o := obj.(type) {
	case *ListValue:
		switch prop.Name {
		case "push":
			n := o.Clone()
			n.Elements = append(n.Elements, args...)
			return n
		case "pop":
			n := o.Clone()
			if len(n.Elements) > 0 {
				n.Elements = n.Elements[:len(n.Elements)-1]
			}
			return n
		case "len":
			return &IntegerValue{Value: int64(len(o.Elements))}
		default:
			i.Diag.Runtimef(pos, "List has no method %q", prop.Name)
			return Null
		}
	case *DictValue:
		target, ok := o.Get(prop.Name)
		if !ok {
			i.Diag.Runtimef(pos, "Dict has no key %q", prop.Name)
			return Null
		}
		return i.callValue(target, args, pos)
	case *InstanceValue:
		method, owner := o.Data.Class.FindMethod(prop.Name)
		if method == nil {
			i.Diag.Runtimef(pos, "%s has no method %q", o.Data.Class.Name, prop.Name)
			return Null
		}
		return i.invokeMethod(method, owner, o, args)
	default:
		i.Diag.Runtimef(pos, "cannot call method %q on a %s value", prop.Name, typeNameOf(obj))
		return Null
	}
}

// invokeMethod runs a resolved method body with `th` bound to inst. Async
// methods are wrapped into a FunctionValue and handed to the scheduler
// (async.go), matching the plain-function async path.
func (i *Interpreter) invokeMethod(method *ast.Method, owner *ClassInfo, inst *InstanceValue, args []Value) Value {
	if method.Async {
		fn := &FunctionValue{Name: method.Name, Params: method.Params, Body: method.Body, Env: owner.Env, Async: true, This: inst, ClassOf: owner.Name}
		return i.spawnAsync(fn, args)
	}
	callEnv := NewEnclosedEnvironment(owner.Env)
	callEnv.Define("th", inst, false)
	for idx, p := range method.Params {
		v := Value(Null)
		if idx < len(args) {
			v = args[idx]
		}
		callEnv.Define(p.Name, v, false)
	}
	i.execStmts(method.Body, callEnv)
	if i.sig.Kind == SigReturn {
		v := i.sig.Value
		i.sig.Clear()
		return v
	}
	return Null
}

func (i *Interpreter) evalInstantiate(e *ast.InstantiateExpr, env *Environment) Value {
	args := i.evalArgs(e.Args, env)
	if i.sig.Active() {
		return Null
	}

	if v, ok := env.Get(e.Type); ok {
		return i.callValue(v, args, e.Position)
	}

	class, ok := i.Registry.Classes[e.Type]
	if !ok {
		i.Diag.Runtimef(e.Position, "unknown type %q", e.Type)
		return Null
	}
	inst := NewInstance(class)
	for _, prop := range class.AllProperties() {
		val := Value(Null)
		if prop.Initial != nil {
			tmpEnv := NewEnclosedEnvironment(class.Env)
			tmpEnv.Define("th", inst, false)
			val = i.eval(prop.Initial, tmpEnv)
			if i.sig.Active() {
				i.sig.Clear()
				val = Null
			}
		}
		inst.Data.Set(prop.Name, val)
	}
	if ctor, ok := class.Methods[class.Name]; ok {
		i.invokeMethod(ctor, class, inst, args)
		if i.sig.Kind == SigThrow {
			return Null
		}
	}
	return inst
}
