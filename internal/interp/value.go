// Package interp implements the tree-walking evaluator: runtime values,
// lexical environments, class/interface/enum registries, and the
// expression/statement evaluation that drives program execution.
package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hersac/umbral/internal/ast"
)

// Value is the interface every runtime value implements. List and Dict are
// value-typed (copied on assignment per spec §3); Instance and Promise carry
// reference semantics through a shared pointer to interior state.
type Value interface {
	Type() string
	String() string
}

// IntegerValue is a whole-number value.
type IntegerValue struct{ Value int64 }

func (v *IntegerValue) Type() string   { return "Integer" }
func (v *IntegerValue) String() string { return strconv.FormatInt(v.Value, 10) }

// FloatValue is a floating-point value.
type FloatValue struct{ Value float64 }

func (v *FloatValue) Type() string   { return "Float" }
func (v *FloatValue) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// TextValue is a string value.
type TextValue struct{ Value string }

func (v *TextValue) Type() string   { return "Text" }
func (v *TextValue) String() string { return v.Value }

// BoolValue is a boolean value.
type BoolValue struct{ Value bool }

func (v *BoolValue) Type() string { return "Bool" }
func (v *BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// NullValue is the sole `null` value.
type NullValue struct{}

func (v *NullValue) Type() string   { return "Null" }
func (v *NullValue) String() string { return "null" }

// Null is the shared singleton returned by operations the spec defines as
// "yields Null" (type/arity mismatches, missing keys, etc.) instead of
// raising an exception.
var Null = &NullValue{}

// ListValue is Umbral's array: value-typed, copied on assignment.
type ListValue struct{ Elements []Value }

func (v *ListValue) Type() string { return "List" }
func (v *ListValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = stringifyForDisplay(e)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Clone returns a deep-enough copy for value semantics: the element slice is
// copied, but nested reference values (Instance, Promise) keep sharing their
// underlying state, matching how a class instance stored in a list is still
// an alias of the same object.
func (v *ListValue) Clone() *ListValue {
	elems := make([]Value, len(v.Elements))
	copy(elems, v.Elements)
	return &ListValue{Elements: elems}
}

// DictValue is Umbral's object/map literal value, also value-typed.
type DictValue struct {
	keys   []string
	values map[string]Value
}

func NewDict() *DictValue {
	return &DictValue{values: make(map[string]Value)}
}

func (v *DictValue) Type() string { return "Dict" }
func (v *DictValue) String() string {
	parts := make([]string, 0, len(v.keys))
	for _, k := range v.keys {
		parts = append(parts, k+" => "+stringifyForDisplay(v.values[k]))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *DictValue) Get(key string) (Value, bool) {
	val, ok := v.values[key]
	return val, ok
}

func (v *DictValue) Set(key string, val Value) {
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.values[key] = val
}

func (v *DictValue) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

func (v *DictValue) Len() int { return len(v.keys) }

func (v *DictValue) Clone() *DictValue {
	c := NewDict()
	for _, k := range v.keys {
		c.Set(k, v.values[k])
	}
	return c
}

// SortedKeys returns Keys() sorted lexically, used by builtins that need a
// deterministic enumeration order (e.g. json encoding).
func (v *DictValue) SortedKeys() []string {
	ks := v.Keys()
	sort.Strings(ks)
	return ks
}

// FunctionValue is a user-defined closure: a function or method body plus
// the environment it closed over.
type FunctionValue struct {
	Name    string
	Params  []ast.Param
	Body    []ast.Statement
	Env     *Environment
	Async   bool
	This    *InstanceValue // bound receiver for methods; nil for plain functions
	ClassOf string         // name of the class that declares this method; "" for plain functions
}

func (v *FunctionValue) Type() string   { return "Function" }
func (v *FunctionValue) String() string { return fmt.Sprintf("<function %s>", v.Name) }

// NativeFn is the Go-side signature every stdlib builtin implements. Type
// and arity mismatches return (Null, nil), not an error, per spec §6.
type NativeFn func(interp *Interpreter, args []Value) (Value, error)

// NativeFunctionValue wraps a NativeFn as a callable runtime value.
type NativeFunctionValue struct {
	Name string
	Fn   NativeFn
}

func (v *NativeFunctionValue) Type() string   { return "NativeFunction" }
func (v *NativeFunctionValue) String() string { return fmt.Sprintf("<native %s>", v.Name) }

// InstanceData is the shared, mutable state behind every InstanceValue.
// Its mutex is the only synchronisation point needed for concurrent async
// tasks to read/write fields, per spec's cooperative concurrency model.
type InstanceData struct {
	mu     sync.Mutex
	Class  *ClassInfo
	Fields map[string]Value
}

func (d *InstanceData) Get(name string) (Value, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.Fields[name]
	return v, ok
}

func (d *InstanceData) Set(name string, val Value) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Fields[name] = val
}

// InstanceValue is a reference-typed class instance: copies of the Go value
// share one InstanceData, so mutation through any alias is visible to all.
type InstanceValue struct {
	Data *InstanceData
}

func NewInstance(class *ClassInfo) *InstanceValue {
	return &InstanceValue{Data: &InstanceData{Class: class, Fields: make(map[string]Value)}}
}

func (v *InstanceValue) Type() string { return v.Data.Class.Name }
func (v *InstanceValue) String() string {
	return fmt.Sprintf("<%s instance>", v.Data.Class.Name)
}

// EnumValue is one member of a declared enum type.
type EnumValue struct {
	EnumName string
	Variant  string
	Ordinal  Value
}

func (v *EnumValue) Type() string   { return v.EnumName }
func (v *EnumValue) String() string { return v.EnumName + "." + v.Variant }

// ClassRefValue is a class used as a first-class value. It is created only
// for classes exported through a module namespace Dict; calling it is not
// supported (instantiation goes through `n: Type(...)`).
type ClassRefValue struct{ Class *ClassInfo }

func (v *ClassRefValue) Type() string   { return "Class" }
func (v *ClassRefValue) String() string { return fmt.Sprintf("<class %s>", v.Class.Name) }

// PromiseState tracks a cooperative async task's lifecycle.
type PromiseState int

const (
	Pending PromiseState = iota
	Resolved
	Rejected
)

// PromiseValue is the reference-typed handle an async call returns
// immediately; `await` blocks until the backing goroutine stores its result
// under mu and closes done.
type PromiseValue struct {
	mu     sync.Mutex
	state  PromiseState
	result Value
	err    error
	done   chan struct{}
}

func NewPromise() *PromiseValue {
	return &PromiseValue{done: make(chan struct{})}
}

func (p *PromiseValue) Type() string   { return "Promise" }
func (p *PromiseValue) String() string { return "<promise>" }

// Resolve or Reject settle the promise exactly once; subsequent calls are
// no-ops, matching the "a task resolves at most once" invariant.
func (p *PromiseValue) Resolve(v Value) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Pending {
		return
	}
	p.state = Resolved
	p.result = v
	close(p.done)
}

func (p *PromiseValue) Reject(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Pending {
		return
	}
	p.state = Rejected
	p.err = err
	close(p.done)
}

// Await blocks the calling goroutine until the promise settles, then
// returns its value or error.
func (p *PromiseValue) Await() (Value, error) {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, p.err
}

func stringifyForDisplay(v Value) string {
	if t, ok := v.(*TextValue); ok {
		return strconv.Quote(t.Value)
	}
	return v.String()
}

// cloneForRead returns the value a plain variable lookup should hand back:
// List/Dict are value-typed (spec §3), so a fresh shallow copy is returned
// on every read, matching Entorno::obtener's `v.clone()` in the original
// runtime; every other value (including Instance/Promise, which carry
// reference semantics through a shared pointer) is returned unchanged.
func cloneForRead(v Value) Value {
	switch t := v.(type) {
	case *ListValue:
		return t.Clone()
	case *DictValue:
		return t.Clone()
	default:
		return v
	}
}

// truthy implements Umbral's truthiness rule per spec §4.3: Bool uses its
// own value; Null is false; 0, 0.0, "", and an empty List are also falsy;
// everything else (non-zero numbers, non-empty Text/List, Dict, Instance,
// Function, ...) is true.
func truthy(v Value) bool {
	switch t := v.(type) {
	case *BoolValue:
		return t.Value
	case *NullValue:
		return false
	case nil:
		return false
	case *IntegerValue:
		return t.Value != 0
	case *FloatValue:
		return t.Value != 0
	case *TextValue:
		return t.Value != ""
	case *ListValue:
		return len(t.Elements) != 0
	default:
		return true
	}
}
