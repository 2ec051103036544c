// Package stdlib implements Umbral's standard library surface: the `Std`
// dict of sub-module dicts and the pre-registered `Error` class (spec §6).
// Init satisfies interp.StdlibInit's signature and is wired into every
// Interpreter (main program and every imported module alike) through
// pkg/umbral, keeping internal/interp free of any dependency on this
// package (interp.Value construction flows one way: stdlib imports interp,
// never the reverse).
package stdlib

import "github.com/hersac/umbral/internal/interp"

// Init registers Std and the Error class into env/registry.
func Init(env *interp.Environment, registry *interp.Registry) {
	registerError(registry, env)

	std := interp.NewDict()
	std.Set("str", strDict())
	std.Set("num", numDict())
	std.Set("fs", fsDict())
	std.Set("path", pathDict())
	std.Set("time", timeDict())
	std.Set("json", jsonDict())
	std.Set("proc", procDict())
	std.Set("collections", collectionsDict())
	env.Define("Std", std, false)
}

// entry is one native-function binding inside a sub-module dict.
type entry struct {
	name string
	fn   interp.NativeFn
}

// dictOf builds a Dict from entries in declared order, keeping iteration
// order deterministic (DictValue.Keys() is insertion order).
func dictOf(entries ...entry) *interp.DictValue {
	d := interp.NewDict()
	for _, e := range entries {
		d.Set(e.name, &interp.NativeFunctionValue{Name: e.name, Fn: e.fn})
	}
	return d
}

// arg returns args[idx], or Null when the call was under-supplied — every
// native function tolerates short argument lists per spec §6.
func arg(args []interp.Value, idx int) interp.Value {
	if idx < 0 || idx >= len(args) {
		return interp.Null
	}
	return args[idx]
}

func asText(v interp.Value) (string, bool) {
	t, ok := v.(*interp.TextValue)
	if !ok {
		return "", false
	}
	return t.Value, true
}

func asInt(v interp.Value) (int64, bool) {
	switch t := v.(type) {
	case *interp.IntegerValue:
		return t.Value, true
	case *interp.FloatValue:
		return int64(t.Value), true
	}
	return 0, false
}

func asFloat(v interp.Value) (float64, bool) {
	switch t := v.(type) {
	case *interp.IntegerValue:
		return float64(t.Value), true
	case *interp.FloatValue:
		return t.Value, true
	}
	return 0, false
}

func asList(v interp.Value) (*interp.ListValue, bool) {
	l, ok := v.(*interp.ListValue)
	return l, ok
}

func text(s string) *interp.TextValue     { return &interp.TextValue{Value: s} }
func integer(n int64) *interp.IntegerValue { return &interp.IntegerValue{Value: n} }
func float(f float64) *interp.FloatValue   { return &interp.FloatValue{Value: f} }
func boolean(b bool) *interp.BoolValue     { return &interp.BoolValue{Value: b} }
