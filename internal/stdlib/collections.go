package stdlib

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/hersac/umbral/internal/interp"
)

// collectionsDict is Std.collections, grounded on umbral-runtime/src/runtime/
// stdlib's collections module; map/filter/reduce/sort take a List plus a
// callback Value invoked through interp.Interpreter.Call. naturalSort is
// given a home here per SPEC_FULL.md's DOMAIN STACK, exercising the
// maruel/natural dependency go-snaps otherwise pulls in only transitively.
func collectionsDict() *interp.DictValue {
	return dictOf(
		entry{"map", collMap},
		entry{"filter", collFilter},
		entry{"reduce", collReduce},
		entry{"sort", collSort},
		entry{"keys", collKeys},
		entry{"values", collValues},
		entry{"naturalSort", collNaturalSort},
	)
}

func collMap(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	fn := arg(args, 1)
	out := make([]interp.Value, len(list.Elements))
	for i, e := range list.Elements {
		out[i] = ip.Call(fn, []interp.Value{e})
	}
	return &interp.ListValue{Elements: out}, nil
}

func collFilter(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	fn := arg(args, 1)
	var out []interp.Value
	for _, e := range list.Elements {
		if truthyValue(ip.Call(fn, []interp.Value{e})) {
			out = append(out, e)
		}
	}
	return &interp.ListValue{Elements: out}, nil
}

func collReduce(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	fn := arg(args, 1)
	acc := arg(args, 2)
	for _, e := range list.Elements {
		acc = ip.Call(fn, []interp.Value{acc, e})
	}
	return acc, nil
}

// collSort returns a new list (value semantics) sorted by a comparator
// callback that mirrors strcmp: negative/zero/positive Integer for
// less/equal/greater.
func collSort(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	n := list.Clone()
	fn := arg(args, 1)
	sort.SliceStable(n.Elements, func(a, b int) bool {
		cmp := ip.Call(fn, []interp.Value{n.Elements[a], n.Elements[b]})
		v, ok := asInt(cmp)
		return ok && v < 0
	})
	return n, nil
}

func collKeys(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	d, ok := arg(args, 0).(*interp.DictValue)
	if !ok {
		return interp.Null, nil
	}
	ks := d.Keys()
	out := make([]interp.Value, len(ks))
	for i, k := range ks {
		out[i] = text(k)
	}
	return &interp.ListValue{Elements: out}, nil
}

func collValues(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	d, ok := arg(args, 0).(*interp.DictValue)
	if !ok {
		return interp.Null, nil
	}
	ks := d.Keys()
	out := make([]interp.Value, len(ks))
	for i, k := range ks {
		out[i], _ = d.Get(k)
	}
	return &interp.ListValue{Elements: out}, nil
}

func collNaturalSort(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	strs := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		s, ok := asText(e)
		if !ok {
			return interp.Null, nil
		}
		strs[i] = s
	}
	sort.Slice(strs, func(a, b int) bool { return natural.Less(strs[a], strs[b]) })
	out := make([]interp.Value, len(strs))
	for i, s := range strs {
		out[i] = text(s)
	}
	return &interp.ListValue{Elements: out}, nil
}

// truthyValue mirrors interp's truthiness rule (spec §4.3): Bool uses its
// own value; Null, 0, 0.0, "", and an empty List are falsy; everything else
// is true.
func truthyValue(v interp.Value) bool {
	switch t := v.(type) {
	case *interp.BoolValue:
		return t.Value
	case *interp.NullValue:
		return false
	case nil:
		return false
	case *interp.IntegerValue:
		return t.Value != 0
	case *interp.FloatValue:
		return t.Value != 0
	case *interp.TextValue:
		return t.Value != ""
	case *interp.ListValue:
		return len(t.Elements) != 0
	default:
		return true
	}
}
