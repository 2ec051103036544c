package stdlib

import (
	"encoding/json"

	"github.com/hersac/umbral/internal/interp"
)

// jsonDict is Std.json: decode into a generic tree, then convert node-by-node.
func jsonDict() *interp.DictValue {
	return dictOf(
		entry{"parse", jsonParse},
		entry{"stringify", jsonStringify},
	)
}

// jsonParse throws the built-in Error class on malformed input, matching
// SUPPLEMENTED FEATURES: "thrown automatically by several stdlib operations
// (e.g. JSON parse failure)".
func jsonParse(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		throwError(ip, "json.parse: "+err.Error(), text(s))
		return interp.Null, nil
	}
	return fromJSON(decoded), nil
}

func jsonStringify(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	encoded, ok := toJSON(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	out, err := json.Marshal(encoded)
	if err != nil {
		return interp.Null, nil
	}
	return text(string(out)), nil
}

func fromJSON(v any) interp.Value {
	switch t := v.(type) {
	case nil:
		return interp.Null
	case bool:
		return boolean(t)
	case float64:
		if t == float64(int64(t)) {
			return integer(int64(t))
		}
		return float(t)
	case string:
		return text(t)
	case []any:
		elems := make([]interp.Value, len(t))
		for i, e := range t {
			elems[i] = fromJSON(e)
		}
		return &interp.ListValue{Elements: elems}
	case map[string]any:
		d := interp.NewDict()
		for k, val := range t {
			d.Set(k, fromJSON(val))
		}
		return d
	}
	return interp.Null
}

func toJSON(v interp.Value) (any, bool) {
	switch t := v.(type) {
	case nil, *interp.NullValue:
		return nil, true
	case *interp.BoolValue:
		return t.Value, true
	case *interp.IntegerValue:
		return t.Value, true
	case *interp.FloatValue:
		return t.Value, true
	case *interp.TextValue:
		return t.Value, true
	case *interp.ListValue:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			enc, ok := toJSON(e)
			if !ok {
				return nil, false
			}
			out[i] = enc
		}
		return out, true
	case *interp.DictValue:
		out := make(map[string]any, t.Len())
		for _, k := range t.SortedKeys() {
			val, _ := t.Get(k)
			enc, ok := toJSON(val)
			if !ok {
				return nil, false
			}
			out[k] = enc
		}
		return out, true
	default:
		return nil, false
	}
}
