package stdlib

import (
	"testing"

	"github.com/hersac/umbral/internal/interp"
)

func callStr(t *testing.T, name string, args ...interp.Value) interp.Value {
	t.Helper()
	d := strDict()
	fnVal, ok := d.Get(name)
	if !ok {
		t.Fatalf("Std.str has no %q", name)
	}
	fn, ok := fnVal.(*interp.NativeFunctionValue)
	if !ok {
		t.Fatalf("Std.str.%s is %T, not a NativeFunctionValue", name, fnVal)
	}
	v, err := fn.Fn(nil, args)
	if err != nil {
		t.Fatalf("Std.str.%s returned error: %v", name, err)
	}
	return v
}

func TestStrNormalize(t *testing.T) {
	// "café" (combining acute) normalizes to "café" (precomposed é).
	got := callStr(t, "normalize", text("café"))
	if got.String() != "café" {
		t.Errorf("normalize = %q, want %q", got.String(), "café")
	}
}

func TestStrCollate(t *testing.T) {
	got := callStr(t, "collate", text("a"), text("b"))
	n, ok := asInt(got)
	if !ok || n >= 0 {
		t.Errorf("collate(a, b) = %v, want a negative Integer", got)
	}
}

func TestStrUTF16RoundTrip(t *testing.T) {
	encoded := callStr(t, "toUTF16", text("hi"))
	decoded := callStr(t, "fromUTF16", encoded)
	if decoded.String() != "hi" {
		t.Errorf("toUTF16/fromUTF16 round-trip = %q, want %q", decoded.String(), "hi")
	}
}

func TestStrSliceBounds(t *testing.T) {
	tests := []struct {
		name string
		args []interp.Value
		want string
		null bool
	}{
		{"within bounds", []interp.Value{text("hello"), integer(1), integer(3)}, "el", false},
		{"out of bounds", []interp.Value{text("hello"), integer(1), integer(99)}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := callStr(t, "slice", tt.args...)
			if tt.null {
				if _, ok := got.(*interp.NullValue); !ok {
					t.Errorf("slice(%v) = %v, want Null", tt.args, got)
				}
				return
			}
			if got.String() != tt.want {
				t.Errorf("slice(%v) = %q, want %q", tt.args, got.String(), tt.want)
			}
		})
	}
}

func TestStrArgumentMismatchReturnsNull(t *testing.T) {
	got := callStr(t, "upper", integer(5))
	if _, ok := got.(*interp.NullValue); !ok {
		t.Errorf("upper(5) = %v, want Null (type mismatch returns Null, not an error, per spec §6)", got)
	}
}
