package stdlib

import "testing"

func TestNumPipeline(t *testing.T) {
	out := runSource(t, `
v: n = Std.num.parseInt("42");
v: f = Std.num.parseFloat("3.7");
tprint(n);
tprint(Std.num.floor(f));
tprint(Std.num.ceil(f));
tprint(Std.num.round(f));
tprint(Std.num.toFixed(f, 2));
tprint(Std.num.abs(-5));
tprint(Std.num.max(3, 9));
tprint(Std.num.min(3, 9));
`)
	want := "42\n3\n4\n4\n3.70\n5\n9\n3\n"
	if out != want {
		t.Errorf("num pipeline output = %q, want %q", out, want)
	}
}

func TestNumParseIntMismatchReturnsNull(t *testing.T) {
	out := runSource(t, `tprint(Std.num.parseInt("not a number"));`)
	if out != "null\n" {
		t.Errorf("parseInt(garbage) output = %q, want %q", out, "null\n")
	}
}
