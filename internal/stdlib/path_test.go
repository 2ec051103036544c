package stdlib

import "testing"

func TestPathHelpers(t *testing.T) {
	out := runSource(t, `
v: p = Std.path.join("a", "b", "c.um");
tprint(p);
tprint(Std.path.dirname(p));
tprint(Std.path.basename(p));
tprint(Std.path.ext(p));
tprint(Std.path.isAbs(p));
tprint(Std.path.isAbs("/a/b"));
`)
	want := "a/b/c.um\na/b\nc.um\n.um\nfalse\ntrue\n"
	if out != want {
		t.Errorf("path helpers output = %q, want %q", out, want)
	}
}
