package stdlib

import "testing"

func TestErrorConstructorRunsThroughOrdinaryInstantiation(t *testing.T) {
	out := runSource(t, `
v: e = n: Error("boom", 42);
tprint(e.message);
tprint(e.data);
`)
	if out != "boom\n42\n" {
		t.Errorf("Error(...) output = %q, want %q", out, "boom\n42\n")
	}
}

func TestErrorIsCatchableByClassName(t *testing.T) {
	out := runSource(t, `
tc {
  tw: n: Error("custom failure", null);
} cat(e -> Error) {
  tprint(e.message);
}
`)
	if out != "custom failure\n" {
		t.Errorf("catch output = %q, want %q", out, "custom failure\n")
	}
}
