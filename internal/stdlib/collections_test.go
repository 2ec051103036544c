package stdlib

import "testing"

// Umbral has no anonymous function-literal expression (spec §4.2's
// expression grammar lists only function *calls*, not lambda literals);
// callbacks are passed by referencing a declared function's name, since
// `f:` declarations bind a first-class Function value to that name.

func TestCollectionsPipeline(t *testing.T) {
	out := runSource(t, `
f: doubleIt(n) { r: (n * 2); }
f: isMultipleOf4(n) { r: (n % 4 == 0); }
f: sum(acc, n) { r: (acc + n); }
v: xs = {1, 2, 3, 4, 5};
v: doubled = Std.collections.map(xs, doubleIt);
v: evens = Std.collections.filter(doubled, isMultipleOf4);
v: total = Std.collections.reduce(evens, sum, 0);
tprint(total);
`)
	if out != "12\n" {
		t.Errorf("pipeline output = %q, want %q", out, "12\n")
	}
}

func TestCollectionsSortIsValueSemantics(t *testing.T) {
	out := runSource(t, `
f: ascending(a, b) { r: (a - b); }
v: xs = {3, 1, 2};
v: sorted = Std.collections.sort(xs, ascending);
tprint(xs[0]);
tprint(sorted[0]);
`)
	if out != "3\n1\n" {
		t.Errorf("sort output = %q, want %q (original list must be unmutated)", out, "3\n1\n")
	}
}

func TestCollectionsNaturalSort(t *testing.T) {
	out := runSource(t, `
v: xs = {"item10", "item2", "item1"};
v: sorted = Std.collections.naturalSort(xs);
tprint(sorted[0]);
tprint(sorted[1]);
tprint(sorted[2]);
`)
	if out != "item1\nitem2\nitem10\n" {
		t.Errorf("naturalSort output = %q, want %q", out, "item1\nitem2\nitem10\n")
	}
}

func TestCollectionsKeysAndValues(t *testing.T) {
	out := runSource(t, `
v: d = [a => 1, b => 2];
v: ks = Std.collections.keys(d);
tprint(ks[0]);
tprint(ks[1]);
`)
	if out != "a\nb\n" {
		t.Errorf("keys output = %q, want %q", out, "a\nb\n")
	}
}
