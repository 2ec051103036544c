package stdlib

import (
	"path/filepath"
	"testing"
)

func TestFsWriteReadRemoveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "greeting.txt")
	out := runSource(t, `
v: ok = Std.fs.writeFile("`+p+`", "hello umbral");
tprint(ok);
tprint(Std.fs.exists("`+p+`"));
tprint(Std.fs.readFile("`+p+`"));
tprint(Std.fs.isDir("`+p+`"));
Std.fs.remove("`+p+`");
tprint(Std.fs.exists("`+p+`"));
`)
	want := "true\ntrue\nhello umbral\nfalse\nfalse\n"
	if out != want {
		t.Errorf("fs round-trip output = %q, want %q", out, want)
	}
}

func TestFsReadFileMissingThrows(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.txt")
	out := runSource(t, `
tc {
  Std.fs.readFile("`+missing+`");
} cat(e -> Error) {
  tprint("caught");
}
`)
	if out != "caught\n" {
		t.Errorf("readFile(missing) output = %q, want %q", out, "caught\n")
	}
}
