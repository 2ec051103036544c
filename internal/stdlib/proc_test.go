package stdlib

import "testing"

func TestProcEnvRoundTrip(t *testing.T) {
	t.Setenv("UMBRAL_STDLIB_TEST_VAR", "present")
	out := runSource(t, `
tprint(Std.proc.env("UMBRAL_STDLIB_TEST_VAR"));
tprint(Std.proc.env("UMBRAL_STDLIB_TEST_VAR_MISSING"));
`)
	if out != "present\nnull\n" {
		t.Errorf("proc.env output = %q, want %q", out, "present\nnull\n")
	}
}

func TestProcExecFailureThrows(t *testing.T) {
	out := runSource(t, `
tc {
  Std.proc.exec("umbral-stdlib-test-binary-that-does-not-exist");
} cat(e -> Error) {
  tprint("caught");
}
`)
	if out != "caught\n" {
		t.Errorf("proc.exec(missing) output = %q, want %q", out, "caught\n")
	}
}
