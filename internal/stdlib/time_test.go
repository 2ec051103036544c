package stdlib

import "testing"

func TestTimeFormatIsDeterministic(t *testing.T) {
	out := runSource(t, `tprint(Std.time.format(0, "2006-01-02"));`)
	if out != "1970-01-01\n" {
		t.Errorf("format(0, ...) output = %q, want %q", out, "1970-01-01\n")
	}
}

func TestTimeNowAndUnixMillisAdvance(t *testing.T) {
	out := runSource(t, `
v: now = Std.time.now();
tprint(now > 0);
v: millis = Std.time.unixMillis();
tprint(millis > 0);
`)
	if out != "true\ntrue\n" {
		t.Errorf("now/unixMillis output = %q, want %q", out, "true\ntrue\n")
	}
}
