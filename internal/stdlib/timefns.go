package stdlib

import (
	"time"

	"github.com/hersac/umbral/internal/interp"
)

// timeDict is Std.time, grounded on umbral-runtime/src/runtime/stdlib's
// time module. `format` takes a Go reference-time layout string rather than
// strftime-style directives, the one place this stdlib favours its host
// language's idiom over the original's.
func timeDict() *interp.DictValue {
	return dictOf(
		entry{"now", timeNow},
		entry{"unixMillis", timeUnixMillis},
		entry{"sleepMs", timeSleepMs},
		entry{"format", timeFormat},
	)
}

func timeNow(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	return integer(time.Now().Unix()), nil
}

func timeUnixMillis(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	return integer(time.Now().UnixMilli()), nil
}

func timeSleepMs(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	ms, ok := asInt(arg(args, 0))
	if !ok || ms < 0 {
		return interp.Null, nil
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return interp.Null, nil
}

func timeFormat(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	millis, ok := asInt(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	layout, ok := asText(arg(args, 1))
	if !ok {
		return interp.Null, nil
	}
	t := time.UnixMilli(millis).UTC()
	return text(t.Format(layout)), nil
}
