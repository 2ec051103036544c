package stdlib

import (
	"math"
	"strconv"

	"github.com/hersac/umbral/internal/interp"
)

// numDict is Std.num, grounded on umbral-runtime/src/runtime/stdlib's
// numeric module.
func numDict() *interp.DictValue {
	return dictOf(
		entry{"parseInt", numParseInt},
		entry{"parseFloat", numParseFloat},
		entry{"toFixed", numToFixed},
		entry{"abs", numAbs},
		entry{"min", numMin},
		entry{"max", numMax},
		entry{"floor", numFloor},
		entry{"ceil", numCeil},
		entry{"round", numRound},
		entry{"isNaN", numIsNaN},
	)
}

func numParseInt(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return interp.Null, nil
	}
	return integer(n), nil
}

func numParseFloat(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return interp.Null, nil
	}
	return float(f), nil
}

func numToFixed(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	digits, ok := asInt(arg(args, 1))
	if !ok || digits < 0 {
		return interp.Null, nil
	}
	return text(strconv.FormatFloat(f, 'f', int(digits), 64)), nil
}

func numAbs(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	switch v := arg(args, 0).(type) {
	case *interp.IntegerValue:
		n := v.Value
		if n < 0 {
			n = -n
		}
		return integer(n), nil
	case *interp.FloatValue:
		return float(math.Abs(v.Value)), nil
	}
	return interp.Null, nil
}

func numMin(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	a, ok1 := asFloat(arg(args, 0))
	b, ok2 := asFloat(arg(args, 1))
	if !ok1 || !ok2 {
		return interp.Null, nil
	}
	if a < b {
		return arg(args, 0), nil
	}
	return arg(args, 1), nil
}

func numMax(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	a, ok1 := asFloat(arg(args, 0))
	b, ok2 := asFloat(arg(args, 1))
	if !ok1 || !ok2 {
		return interp.Null, nil
	}
	if a > b {
		return arg(args, 0), nil
	}
	return arg(args, 1), nil
}

func numFloor(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return integer(int64(math.Floor(f))), nil
}

func numCeil(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return integer(int64(math.Ceil(f))), nil
}

func numRound(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return integer(int64(math.Round(f))), nil
}

func numIsNaN(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	f, ok := asFloat(arg(args, 0))
	if !ok {
		return boolean(true), nil
	}
	return boolean(math.IsNaN(f)), nil
}
