package stdlib

import (
	"path/filepath"

	"github.com/hersac/umbral/internal/interp"
)

// pathDict is Std.path, grounded on umbral-runtime/src/runtime/stdlib's
// path module.
func pathDict() *interp.DictValue {
	return dictOf(
		entry{"join", pathJoin},
		entry{"dirname", pathDirname},
		entry{"basename", pathBasename},
		entry{"ext", pathExt},
		entry{"isAbs", pathIsAbs},
	)
}

func pathJoin(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		s, ok := asText(a)
		if !ok {
			return interp.Null, nil
		}
		parts = append(parts, s)
	}
	return text(filepath.Join(parts...)), nil
}

func pathDirname(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return text(filepath.Dir(s)), nil
}

func pathBasename(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return text(filepath.Base(s)), nil
}

func pathExt(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return text(filepath.Ext(s)), nil
}

func pathIsAbs(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return boolean(filepath.IsAbs(s)), nil
}
