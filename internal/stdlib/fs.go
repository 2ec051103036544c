package stdlib

import (
	"os"

	"github.com/hersac/umbral/internal/interp"
)

// fsDict is Std.fs, grounded on umbral-runtime/src/runtime/stdlib's
// filesystem module. Non-goals exclude filesystem sandboxing (spec §9), so
// these wrap os's calls directly rather than through a restricted view.
func fsDict() *interp.DictValue {
	return dictOf(
		entry{"readFile", fsReadFile},
		entry{"writeFile", fsWriteFile},
		entry{"exists", fsExists},
		entry{"listDir", fsListDir},
		entry{"remove", fsRemove},
		entry{"isDir", fsIsDir},
	)
}

func fsReadFile(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	path, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		throwError(ip, "readFile failed: "+err.Error(), text(path))
		return interp.Null, nil
	}
	return text(string(data)), nil
}

func fsWriteFile(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	path, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	content, ok := asText(arg(args, 1))
	if !ok {
		return interp.Null, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		throwError(ip, "writeFile failed: "+err.Error(), text(path))
		return interp.Null, nil
	}
	return boolean(true), nil
}

func fsExists(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	path, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	_, err := os.Stat(path)
	return boolean(err == nil), nil
}

func fsListDir(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	path, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		throwError(ip, "listDir failed: "+err.Error(), text(path))
		return interp.Null, nil
	}
	elems := make([]interp.Value, len(entries))
	for i, e := range entries {
		elems[i] = text(e.Name())
	}
	return &interp.ListValue{Elements: elems}, nil
}

func fsRemove(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	path, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	if err := os.Remove(path); err != nil {
		throwError(ip, "remove failed: "+err.Error(), text(path))
		return interp.Null, nil
	}
	return boolean(true), nil
}

func fsIsDir(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	path, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return boolean(false), nil
	}
	return boolean(info.IsDir()), nil
}
