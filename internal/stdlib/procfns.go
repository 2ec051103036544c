package stdlib

import (
	"os"
	"os/exec"

	"github.com/hersac/umbral/internal/interp"
)

// procDict is Std.proc, grounded on umbral-runtime/src/runtime/stdlib's
// process module. Non-goals exclude process sandboxing (spec §9), so exec
// runs the named command directly rather than through a restricted shell.
func procDict() *interp.DictValue {
	return dictOf(
		entry{"args", procArgs},
		entry{"env", procEnv},
		entry{"exit", procExit},
		entry{"exec", procExec},
	)
}

func procArgs(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	osArgs := os.Args[1:]
	elems := make([]interp.Value, len(osArgs))
	for i, a := range osArgs {
		elems[i] = text(a)
	}
	return &interp.ListValue{Elements: elems}, nil
}

func procEnv(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	name, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	v, ok := os.LookupEnv(name)
	if !ok {
		return interp.Null, nil
	}
	return text(v), nil
}

func procExit(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	code, ok := asInt(arg(args, 0))
	if !ok {
		code = 0
	}
	os.Exit(int(code))
	return interp.Null, nil
}

func procExec(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	if len(args) == 0 {
		return interp.Null, nil
	}
	name, ok := asText(args[0])
	if !ok {
		return interp.Null, nil
	}
	cmdArgs := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		s, ok := asText(a)
		if !ok {
			return interp.Null, nil
		}
		cmdArgs = append(cmdArgs, s)
	}
	out, err := exec.Command(name, cmdArgs...).CombinedOutput()
	if err != nil {
		throwError(ip, "proc.exec failed: "+err.Error(), text(string(out)))
		return interp.Null, nil
	}
	return text(string(out)), nil
}
