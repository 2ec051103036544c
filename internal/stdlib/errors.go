package stdlib

import (
	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/interp"
)

// errorClassName is the pre-registered built-in exception class (spec §6):
// `Error { message: Text; data: Value }`. Its constructor is a hand-built
// method body rather than parsed source — two assignments binding `th`'s
// `message`/`data` fields from the constructor's positional arguments,
// exactly the shape a user-written `cs: Error { f: Error(message, data) {
// th.message = message; th.data = data; } }` would produce.
const errorClassName = "Error"

func registerError(registry *interp.Registry, env *interp.Environment) {
	ctor := &ast.Method{
		Name:   errorClassName,
		Params: []ast.Param{{Name: "message"}, {Name: "data"}},
		Body: []ast.Statement{
			&ast.Assignment{
				Target: &ast.PropertyExpr{Object: &ast.Ident{Name: "th"}, Name: "message"},
				Value:  &ast.Ident{Name: "message"},
			},
			&ast.Assignment{
				Target: &ast.PropertyExpr{Object: &ast.Ident{Name: "th"}, Name: "data"},
				Value:  &ast.Ident{Name: "data"},
			},
		},
	}
	registry.Classes[errorClassName] = &interp.ClassInfo{
		Name:    errorClassName,
		Methods: map[string]*ast.Method{errorClassName: ctor},
		Env:     env,
	}
}

// newError builds an Error instance directly, for stdlib operations that
// raise one internally (e.g. a JSON parse failure) rather than through
// user-written `n: Error(...)` syntax.
func newError(registry *interp.Registry, message string, data interp.Value) *interp.InstanceValue {
	inst := interp.NewInstance(registry.Classes[errorClassName])
	inst.Data.Set("message", text(message))
	if data == nil {
		data = interp.Null
	}
	inst.Data.Set("data", data)
	return inst
}

// throwError raises an Error as a language exception from within a native
// function, unwinding the calling frame exactly as a user `tw:` would.
func throwError(ip *interp.Interpreter, message string, data interp.Value) {
	ip.Throw(newError(ip.Registry, message, data))
}
