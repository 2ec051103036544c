package interp

import (
	"fmt"
	"io"

	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/diag"
)

// Interpreter is one evaluation context: a global environment, the
// class/interface/enum registries declared into it, a base directory for
// resolving `equip`/`origin` imports, and the output/diagnostic sinks.
// A fresh Interpreter is spawned per imported module (spec §4.3 "Module
// loader") and per async task (spec §5), grounded on funxy's
// Evaluator.Clone() pattern for the latter (see async.go).
type Interpreter struct {
	Global   *Environment
	Registry *Registry
	BaseDir  string
	Out      io.Writer
	Diag     *diag.Reporter

	// Exports records which top-level names (vars, consts, functions,
	// classes, interfaces, enums) were declared with `ex:`, for the module
	// loader's projection step.
	Exports map[string]bool

	// StdlibInit, when set, re-registers the standard library into every
	// module interpreter this one spawns (see module.go); propagated
	// through Clone() and execImport() so transitive imports see it too.
	StdlibInit StdlibInit

	// moduleCache memoises resolved imports by resolved file path so a
	// second `equip` of the same module reuses its interpreter instead of
	// re-executing the source, satisfying §8 invariant 6 (import idempotence).
	moduleCache map[string]*Interpreter

	sig Signal
}

// New creates an Interpreter rooted at baseDir (the directory imports are
// resolved relative to) writing tprint output to out and diagnostics
// through rep.
func New(baseDir string, out io.Writer, rep *diag.Reporter) *Interpreter {
	return &Interpreter{
		Global:      NewEnvironment(),
		Registry:    NewRegistry(),
		BaseDir:     baseDir,
		Out:         out,
		Diag:        rep,
		Exports:     make(map[string]bool),
		moduleCache: make(map[string]*Interpreter),
	}
}

// Run executes a fully-parsed program against this interpreter's global
// scope. An uncaught `tw:` value surfaces as a fatal diagnostic (spec §7
// "Language exception ... if no handler matches by program end, printed as
// fatal"); every other error kind is reported by the lexer/parser before
// Run is ever reached.
func (i *Interpreter) Run(prog *ast.Program) error {
	i.execStmts(prog.Statements, i.Global)
	if i.sig.Kind == SigThrow {
		thrown := i.sig.Value
		i.sig.Clear()
		i.Diag.Exceptionf(prog.Pos(), "uncaught exception: %s", describeException(thrown))
		return fmt.Errorf("uncaught exception: %s", describeException(thrown))
	}
	i.sig.Clear()
	return nil
}

// Throw raises v as a language exception from a native function, unwinding
// exactly as a `tw:` statement would (spec §7 "Language exception").
func (i *Interpreter) Throw(v Value) {
	i.sig.SetThrow(v)
}

func describeException(v Value) string {
	if v == nil {
		return "null"
	}
	if inst, ok := v.(*InstanceValue); ok {
		if msg, ok := inst.Data.Get("message"); ok {
			return fmt.Sprintf("%s: %s", inst.Data.Class.Name, msg.String())
		}
	}
	return v.String()
}

// execStmts runs a statement list in env, stopping as soon as a return or
// throw signal becomes active (spec §4.3 "any statement is a no-op once
// either flag is set"), checking i.sig.Active() after every statement.
func (i *Interpreter) execStmts(stmts []ast.Statement, env *Environment) {
	for _, s := range stmts {
		i.execStatement(s, env)
		if i.sig.Active() {
			return
		}
	}
}

func (i *Interpreter) execStatement(stmt ast.Statement, env *Environment) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		i.execVarDecl(s, env)
	case *ast.ConstDecl:
		i.execConstDecl(s, env)
	case *ast.FnDecl:
		i.execFnDecl(s, env)
	case *ast.ClassDecl:
		i.declareClass(s, env)
	case *ast.InterfaceDecl:
		i.declareInterface(s, env)
	case *ast.EnumDecl:
		i.declareEnum(s, env)
	case *ast.ImportDecl:
		i.execImport(s, env)
	case *ast.Assignment:
		i.execAssignment(s, env)
	case *ast.ReturnStmt:
		var val Value = Null
		if s.Value != nil {
			val = i.eval(s.Value, env)
		}
		if i.sig.Active() {
			return
		}
		i.sig.SetReturn(val)
	case *ast.IfStmt:
		i.execIf(s, env)
	case *ast.SwitchStmt:
		i.execSwitch(s, env)
	case *ast.ForStmt:
		i.execFor(s, env)
	case *ast.ForEachStmt:
		i.execForEach(s, env)
	case *ast.WhileStmt:
		i.execWhile(s, env)
	case *ast.DoWhileStmt:
		i.execDoWhile(s, env)
	case *ast.TryCatchStmt:
		i.execTryCatch(s, env)
	case *ast.ThrowStmt:
		val := i.eval(s.Value, env)
		if i.sig.Active() {
			return
		}
		i.sig.SetThrow(val)
	case *ast.TPrintStmt:
		i.execTPrint(s, env)
	case *ast.ExpressionStmt:
		i.eval(s.Expr, env)
	case *ast.BlockStmt:
		i.execStmts(s.Body, NewEnclosedEnvironment(env))
	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", stmt))
	}
}

func (i *Interpreter) execVarDecl(s *ast.VarDecl, env *Environment) {
	val := Value(Null)
	if s.Init != nil {
		val = i.eval(s.Init, env)
	}
	if i.sig.Active() {
		return
	}
	env.Define(s.Name, val, false)
	if s.Exported {
		i.Exports[s.Name] = true
	}
}

func (i *Interpreter) execConstDecl(s *ast.ConstDecl, env *Environment) {
	val := Value(Null)
	if s.Init != nil {
		val = i.eval(s.Init, env)
	}
	if i.sig.Active() {
		return
	}
	env.Define(s.Name, val, true)
	if s.Exported {
		i.Exports[s.Name] = true
	}
}

func (i *Interpreter) execFnDecl(s *ast.FnDecl, env *Environment) {
	fn := &FunctionValue{
		Name:   s.Name,
		Params: s.Params,
		Body:   s.Body,
		Env:    env,
		Async:  s.Async,
	}
	env.Define(s.Name, fn, false)
	if s.Exported {
		i.Exports[s.Name] = true
	}
}

// evalAssignTargetObject evaluates the object half of a property
// assignment target. A bare identifier is looked up directly rather than
// through eval's normal value-semantics clone, so the mutation that follows
// lands on the List/Dict actually bound to that name instead of a
// throwaway copy (spec §8 invariant 3: mutating through one alias of an
// Instance is visible through another, but List/Dict are value-typed and
// must not alias across separate bindings in the first place).
func (i *Interpreter) evalAssignTargetObject(expr ast.Expression, env *Environment) Value {
	if id, ok := expr.(*ast.Ident); ok {
		if v, ok := env.Get(id.Name); ok {
			return v
		}
		i.Diag.Runtimef(id.Position, "undefined name %q", id.Name)
		return Null
	}
	return i.eval(expr, env)
}

func (i *Interpreter) execAssignment(s *ast.Assignment, env *Environment) {
	val := i.eval(s.Value, env)
	if i.sig.Active() {
		return
	}
	switch target := s.Target.(type) {
	case *ast.Ident:
		if err := env.Assign(target.Name, val); err != nil {
			i.Diag.Runtimef(target.Position, "%s", err.Error())
		}
	case *ast.PropertyExpr:
		obj := i.evalAssignTargetObject(target.Object, env)
		if i.sig.Active() {
			return
		}
		switch o := obj.(type) {
		case *InstanceValue:
			o.Data.Set(target.Name, val)
		case *DictValue:
			o.Set(target.Name, val)
		default:
			i.Diag.Runtimef(target.Position, "cannot assign property %q on a %s value", target.Name, typeNameOf(obj))
		}
	}
}

func (i *Interpreter) execIf(s *ast.IfStmt, env *Environment) {
	cond := i.eval(s.Cond, env)
	if i.sig.Active() {
		return
	}
	if truthy(cond) {
		i.execStmts(s.Then, NewEnclosedEnvironment(env))
		return
	}
	for _, elif := range s.Elifs {
		c := i.eval(elif.Cond, env)
		if i.sig.Active() {
			return
		}
		if truthy(c) {
			i.execStmts(elif.Body, NewEnclosedEnvironment(env))
			return
		}
	}
	if s.Else != nil {
		i.execStmts(s.Else, NewEnclosedEnvironment(env))
	}
}

func (i *Interpreter) execSwitch(s *ast.SwitchStmt, env *Environment) {
	scrutinee := i.eval(s.Scrutinee, env)
	if i.sig.Active() {
		return
	}
	for _, c := range s.Cases {
		cv := i.eval(c.Value, env)
		if i.sig.Active() {
			return
		}
		if valuesEqual(scrutinee, cv) {
			i.execStatement(c.Body, NewEnclosedEnvironment(env))
			return
		}
	}
	if s.Default != nil {
		i.execStatement(s.Default, NewEnclosedEnvironment(env))
	}
}

func (i *Interpreter) execFor(s *ast.ForStmt, env *Environment) {
	loopEnv := NewEnclosedEnvironment(env)
	if s.Init != nil {
		i.execStatement(s.Init, loopEnv)
		if i.sig.Active() {
			return
		}
	}
	for {
		if s.Cond != nil {
			cond := i.eval(s.Cond, loopEnv)
			if i.sig.Active() {
				return
			}
			if !truthy(cond) {
				break
			}
		}
		i.execStmts(s.Body, NewEnclosedEnvironment(loopEnv))
		if i.sig.Active() {
			return
		}
		if s.Step != nil {
			i.execStatement(s.Step, loopEnv)
			if i.sig.Active() {
				return
			}
		}
	}
}

func (i *Interpreter) execForEach(s *ast.ForEachStmt, env *Environment) {
	iter := i.eval(s.Iterable, env)
	if i.sig.Active() {
		return
	}
	list, ok := iter.(*ListValue)
	if !ok {
		i.Diag.Runtimef(s.Position, "foreach requires a List, got %s", typeNameOf(iter))
		return
	}
	for _, el := range list.Elements {
		childEnv := NewEnclosedEnvironment(env)
		childEnv.Define(s.VarName, el, false)
		i.execStmts(s.Body, childEnv)
		if i.sig.Active() {
			return
		}
	}
}

func (i *Interpreter) execWhile(s *ast.WhileStmt, env *Environment) {
	for {
		cond := i.eval(s.Cond, env)
		if i.sig.Active() {
			return
		}
		if !truthy(cond) {
			return
		}
		i.execStmts(s.Body, NewEnclosedEnvironment(env))
		if i.sig.Active() {
			return
		}
	}
}

func (i *Interpreter) execDoWhile(s *ast.DoWhileStmt, env *Environment) {
	for {
		i.execStmts(s.Body, NewEnclosedEnvironment(env))
		if i.sig.Active() {
			return
		}
		cond := i.eval(s.Cond, env)
		if i.sig.Active() {
			return
		}
		if !truthy(cond) {
			return
		}
	}
}

// execTryCatch implements spec §4.3/§7's try/catch/finally rules: the
// finally block always runs, even over a pending return or exception, and
// any new signal it raises supersedes the pending one.
func (i *Interpreter) execTryCatch(s *ast.TryCatchStmt, env *Environment) {
	i.execStmts(s.Try, NewEnclosedEnvironment(env))

	if i.sig.Kind == SigThrow && s.Catch != nil && exceptionMatches(i.sig.Value, s.Catch.Type) {
		thrown := i.sig.Value
		i.sig.Clear()
		catchEnv := NewEnclosedEnvironment(env)
		catchEnv.Define(s.Catch.VarName, thrown, false)
		i.execStmts(s.Catch.Body, catchEnv)
	}

	if s.Finally != nil {
		pending := i.sig
		i.sig.Clear()
		i.execStmts(s.Finally, NewEnclosedEnvironment(env))
		if !i.sig.Active() {
			i.sig = pending
		}
	}
}

// exceptionMatches reports whether a thrown value is caught by a `cat:`
// clause's optional type filter: unconditional when Type is empty, by class
// name (including inherited ancestry) otherwise.
func exceptionMatches(thrown Value, filter string) bool {
	if filter == "" {
		return true
	}
	inst, ok := thrown.(*InstanceValue)
	if !ok {
		return typeNameOf(thrown) == filter
	}
	return classIsOrDescendsFrom(inst.Data.Class, filter)
}

func classIsOrDescendsFrom(class *ClassInfo, name string) bool {
	if class == nil {
		return false
	}
	if class.Name == name {
		return true
	}
	for _, p := range class.Parents {
		if classIsOrDescendsFrom(p, name) {
			return true
		}
	}
	return false
}

func (i *Interpreter) execTPrint(s *ast.TPrintStmt, env *Environment) {
	parts := make([]string, len(s.Args))
	for idx, a := range s.Args {
		v := i.eval(a, env)
		if i.sig.Active() {
			return
		}
		parts[idx] = v.String()
	}
	line := ""
	for idx, p := range parts {
		if idx > 0 {
			line += " "
		}
		line += p
	}
	fmt.Fprintln(i.Out, line)
}

func typeNameOf(v Value) string {
	if v == nil {
		return "Null"
	}
	return v.Type()
}
