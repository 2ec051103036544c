package interp

import "fmt"

// Clone creates a per-goroutine Interpreter for an async task: the global
// environment, class/interface/enum registries, and I/O sinks are shared
// (spec §5: registries are populated on the main task only and are
// read-only once a task observes them), while the unwind signal is fresh,
// since a task's return/throw must never leak into the spawning frame's
// state. Grounded on funxy's Evaluator.Clone() (shares immutable state,
// resets per-goroutine mutable state such as its call stack).
func (i *Interpreter) Clone() *Interpreter {
	return &Interpreter{
		Global:      i.Global,
		Registry:    i.Registry,
		BaseDir:     i.BaseDir,
		Out:         i.Out,
		Diag:        i.Diag,
		Exports:     i.Exports,
		StdlibInit:  i.StdlibInit,
		moduleCache: i.moduleCache,
	}
}

// spawnAsync schedules fn's body on a new goroutine and returns immediately
// with the Promise the caller observes, per spec §4.3 "Async and await" and
// §5's single-suspension-point model: only `await` blocks, the spawn itself
// never does.
func (i *Interpreter) spawnAsync(fn *FunctionValue, args []Value) *PromiseValue {
	p := NewPromise()
	task := i.Clone()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.Reject(fmt.Errorf("task panicked: %v", r))
			}
		}()
		result := task.callFunction(fn, args)
		if task.sig.Kind == SigThrow {
			p.Reject(fmt.Errorf("uncaught exception: %s", describeException(task.sig.Value)))
			return
		}
		p.Resolve(result)
	}()
	return p
}
