package interpreter

import "sync"

// Env is a lexically scoped frame of name-to-Value bindings with an
// optional parent. Frames are shared via pointer so that a closure's
// captured environment stays alive (and mutable, for recursive `def`) for as
// long as any UserFunction references it.
type Env struct {
	table  map[string]Value
	parent *Env
}

// NewEnv returns a fresh, parentless frame.
func NewEnv() *Env {
	return &Env{table: make(map[string]Value)}
}

// Child returns a fresh empty frame linked to parent.
func Child(parent *Env) *Env {
	return &Env{table: make(map[string]Value), parent: parent}
}

// Define inserts or replaces a binding in the current frame only.
func (e *Env) Define(name string, value Value) {
	e.table[name] = value
}

// Lookup searches the current frame, then each parent in turn.
func (e *Env) Lookup(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.table[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedNameError{Name: name}
}

var (
	builtinsOnce sync.Once
	builtinsEnv  *Env
)

// Builtins returns the process-wide, read-only-after-init builtins frame:
// every required builtin plus the name "nil" bound to Nil. It is built once
// per process and may be safely shared across many sheets on the same
// thread.
func Builtins() *Env {
	builtinsOnce.Do(func() {
		env := NewEnv()
		for _, b := range builtinFunctions {
			env.Define(b.Name, b)
		}
		env.Define("nil", Nil)
		builtinsEnv = env
	})
	return builtinsEnv
}

// WithBuiltins returns a fresh empty frame whose parent is the shared
// builtins environment.
func WithBuiltins() *Env {
	return Child(Builtins())
}
