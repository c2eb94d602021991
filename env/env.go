/*
Package env is the merx variable store: a single flat mapping from
name to value for the whole program run (spec.md §3, §4.3). There is
no scope chain and no delete operation — every Assign either inserts
or overwrites.

Grounded on scope.Scope's LookUp/Bind map discipline
(scope/scope.go), collapsed to one level: merx has no nested lexical
scopes, no closures, and no const/let variable kinds to track.
*/
package env

import "github.com/merx-lang/merx/value"

// Env is the run-time variable store created once at interpreter
// start and dropped at its return.
type Env struct {
	vars map[string]value.Value
}

// New returns an empty Env.
func New() *Env {
	return &Env{vars: make(map[string]value.Value)}
}

// Lookup returns the current binding for name, or ok=false if name is
// unbound (a runtime UndefinedVariable error at the call site).
func (e *Env) Lookup(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Assign binds name to v in the environment, inserting a new binding
// or overwriting an existing one.
func (e *Env) Assign(name string, v value.Value) {
	e.vars[name] = v
}
