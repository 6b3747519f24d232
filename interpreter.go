// interpreter.go — public surface of the NIKL runtime.
//
// OVERVIEW
// ========
// Package nikl implements the NIKL scripting language: lexer, recursive
// descent parser, and tree-walking interpreter, plus the CLI surface (REPL,
// script runner, package tooling) the `nikl` binary wires together.
//
// This file holds the Interpreter type and its entry points:
//
//   - NewInterpreter — a ready runtime with the core builtins bound.
//   - Interpret      — evaluate a statement list, returning the value of the
//     last statement (what the REPL echoes).
//   - RunScript      — package-level convenience: lex + parse + interpret a
//     source string on a fresh interpreter.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// Code evaluates against a lexical Env chain. The interpreter owns a single
// persistent root env holding the builtins and all top-level bindings; only
// function calls and module loads push new frames. if/while/for/loop bodies
// run in the current frame, so `let` inside a loop body collides with itself
// on the second iteration; loops mutate with `=` instead.
//
// CONTROL FLOW
// ------------
// break/continue/return travel as error-typed signals (breakSignal,
// continueSignal, returnSignal) and are intercepted at loop and call
// boundaries. They never escape the public API: a signal that reaches the
// top level is converted into a *RuntimeError. No panics cross this surface.
package nikl

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// RuntimeError is an execution-time failure. NIKL runtime errors carry no
// source position; the message alone identifies the failure.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return e.Msg }

func rtErrf(format string, args ...interface{}) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// ---- control-flow signals ----
//
// These satisfy error so evaluators can return them through the ordinary
// (Value, error) path; loop and call boundaries intercept them by type.

type breakSignal struct{}

func (breakSignal) Error() string { return "break signal" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue signal" }

type returnSignal struct {
	val Value
}

func (returnSignal) Error() string { return "return signal" }

// Interpreter evaluates NIKL statement lists.
//
// Fields:
//   - env       — the persistent root environment (builtins + top level).
//   - stdout    — destination for print (tests substitute a buffer).
//   - stdin     — source for input.
//   - scriptDir — directory imports resolve against ("" means the CWD).
//   - loaded    — canonical paths of modules already imported; copied by
//     value into nested interpreters so import cycles terminate.
type Interpreter struct {
	env       *Env
	stdout    io.Writer
	stdin     io.Reader
	stdinBuf  *bufio.Reader // lazy; wraps stdin on the first input() call
	scriptDir string
	loaded    map[string]bool
}

// NewInterpreter returns a ready-to-use instance with the core builtins
// bound immutably in the root environment.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{
		env:    NewEnv(nil),
		stdout: os.Stdout,
		stdin:  os.Stdin,
		loaded: map[string]bool{},
	}
	registerCoreBuiltins(ip)
	return ip
}

// Interpret evaluates stmts in order and returns the value of the last
// statement (Null for an empty list). Control-flow signals surfacing here
// are outside any loop or function and become runtime errors.
func (ip *Interpreter) Interpret(stmts []Statement) (Value, error) {
	result := Null
	for _, s := range stmts {
		v, err := ip.execStatement(s)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return Null, rtErrf("Unexpected 'break' outside of a loop")
			case continueSignal:
				return Null, rtErrf("Unexpected 'continue' outside of a loop")
			case returnSignal:
				return Null, rtErrf("Unexpected 'return' outside of a function")
			default:
				return Null, err
			}
		}
		result = v
	}
	return result, nil
}

// RunScript lexes, parses, and interprets source on a fresh interpreter.
// The first lexical, syntax, or runtime failure is returned.
func RunScript(source string) error {
	stmts, err := ParseSource(source)
	if err != nil {
		return err
	}
	_, err = NewInterpreter().Interpret(stmts)
	return err
}
