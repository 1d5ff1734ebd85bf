package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/jcorbin/gocomp/internal/panicerr"
	"github.com/jcorbin/gocomp/internal/source"
)

// New returns a VM with an empty stack, default configuration, and no
// functions or variables defined.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	if opt := VMOptions(opts...); opt != nil {
		opt.apply(&vm)
	}
	return &vm
}

// Eval extracts any function definitions from toks, then evaluates the rest
// against the VM's stack, returning the resulting stack. Any error aborts
// the whole evaluation; the stack is then left as it was before the call.
func (vm *VM) Eval(toks []Token) ([]Value, error) {
	saved := vm.Stack()
	vm.depth = 0
	err := panicerr.Recover("eval", func() error {
		vm.exec(vm.define(toks))
		return nil
	})
	if ferr := vm.out.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("unable to flush output: %w", ferr)
	}
	if err != nil {
		if halt, ok := panicerr.Value(err).(haltError); ok {
			err = halt.error
		}
		vm.stack = saved
		return nil, err
	}
	return vm.Stack(), nil
}

// EvalSource tokenizes everything read from r, labeling locations with
// name, then evaluates it.
func (vm *VM) EvalSource(name string, r io.Reader) ([]Value, error) {
	toks, err := Tokenize(source.NamedReader(name, r))
	if err != nil {
		return nil, err
	}
	return vm.Eval(toks)
}

// Reset clears the stack; functions and variables are retained.
func (vm *VM) Reset() { vm.stack = vm.stack[:0] }

// WithConfig sets the configuration read by built-ins, like the tip
// percentage and conversion constant.
func WithConfig(cfg Config) VMOption { return withConfig(cfg) }

// WithOutput sets where the pln command writes.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee copies pln output to an additional writer.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithRandSource sets the source for the rand command.
func WithRandSource(src rand.Source) VMOption { return withRandSource(src) }

// WithCallDepthLimit bounds nested function calls; 0, the default, leaves
// recursion bounded only by the host stack.
func WithCallDepthLimit(n int) VMOption { return withCallDepthLimit(n) }

// WithLogf enables trace logging of every evaluation step.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithWarnf sets where warnings go, when enabled by Config.ShowWarnings.
func WithWarnf(warnfn func(mess string, args ...interface{})) VMOption { return withWarnfn(warnfn) }
