package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jcorbin/gocomp/internal/source"
)

// VM evaluates programs against a stack of Values. Functions, variables,
// and the stack itself persist across calls to Eval, so that an interactive
// session can build on prior lines. A VM is not safe for concurrent use.
type VM struct {
	logging

	config Config
	out    writeFlusher
	rand   *rand.Rand
	warnfn func(mess string, args ...interface{})

	stack []Value
	memory
	funcs functionTable

	cur      Token // token under evaluation, for diagnostics
	depth    int   // current function call depth
	maxDepth int   // 0 for unbounded
}

func (vm *VM) halt(err error) {
	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		vm.logf("#", "halt error: %v", err)
		if vm.logfn != nil {
			var sb strings.Builder
			vmDumper{vm: vm, out: &sb}.dump()
			vm.logf("#", "%s", strings.TrimSuffix(sb.String(), "\n"))
		}
	}()
	panic(haltError{err})
}

func (vm *VM) loc() source.Location { return vm.cur.Loc }

func (vm *VM) opName() string { return vm.cur.String() }

func (vm *VM) domainError(mess string, args ...interface{}) {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	vm.halt(DomainError{vm.loc(), vm.opName(), mess})
}

func (vm *VM) parseError(tok Token, mess string, args ...interface{}) {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	vm.halt(ParseError{tok.Loc, tok.String(), mess})
}

func (vm *VM) warnf(mess string, args ...interface{}) {
	if vm.warnfn != nil && vm.config.ShowWarnings {
		vm.warnfn(mess, args...)
	}
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
