package main

import (
	"sort"

	"github.com/jcorbin/gocomp/internal/source"
)

type function struct {
	name string
	body []Token
	loc  source.Location
}

type functionTable map[string]*function

// define binds every ( name ... ) span in toks, returning the tokens that
// remain to be executed.
func (vm *VM) define(toks []Token) []Token {
	prog := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Kind {
		case TokenEndDefine:
			vm.parseError(tok, "function end without a definition")

		case TokenDefine:
			vm.cur = tok
			if tok.Name == "" {
				vm.parseError(tok, "function definition without a name")
			}
			if isNumber(tok.Name) {
				vm.parseError(tok, "function name must not be a number")
			}
			if kind := scanToken(tok.Name).Kind; kind != TokenWord {
				vm.parseError(tok, "function name must be a plain word, not a %v", kind)
			}

			j := i + 1
			for ; j < len(toks); j++ {
				if kind := toks[j].Kind; kind == TokenEndDefine {
					break
				} else if kind == TokenDefine {
					vm.parseError(toks[j], "nested function definition inside [%v]", tok.Name)
				}
			}
			if j == len(toks) {
				vm.parseError(tok, "function [%v] definition without an end", tok.Name)
			}
			vm.defineFunc(tok.Name, toks[i+1:j], tok.Loc)
			i = j

		default:
			prog = append(prog, tok)
		}
	}
	return prog
}

func (vm *VM) defineFunc(name string, body []Token, loc source.Location) {
	if prior, defined := vm.funcs[name]; defined {
		vm.warnf("%v: function [%v] redefined, was defined at %v", loc, name, prior.loc)
	}
	if _, ok := builtins[name]; ok {
		vm.warnf("%v: function [%v] is shadowed by a built-in command", loc, name)
	} else if _, ok := conditionals[name]; ok {
		vm.warnf("%v: function [%v] is shadowed by a conditional", loc, name)
	}
	if vm.funcs == nil {
		vm.funcs = make(functionTable)
	}
	vm.funcs[name] = &function{
		name: name,
		body: append([]Token(nil), body...),
		loc:  loc,
	}
}

func (vm *VM) call(fn *function) {
	if vm.maxDepth > 0 && vm.depth >= vm.maxDepth {
		vm.halt(CallDepthError{vm.loc(), fn.name, vm.maxDepth})
	}
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.logfn != nil {
		vm.logf(">", "call %v", fn.name)
		defer vm.withLogPrefix("\t")()
	}
	vm.exec(fn.body)
}

// Functions returns the names of all defined functions in sorted order.
func (vm *VM) Functions() []string {
	names := make([]string, 0, len(vm.funcs))
	for name := range vm.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
