package main

func (vm *VM) exec(toks []Token) {
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		vm.cur = tok
		if vm.logfn != nil {
			vm.logf("@", "%v %v <- %v", tok.Loc, tok, vm.stack)
		}

		switch tok.Kind {
		case TokenNumber:
			vm.pushNum(tok.Num)
		case TokenText:
			vm.push(Text(tok.Name))
		case TokenStore:
			vm.need(1)
			vm.store(tok.Name, vm.popNum())
		case TokenMalformed:
			vm.parseError(tok, tok.Err)
		case TokenBlockOpen:
			i = vm.block(toks, i)
		case TokenBlockClose:
			vm.parseError(tok, "block end without a start")
		case TokenDefine, TokenEndDefine:
			vm.parseError(tok, "function definition not allowed here")
		case TokenWord:
			if cmp, ok := conditionals[tok.Text]; ok {
				i = vm.conditional(toks, i, cmp)
			} else {
				vm.word(tok)
			}
		}
	}
}

// word resolves a name, in order, as a built-in command, a defined function,
// or a stored variable.
func (vm *VM) word(tok Token) {
	if b, ok := builtins[tok.Text]; ok {
		vm.need(b.arity)
		b.fn(vm)
	} else if fn, ok := vm.funcs[tok.Text]; ok {
		vm.call(fn)
	} else if f, ok := vm.recall(tok.Text); ok {
		vm.pushNum(f)
	} else {
		vm.halt(UnknownSymbolError{tok.Loc, tok.Text})
	}
}

var conditionals = map[string]func(a, b float64) bool{
	"ifeq": func(a, b float64) bool { return a == b },
	"ifne": func(a, b float64) bool { return a != b },
	"ifgt": func(a, b float64) bool { return a > b },
	"ifge": func(a, b float64) bool { return a >= b },
	"iflt": func(a, b float64) bool { return a < b },
	"ifle": func(a, b float64) bool { return a <= b },
}

// conditional evaluates one branch of the ifXX ... [else ...] fi span
// starting at toks[i], returning the index of its fi.
func (vm *VM) conditional(toks []Token, i int, cmp func(a, b float64) bool) int {
	els, fi := -1, -1
	depth := 0
scan:
	for j := i + 1; j < len(toks); j++ {
		if toks[j].Kind != TokenWord {
			continue
		}
		switch word := toks[j].Text; {
		case word == "fi" && depth == 0:
			fi = j
			break scan
		case word == "fi":
			depth--
		case word == "else" && depth == 0:
			if els >= 0 {
				vm.parseError(toks[j], "second else for [%v]", toks[i])
			}
			els = j
		default:
			if _, ok := conditionals[word]; ok {
				depth++
			}
		}
	}
	if fi < 0 {
		vm.parseError(toks[i], "conditional without a matching fi")
	}

	vm.need(2)
	nums := vm.popNums(2)
	then, otherwise := toks[i+1:fi], toks[fi:fi]
	if els >= 0 {
		then, otherwise = toks[i+1:els], toks[els+1:fi]
	}
	if cmp(nums[0], nums[1]) {
		vm.exec(then)
	} else {
		vm.exec(otherwise)
	}
	return fi
}

// block hands the [ ... ] span starting at toks[i] to the combinator that
// follows it, returning the index of that combinator.
func (vm *VM) block(toks []Token, i int) int {
	depth := 0
	end := -1
	for j := i + 1; j < len(toks) && end < 0; j++ {
		switch toks[j].Kind {
		case TokenBlockOpen:
			depth++
		case TokenBlockClose:
			if depth == 0 {
				end = j
			}
			depth--
		}
	}
	if end < 0 {
		vm.parseError(toks[i], "block without an end")
	}
	next := end + 1
	if next >= len(toks) {
		vm.parseError(toks[end], errNoCombo.Error())
	}
	combo, ok := combinators[toks[next].Text]
	if !ok || toks[next].Kind != TokenWord {
		vm.parseError(toks[next], errNoCombo.Error())
	}
	vm.cur = toks[next]
	vm.need(combo.arity)
	combo.fn(vm, toks[i+1:end])
	return next
}
