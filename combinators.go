package main

type combinator struct {
	arity int
	fn    func(vm *VM, block []Token)
}

var combinators map[string]combinator

func init() {
	combinators = map[string]combinator{
		"map":  {0, (*VM).mapBlock},
		"fold": {1, (*VM).foldBlock},
		"scan": {1, (*VM).scanBlock},
	}
}

// withStack evaluates block against a temporary stack, returning what is
// left on it.
func (vm *VM) withStack(stack []Value, block []Token) []Value {
	saved, cur := vm.stack, vm.cur
	defer func() { vm.stack, vm.cur = saved, cur }()
	vm.stack = stack
	if vm.logfn != nil {
		defer vm.withLogPrefix("\t")()
	}
	vm.exec(block)
	return vm.stack
}

func (vm *VM) mapBlock(block []Token) {
	out := make([]Value, len(vm.stack))
	for i, val := range vm.stack {
		res := vm.withStack([]Value{val}, block)
		if len(res) != 1 {
			vm.halt(BlockResultError{vm.loc(), vm.opName(), "exactly one value", len(res)})
		}
		out[i] = res[0]
	}
	vm.stack = out
}

func (vm *VM) foldBlock(block []Token) {
	acc := vm.pop()
	for _, val := range vm.stack {
		acc = vm.step(acc, val, block)
	}
	vm.stack = append(vm.stack[:0], acc)
}

func (vm *VM) scanBlock(block []Token) {
	acc := vm.pop()
	out := make([]Value, 0, len(vm.stack))
	for _, val := range vm.stack {
		acc = vm.step(acc, val, block)
		out = append(out, acc)
	}
	vm.stack = out
}

func (vm *VM) step(acc, val Value, block []Token) Value {
	res := vm.withStack([]Value{acc, val}, block)
	if len(res) == 0 {
		vm.halt(BlockResultError{vm.loc(), vm.opName(), "at least one value", 0})
	}
	return res[len(res)-1]
}
