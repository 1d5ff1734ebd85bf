package main

import "math"

// need halts with a StackUnderflowError unless the stack holds at least n
// values; built-ins call it before touching the stack.
func (vm *VM) need(n int) {
	if have := len(vm.stack); have < n {
		vm.halt(StackUnderflowError{vm.loc(), vm.opName(), n, have})
	}
}

func (vm *VM) push(v Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pushNum(f float64) { vm.push(Num(f)) }

func (vm *VM) pop() (v Value) {
	vm.need(1)
	i := len(vm.stack) - 1
	v, vm.stack = vm.stack[i], vm.stack[:i]
	return v
}

func (vm *VM) peek() Value {
	vm.need(1)
	return vm.stack[len(vm.stack)-1]
}

// popNum pops a number; a text cell that does not hold one is a ParseError.
func (vm *VM) popNum() float64 {
	v := vm.pop()
	f, ok := v.Float()
	if !ok {
		vm.halt(ParseError{vm.loc(), v.String(), "[" + vm.opName() + "] expects a numeric value"})
	}
	return f
}

// popNums pops n numbers, returning them in stack order (deepest first).
func (vm *VM) popNums(n int) []float64 {
	vm.need(n)
	fs := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		fs[i] = vm.popNum()
	}
	return fs
}

// popText pops a cell as text; numbers are rendered in decimal.
func (vm *VM) popText() string { return vm.pop().String() }

// popUint pops a number truncated toward zero, halting with a DomainError
// if it is negative or not finite.
func (vm *VM) popUint() uint64 {
	f := math.Trunc(vm.popNum())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		vm.domainError("operand must be finite")
	}
	if f < 0 {
		vm.domainError("operand must not be negative, got %v", formatFloat(f))
	}
	if f >= math.MaxUint64 {
		vm.domainError("operand too large, got %v", formatFloat(f))
	}
	return uint64(f)
}

// Stack returns a copy of the VM's current stack, bottom first.
func (vm *VM) Stack() []Value {
	return append(make([]Value, 0, len(vm.stack)), vm.stack...)
}
