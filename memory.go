package main

// memory holds the VM's named storage: three fixed slots, read and written
// by the sa/_a sb/_b sc/_c commands, and variables bound with =name.
type memory struct {
	slots [3]float64
	vars  map[string]float64
}

func (vm *VM) store(name string, f float64) {
	if _, ok := builtins[name]; ok {
		vm.warnf("variable [%v] is shadowed by a built-in command", name)
	} else if _, ok := vm.funcs[name]; ok {
		vm.warnf("variable [%v] is shadowed by a function", name)
	}
	if vm.vars == nil {
		vm.vars = make(map[string]float64)
	}
	vm.vars[name] = f
}

func (vm *VM) recall(name string) (float64, bool) {
	f, ok := vm.vars[name]
	return f, ok
}

func storeSlot(i int) func(vm *VM) {
	return func(vm *VM) { vm.slots[i] = vm.popNum() }
}

func recallSlot(i int) func(vm *VM) {
	return func(vm *VM) { vm.pushNum(vm.slots[i]) }
}

// Variables returns a copy of all bound variables.
func (vm *VM) Variables() map[string]float64 {
	vars := make(map[string]float64, len(vm.vars))
	for name, f := range vm.vars {
		vars[name] = f
	}
	return vars
}
