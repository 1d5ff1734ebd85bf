package main

import "math"

func (vm *VM) sqrt() {
	a := vm.popNum()
	if a < 0 {
		vm.domainError("square root of negative number %v", formatFloat(a))
	}
	vm.pushNum(math.Sqrt(a))
}

// throot takes the b-th root of a; odd roots of negative numbers are real.
func (vm *VM) throot() {
	nums := vm.popNums(2)
	a, b := nums[0], nums[1]
	if a >= 0 {
		vm.pushNum(math.Pow(a, 1/b))
		return
	}
	if b != math.Trunc(b) || math.Mod(b, 2) == 0 {
		vm.domainError("root %v of negative number %v is not real", formatFloat(b), formatFloat(a))
	}
	vm.pushNum(-math.Pow(-a, 1/b))
}

// proot solves a x^2 + b x + c = 0, pushing the real and imaginary parts of
// both roots.
func (vm *VM) proot() {
	nums := vm.popNums(3)
	a, b, c := nums[0], nums[1], nums[2]
	if a == 0 {
		vm.domainError("leading coefficient must not be zero")
	}
	d := b*b - 4*a*c
	if d < 0 {
		re := -b / (2 * a)
		im := math.Sqrt(-d) / (2 * a)
		vm.push(Num(re))
		vm.push(Num(im))
		vm.push(Num(re))
		vm.push(Num(-im))
		return
	}
	sd := math.Sqrt(d)
	vm.push(Num((-b + sd) / (2 * a)))
	vm.push(Num(0))
	vm.push(Num((-b - sd) / (2 * a)))
	vm.push(Num(0))
}

func (vm *VM) factorial() {
	n := vm.popUint()
	vm.pushNum(factorial(n))
}

// factorial overflows to +Inf past 170!.
func factorial(n uint64) float64 {
	if n > 170 {
		return math.Inf(1)
	}
	r := 1.0
	for i := uint64(2); i <= n; i++ {
		r *= float64(i)
	}
	return r
}

func (vm *VM) gcd() {
	b := vm.popUint()
	a := vm.popUint()
	vm.pushNum(float64(gcd(a, b)))
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
