package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

type builtin struct {
	arity int // minimum stack depth, checked before fn runs
	fn    func(vm *VM)
}

var builtins map[string]builtin

func init() {
	builtins = make(map[string]builtin, 100)
	for _, def := range []struct {
		arity int
		fn    func(vm *VM)
		names []string
	}{
		// stack manipulation
		{1, (*VM).drop, []string{"drop"}},
		{1, (*VM).dup, []string{"dup"}},
		{2, (*VM).swap, []string{"swap"}},
		{0, (*VM).Reset, []string{"cls", "clr"}},
		{1, (*VM).roll, []string{"roll"}},
		{1, (*VM).rot, []string{"rot"}},

		// memory
		{1, storeSlot(0), []string{"sa"}},
		{0, recallSlot(0), []string{"_a"}},
		{1, storeSlot(1), []string{"sb"}},
		{0, recallSlot(1), []string{"_b"}},
		{1, storeSlot(2), []string{"sc"}},
		{0, recallSlot(2), []string{"_c"}},

		// arithmetic
		{2, binary(func(a, b float64) float64 { return a + b }), []string{"+"}},
		{2, binary(func(a, b float64) float64 { return a - b }), []string{"-"}},
		{2, binary(func(a, b float64) float64 { return a * b }), []string{"x"}},
		{2, binary(func(a, b float64) float64 { return a / b }), []string{"/"}},
		{2, binary(math.Mod), []string{"%", "mod"}},
		{2, binary(math.Pow), []string{"^", "exp"}},
		{1, unary(func(a float64) float64 { return a + 1 }), []string{"++"}},
		{1, unary(func(a float64) float64 { return a - 1 }), []string{"--"}},
		{1, unary(func(a float64) float64 { return -a }), []string{"chs"}},
		{1, unary(math.Abs), []string{"abs"}},
		{1, unary(math.Round), []string{"round", "int"}},
		{1, unary(func(a float64) float64 { return 1 / a }), []string{"inv"}},
		{1, (*VM).sqrt, []string{"sqrt"}},
		{2, (*VM).throot, []string{"throot"}},
		{3, (*VM).proot, []string{"proot"}},
		{1, (*VM).factorial, []string{"!"}},
		{2, (*VM).gcd, []string{"gcd"}},
		{2, binary(math.Min), []string{"min"}},
		{2, binary(math.Max), []string{"max"}},
		{2, binary(func(a, b float64) float64 { return (a + b) / 2 }), []string{"avg"}},
		{1, reduce(0, func(acc, a float64) float64 { return acc + a }), []string{"+_"}},
		{1, reduce(1, func(acc, a float64) float64 { return acc * a }), []string{"x_"}},
		{1, reduce(math.Inf(1), math.Min), []string{"min_"}},
		{1, reduce(math.Inf(-1), math.Max), []string{"max_"}},
		{1, (*VM).avgAll, []string{"avg_"}},

		// constants
		{0, constant(math.Pi), []string{"pi"}},
		{0, constant(math.E), []string{"e"}},
		{0, constant(9.80665), []string{"g"}},

		// trigonometry
		{1, unary(func(a float64) float64 { return a * math.Pi / 180 }), []string{"deg_rad"}},
		{1, unary(func(a float64) float64 { return a * 180 / math.Pi }), []string{"rad_deg"}},
		{1, unary(math.Sin), []string{"sin"}},
		{1, unary(math.Asin), []string{"asin"}},
		{1, unary(math.Cos), []string{"cos"}},
		{1, unary(math.Acos), []string{"acos"}},
		{1, unary(math.Tan), []string{"tan"}},
		{1, unary(math.Atan), []string{"atan"}},

		// logarithms
		{1, unary(math.Log10), []string{"log", "log10"}},
		{1, unary(math.Log2), []string{"log2"}},
		{1, unary(math.Log), []string{"ln"}},
		{2, binary(func(a, b float64) float64 { return math.Log(a) / math.Log(b) }), []string{"logn"}},

		// other
		{1, (*VM).random, []string{"rand"}},
		{1, (*VM).println, []string{"pln"}},

		// conversions
		{1, radix(10, 16), []string{"dec_hex"}},
		{1, radix(16, 10), []string{"hex_dec"}},
		{1, radix(10, 2), []string{"dec_bin"}},
		{1, radix(2, 10), []string{"bin_dec"}},
		{1, radix(2, 16), []string{"bin_hex"}},
		{1, radix(16, 2), []string{"hex_bin"}},
		{1, unary(func(a float64) float64 { return a*9/5 + 32 }), []string{"c_f", "C_F"}},
		{1, unary(func(a float64) float64 { return (a - 32) * 5 / 9 }), []string{"f_c", "F_C"}},
		{1, unary(func(a float64) float64 { return a * kmPerMile }), []string{"mi_km"}},
		{1, unary(func(a float64) float64 { return a / kmPerMile }), []string{"km_mi"}},
		{1, unary(func(a float64) float64 { return a * metersPerFoot }), []string{"ft_m"}},
		{1, unary(func(a float64) float64 { return a / metersPerFoot }), []string{"m_ft"}},
		{1, (*VM).hexRGB, []string{"hex_rgb"}},
		{3, (*VM).rgbHex, []string{"rgb_hex"}},
		{3, rgbSwatch(false), []string{"rgb"}},
		{3, rgbSwatch(true), []string{"rgbh"}},
		{1, (*VM).tip, []string{"tip"}},
		{1, (*VM).tipTotal, []string{"tip+"}},
		{1, (*VM).convert, []string{"a_b"}},

		// control words only valid after a block or inside a conditional
		{0, haltParse(errNoBlock), []string{"map", "fold", "scan"}},
		{0, haltParse(errStrayElse), []string{"else"}},
		{0, haltParse(errStrayFi), []string{"fi"}},
	} {
		for _, name := range def.names {
			if _, dup := builtins[name]; dup {
				panic(fmt.Sprintf("duplicate built-in [%v]", name))
			}
			builtins[name] = builtin{def.arity, def.fn}
		}
	}
}

// Builtins returns the names of all built-in commands in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeCommandList writes the built-in command names, wrapped to width.
func writeCommandList(w io.Writer, width int) error {
	var sb strings.Builder
	line := 0
	for _, name := range Builtins() {
		if line > 0 && line+1+len(name) > width {
			sb.WriteByte('\n')
			line = 0
		}
		if line == 0 {
			sb.WriteString("  ")
			line = 2
		} else {
			sb.WriteByte(' ')
			line++
		}
		sb.WriteString(name)
		line += len(name)
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func unary(f func(a float64) float64) func(vm *VM) {
	return func(vm *VM) { vm.pushNum(f(vm.popNum())) }
}

func binary(f func(a, b float64) float64) func(vm *VM) {
	return func(vm *VM) {
		b := vm.popNum()
		a := vm.popNum()
		vm.pushNum(f(a, b))
	}
}

// reduce collapses the whole stack into one value.
func reduce(zero float64, op func(acc, a float64) float64) func(vm *VM) {
	return func(vm *VM) {
		acc := zero
		for _, f := range vm.popNums(len(vm.stack)) {
			acc = op(acc, f)
		}
		vm.pushNum(acc)
	}
}

func constant(f float64) func(vm *VM) {
	return func(vm *VM) { vm.pushNum(f) }
}

func haltParse(err error) func(vm *VM) {
	return func(vm *VM) { vm.parseError(vm.cur, err.Error()) }
}

func (vm *VM) drop() { vm.pop() }

func (vm *VM) dup() { vm.push(vm.peek()) }

func (vm *VM) swap() {
	i := len(vm.stack) - 1
	vm.stack[i-1], vm.stack[i] = vm.stack[i], vm.stack[i-1]
}

// roll moves the top of the stack to the bottom.
func (vm *VM) roll() {
	top := vm.pop()
	vm.stack = append(vm.stack, Value{})
	copy(vm.stack[1:], vm.stack)
	vm.stack[0] = top
}

// rot moves the bottom of the stack to the top.
func (vm *VM) rot() {
	bottom := vm.stack[0]
	copy(vm.stack, vm.stack[1:])
	vm.stack[len(vm.stack)-1] = bottom
}

func (vm *VM) avgAll() {
	n := len(vm.stack)
	sum := 0.0
	for _, f := range vm.popNums(n) {
		sum += f
	}
	vm.pushNum(sum / float64(n))
}

func (vm *VM) random() {
	n := vm.popUint()
	vm.pushNum(math.Floor(float64(n) * vm.rand.Float64()))
}

func (vm *VM) println() {
	v := vm.pop()
	if _, err := fmt.Fprintln(vm.out, v.String()); err != nil {
		vm.halt(err)
	}
}
