package main

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	kmPerMile     = 1.609344
	metersPerFoot = 0.3048
)

var radixPrefixes = map[int]string{2: "0b", 16: "0x"}

// radix converts between number bases; anything but base 10 is produced as
// a text cell.
func radix(from, to int) func(vm *VM) {
	return func(vm *VM) {
		var n uint64
		if from == 10 {
			n = vm.popUint()
		} else {
			s := vm.popText()
			digits := strings.TrimPrefix(strings.ToLower(s), radixPrefixes[from])
			if strings.HasPrefix(digits, "-") {
				vm.domainError("operand must not be negative, got %v", s)
			}
			var err error
			n, err = strconv.ParseUint(digits, from, 64)
			if err != nil {
				vm.halt(ParseError{vm.loc(), s, fmt.Sprintf("[%v] expects a base %v number", vm.opName(), from)})
			}
		}
		if to == 10 {
			vm.pushNum(float64(n))
		} else {
			vm.push(Text(strconv.FormatUint(n, to)))
		}
	}
}

// hexRGB splits a hex color like ff8000 into its red, green, and blue
// components.
func (vm *VM) hexRGB() {
	s := vm.popText()
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) != 6 {
		vm.domainError("color [%v] must have six hex digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		vm.halt(ParseError{vm.loc(), s, fmt.Sprintf("[%v] expects a hex color", vm.opName())})
	}
	vm.pushNum(float64(n >> 16 & 0xff))
	vm.pushNum(float64(n >> 8 & 0xff))
	vm.pushNum(float64(n & 0xff))
}

func (vm *VM) rgbHex() {
	rgb := vm.popRGB(vm.popColorComponent)
	vm.push(Text(fmt.Sprintf("%02x%02x%02x", rgb[0], rgb[1], rgb[2])))
}

// rgbSwatch pushes a text cell that renders as a block of the color, then
// its hex form; fromHex reads components like ff rather than 255.
func rgbSwatch(fromHex bool) func(vm *VM) {
	return func(vm *VM) {
		pop := vm.popColorComponent
		if fromHex {
			pop = vm.popHexColorComponent
		}
		rgb := vm.popRGB(pop)
		vm.push(Text(fmt.Sprintf("\x1b[48;2;%d;%d;%dm      \x1b[0m", rgb[0], rgb[1], rgb[2])))
		vm.push(Text(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])))
	}
}

func (vm *VM) popRGB(pop func() uint64) (rgb [3]uint64) {
	for i := 2; i >= 0; i-- {
		rgb[i] = pop()
	}
	return rgb
}

func (vm *VM) popColorComponent() uint64 {
	n := vm.popUint()
	if n > 0xff {
		vm.domainError("color component %v out of range", n)
	}
	return n
}

func (vm *VM) popHexColorComponent() uint64 {
	s := vm.popText()
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 8)
	if err != nil {
		vm.halt(ParseError{vm.loc(), s, fmt.Sprintf("[%v] expects a hex color component", vm.opName())})
	}
	return n
}

func (vm *VM) tip() { vm.pushNum(vm.popNum() * vm.config.TipPercentage) }

// tipTotal is the bill plus its tip.
func (vm *VM) tipTotal() {
	a := vm.popNum()
	vm.pushNum(a + a*vm.config.TipPercentage)
}

func (vm *VM) convert() { vm.pushNum(vm.popNum() * vm.config.ConversionConstant) }
