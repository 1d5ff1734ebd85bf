package main

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/gocomp/internal/logio"
	"github.com/jcorbin/gocomp/internal/panicerr"
	"github.com/jcorbin/gocomp/internal/source"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name     string
	opts     []interface{}
	inputs   []func(vmt *vmTestCase, t *testing.T) []Token
	ops      []func(vm *VM)
	expect   []func(t *testing.T, vm *VM)
	wantErr  error
	wantLike error

	exclusive   bool
	nextInputID int
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withConfig(with func(cfg *Config)) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		with(&vm.config)
	}))
	return vmt
}

func (vmt vmTestCase) withSeed(seed int64) vmTestCase {
	vmt.opts = append(vmt.opts, WithRandSource(rand.NewSource(seed)))
	return vmt
}

func (vmt vmTestCase) withDepthLimit(limit int) vmTestCase {
	vmt.opts = append(vmt.opts, WithCallDepthLimit(limit))
	return vmt
}

func (vmt vmTestCase) withStack(values ...float64) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, Values(values...)...)
	}))
	return vmt
}

func (vmt vmTestCase) withText(s string) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.push(Text(s))
	}))
	return vmt
}

func (vmt vmTestCase) withVar(name string, f float64) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		if vm.vars == nil {
			vm.vars = make(map[string]float64)
		}
		vm.vars[name] = f
	}))
	return vmt
}

// withInput adds a program to evaluate; each is evaluated in turn, as
// successive lines of an interactive session would be.
func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.inputs = append(vmt.inputs, func(vmt *vmTestCase, t *testing.T) []Token {
		name := t.Name() + "/input"
		if id := vmt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		vmt.nextInputID++
		return TokenizeString(name, input)
	})
	return vmt
}

func (vmt vmTestCase) withNamedInput(name string, input string) vmTestCase {
	vmt.inputs = append(vmt.inputs, func(vmt *vmTestCase, t *testing.T) []Token {
		return TokenizeString(name, input)
	})
	return vmt
}

func (vmt vmTestCase) do(ops ...func(vm *VM)) vmTestCase {
	vmt.ops = append(vmt.ops, ops...)
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

// expectErrorLike only checks that an error of the same type as err occurs.
func (vmt vmTestCase) expectErrorLike(err error) vmTestCase {
	vmt.wantLike = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...float64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, Values(values...), vm.Stack(), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectStackNear(delta float64, values ...float64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		stack := vm.Stack()
		if !assert.Len(t, stack, len(values), "expected stack size") {
			return
		}
		for i, value := range values {
			f, ok := stack[i].Float()
			assert.True(t, ok, "expected numeric stack[%v]", i)
			assert.InDelta(t, value, f, delta, "expected stack[%v]", i)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectStackStrings(values ...string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		stack := vm.Stack()
		strs := make([]string, len(stack))
		for i, v := range stack {
			strs[i] = v.String()
		}
		if values == nil {
			values = []string{}
		}
		assert.Equal(t, values, strs, "expected stack strings")
	})
	return vmt
}

func (vmt vmTestCase) expectVar(name string, value float64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		f, ok := vm.recall(name)
		assert.True(t, ok, "expected variable %q to be defined", name)
		assert.Equal(t, value, f, "expected variable %q value", name)
	})
	return vmt
}

func (vmt vmTestCase) expectSlots(a, b, c float64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, [3]float64{a, b, c}, vm.slots, "expected memory slots")
	})
	return vmt
}

func (vmt vmTestCase) expectFunctions(names ...string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if names == nil {
			names = []string{}
		}
		assert.Equal(t, names, vm.Functions(), "expected defined functions")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectWarnings(warnings ...string) vmTestCase {
	var got []string
	vmt.opts = append(vmt.opts, WithWarnf(func(mess string, args ...interface{}) {
		got = append(got, fmt.Sprintf(mess, args...))
	}))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, warnings, got, "expected warnings")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) withTestDump() vmTestCase {
	vmt.expect = append(vmt.expect, vmt.dumpToTest)
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: t.Logf, Prefix: "out: "})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		vmt.runVMTest(t, vmt.buildVM(t))
	}) {
		vm := vmt.buildVM(t)
		WithLogf(t.Logf).apply(vm)
		vmt.runVMTest(t, vm)
	}
}

func (vmt vmTestCase) runVMTest(t *testing.T, vm *VM) {
	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	err := vmt.runVM(t, vm)
	switch {
	case vmt.wantErr != nil:
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	case vmt.wantLike != nil:
		target := reflect.New(reflect.TypeOf(vmt.wantLike))
		assert.True(t, errors.As(err, target.Interface()), "expected %T error\ngot: %+v", vmt.wantLike, err)
	default:
		assert.NoError(t, err, "unexpected evaluation error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(t *testing.T, vm *VM) error {
	for _, input := range vmt.inputs {
		if _, err := vm.Eval(input(&vmt, t)); err != nil {
			return err
		}
	}
	if len(vmt.ops) == 0 {
		return nil
	}

	names := make([]string, len(vmt.ops))
	for i, op := range vmt.ops {
		names[i] = runtime.FuncForPC(reflect.ValueOf(op).Pointer()).Name()
	}
	err := panicerr.Recover("vmTestCase.ops", func() error {
		for i, op := range vmt.ops {
			vm.logf(">", "do[%v] %v", i, names[i])
			op(vm)
		}
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

func (vmt vmTestCase) buildVM(t *testing.T) *VM {
	opt := VMOptions(defaultOptions, withRandSource(rand.NewSource(1)))
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&vmt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	var vm VM
	opt.apply(&vm)
	return &vm
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func at(name string, line int) source.Location {
	return source.Location{Name: name, Line: line}
}
