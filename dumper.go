package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  at: %v %v\n", dump.vm.cur.Loc, dump.vm.cur)
	dump.dumpStack()
	dump.dumpMemory()
	dump.dumpFuncs()
}

func (dump vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
}

func (dump vmDumper) dumpMemory() {
	slots := dump.vm.slots
	fmt.Fprintf(dump.out, "  slots: a=%v b=%v c=%v\n",
		formatFloat(slots[0]), formatFloat(slots[1]), formatFloat(slots[2]))
	if len(dump.vm.vars) == 0 {
		return
	}
	names := make([]string, 0, len(dump.vm.vars))
	for name := range dump.vm.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(dump.out, "# Variables\n")
	for _, name := range names {
		fmt.Fprintf(dump.out, "  %v = %v\n", name, formatFloat(dump.vm.vars[name]))
	}
}

func (dump vmDumper) dumpFuncs() {
	names := dump.vm.Functions()
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Functions\n")
	var buf strings.Builder
	for _, name := range names {
		fn := dump.vm.funcs[name]
		buf.Reset()
		fmt.Fprintf(&buf, "  ( %v", fn.name)
		for _, tok := range fn.body {
			buf.WriteByte(' ')
			buf.WriteString(tok.String())
		}
		fmt.Fprintf(&buf, " ) @%v\n", fn.loc)
		io.WriteString(dump.out, buf.String())
	}
}
