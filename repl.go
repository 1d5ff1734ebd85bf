package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/gocomp/internal/logio"
)

const (
	historyFile = ".comp_history"
	promptMain  = "comp> "
	promptCont  = "  ... "
)

type repl struct {
	vm      *VM
	log     *logio.Logger
	printer *stackPrinter
	out     io.Writer
	lines   int
}

func (r *repl) run() {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(r.out)
			return
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if !r.eval(code) {
			return
		}
	}
}

// read prompts until the input holds no unfinished definition, block, or
// conditional.
func (r *repl) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		} else if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		} else if err != nil {
			r.log.ErrorIf(err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(TokenizeString("", b.String())) {
			return b.String(), true
		}
	}
}

// eval runs one entry, returning false if the session should end.
func (r *repl) eval(code string) bool {
	switch strings.TrimSpace(code) {
	case ":q", ":quit":
		return false
	case ":dump":
		vmDumper{vm: r.vm, out: r.out}.dump()
		return true
	case ":help":
		r.log.ErrorIf(writeCommandList(r.out, 80))
		return true
	}
	r.lines++
	toks := TokenizeString(fmt.Sprintf("<repl %v>", r.lines), code)
	stack, err := r.vm.Eval(toks)
	if err != nil {
		r.log.Printf(logio.Error, "%v", err)
		stack = r.vm.Stack()
	}
	r.log.ErrorIf(r.printer.printStack(r.out, stack))
	return true
}

// incomplete returns true if toks open more definitions, blocks, or
// conditionals than they close.
func incomplete(toks []Token) bool {
	defs, blocks, conds := 0, 0, 0
	for _, tok := range toks {
		switch tok.Kind {
		case TokenDefine:
			defs++
		case TokenEndDefine:
			defs--
		case TokenBlockOpen:
			blocks++
		case TokenBlockClose:
			blocks--
		case TokenWord:
			if _, ok := conditionals[tok.Text]; ok {
				conds++
			} else if tok.Text == "fi" {
				conds--
			}
		}
	}
	return defs > 0 || blocks > 0 || conds > 0
}
