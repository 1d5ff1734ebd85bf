package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jcorbin/gocomp/internal/logio"
	"github.com/jcorbin/gocomp/internal/panicerr"
)

const version = "0.4.0"

func main() {
	var (
		file        string
		interactive bool
		configPath  string
		writeConfig bool
		trace       bool
		maxDepth    int
		showVersion bool
	)
	flag.StringVar(&file, "f", "", "evaluate operations read from `file`, followed by any arguments")
	flag.BoolVar(&interactive, "i", false, "start an interactive session")
	flag.StringVar(&configPath, "config", DefaultConfigPath(), "configuration `path`")
	flag.BoolVar(&writeConfig, "write-config", false, "write the effective configuration and exit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&maxDepth, "max-depth", 0, "limit function call depth")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: comp [flags] [OPERATIONS...]\n")
		flag.PrintDefaults()
		fmt.Fprintf(out, "\ncommands:\n")
		_ = writeCommandList(out, 80)
	}
	flag.Parse()

	logger := logio.New(os.Stderr, isTerminal(os.Stderr))
	os.Exit(run(logger, options{
		file:        file,
		args:        flag.Args(),
		interactive: interactive,
		configPath:  configPath,
		writeConfig: writeConfig,
		trace:       trace,
		maxDepth:    maxDepth,
		showVersion: showVersion,
	}))
}

type options struct {
	file        string
	args        []string
	interactive bool
	configPath  string
	writeConfig bool
	trace       bool
	maxDepth    int
	showVersion bool
}

func run(logger *logio.Logger, o options) int {
	if o.showVersion {
		fmt.Printf("comp %v\n", version)
		return 0
	}

	cfg, err := LoadConfig(o.configPath)
	if err != nil && cfg.ShowWarnings {
		logger.Warnf("%v", err)
	}
	if o.writeConfig {
		if err := cfg.Save(o.configPath); err != nil {
			logger.ErrorIf(err)
			return 2
		}
		logger.Printf(logio.Info, "wrote %v", o.configPath)
		return 0
	}
	logger.SetColor(!cfg.Monochrome && isTerminal(os.Stderr))

	printer, err := newStackPrinter(cfg, isTerminal(os.Stdout))
	if err != nil {
		logger.ErrorIf(err)
		return 2
	}

	opts := []VMOption{
		WithConfig(cfg),
		WithOutput(os.Stdout),
		WithWarnf(logger.Leveledf(logio.Warning)),
	}
	if o.trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	if o.maxDepth > 0 {
		opts = append(opts, WithCallDepthLimit(o.maxDepth))
	}
	vm := New(opts...)

	if o.interactive || (o.file == "" && len(o.args) == 0 && isTerminal(os.Stdin)) {
		r := repl{vm: vm, log: logger, printer: printer, out: os.Stdout}
		r.run()
		return 0
	}

	var toks []Token
	switch {
	case o.file != "":
		if toks, err = TokenizeFile(o.file); err != nil {
			logger.ErrorIf(err)
			return 2
		}
	case len(o.args) == 0:
		if toks, err = Tokenize(os.Stdin); err != nil {
			logger.ErrorIf(err)
			return 2
		}
	}
	if len(o.args) > 0 {
		toks = append(toks, TokenizeString("<args>", strings.Join(o.args, " "))...)
	}

	stack, err := vm.Eval(toks)
	if err != nil {
		if panicerr.IsPanic(err) {
			logger.Errorf("%+v", err)
		} else {
			logger.ErrorIf(err)
		}
		return 1
	}
	if err := printer.printStack(os.Stdout, stack); err != nil {
		logger.ErrorIf(err)
		return 2
	}
	return logger.ExitCode()
}
