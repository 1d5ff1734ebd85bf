package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	recvType = flag.String("recv", "vmTestCase", "builder type whose methods are wrapped")
	infix    = flag.String("infix", "VM", "infix inserted into generated function names")
	timeout  = flag.Duration("timeout", 5*time.Second, "time limit for generation and formatting")
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

// generator turns builder methods like
//
//	func (vmt vmTestCase) expectStack(values ...float64) vmTestCase
//
// into free functions usable with vmTestCase.apply:
//
//	func expectVMStack(values ...float64) func(vmTestCase) vmTestCase
type generator struct {
	in      namedReader
	out     io.WriteCloser
	args    []string
	pattern *regexp.Regexp
}

func main() {
	flag.Parse()

	gen := generator{
		in:   os.Stdin,
		out:  os.Stdout,
		args: flag.Args(),
		pattern: regexp.MustCompile(fmt.Sprintf(
			`^func \(\w+ %[1]s\) (expect|with)(\w+)\((.+?)\) %[1]s \{`,
			regexp.QuoteMeta(*recvType))),
	}
	if err := gen.openFiles(); err != nil {
		log.Fatalln(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := gen.pipeline(ctx); err != nil {
		log.Fatalln(err)
	}
}

func (gen *generator) openFiles() error {
	args := gen.args
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %v: %w", args[0], err)
		}
		gen.in = f
		args = args[1:]
	}
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create %v: %w", args[0], err)
		}
		gen.out = f
	}
	return nil
}

// pipeline runs the generator with its output piped through goimports.
func (gen *generator) pipeline(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	ready := make(chan struct{})

	eg.Go(func() error {
		goimports := exec.CommandContext(ctx, "goimports")
		pipe, err := goimports.StdinPipe()
		if err != nil {
			return err
		}
		defer gen.out.Close()
		goimports.Stdout = gen.out
		goimports.Stderr = os.Stderr
		gen.out = pipe
		close(ready)
		if err := goimports.Run(); err != nil {
			return fmt.Errorf("goimports failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}
		defer func() {
			if cerr := gen.in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := gen.out.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return gen.generate(ctx)
	})

	return eg.Wait()
}

func (gen *generator) generate(ctx context.Context) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package main\n\n// @generated from %v\n\n", gen.in.Name())
	if len(gen.args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range gen.args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(gen.in)
	for sc.Scan() {
		if match := gen.pattern.FindSubmatch(sc.Bytes()); match != nil {
			gen.wrap(&buf, string(match[1]), string(match[2]), match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(gen.out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (gen *generator) wrap(buf *bytes.Buffer, base, what string, params []byte) {
	fmt.Fprintf(buf, "func %s%s%s(%s) func(%s) %[5]s {\n", base, *infix, what, params, *recvType)
	fmt.Fprintf(buf, "\treturn func(vmt %s) %[1]s {\n", *recvType)
	fmt.Fprintf(buf, "\t\treturn vmt.%s%s(", base, what)
	for i, param := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(param)
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}
	buf.WriteString(")\n\t}\n}\n\n")
}
