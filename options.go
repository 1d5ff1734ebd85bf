package main

import (
	"io"
	"math/rand"
	"time"
)

// VMOption customizes a VM constructed by New.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withConfig(DefaultConfig()),
	withOutput(io.Discard),
	withRandSource(nil),
)

// VMOptions combines any number of options into one; nil options are
// skipped, and later options override earlier ones.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return all
	}
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})
type withWarnfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM)   { vm.logfn = logfn }
func (warnfn withWarnfn) apply(vm *VM) { vm.warnfn = warnfn }

type configOption struct{ Config }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type randOption struct{ rand.Source }
type depthLimitOption int

func withConfig(cfg Config) configOption        { return configOption{cfg} }
func withOutput(w io.Writer) outputOption       { return outputOption{w} }
func withTee(w io.Writer) teeOption             { return teeOption{w} }
func withRandSource(src rand.Source) randOption { return randOption{src} }
func withCallDepthLimit(n int) depthLimitOption { return depthLimitOption(n) }

func (c configOption) apply(vm *VM)       { vm.config = c.Config }
func (o outputOption) apply(vm *VM)       { vm.out = newWriteFlusher(o.Writer) }
func (o teeOption) apply(vm *VM)          { vm.out = multiWriteFlusher(vm.out, newWriteFlusher(o.Writer)) }
func (lim depthLimitOption) apply(vm *VM) { vm.maxDepth = int(lim) }

func (r randOption) apply(vm *VM) {
	src := r.Source
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	vm.rand = rand.New(src)
}
