package main

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gocomp/internal/source"
)

// ParseError reports a malformed literal or an unbalanced structure, like a
// block without its closing bracket or a conditional without its fi.
type ParseError struct {
	Loc    source.Location
	Token  string
	Reason string
}

func (err ParseError) Error() string {
	if err.Token == "" {
		return fmt.Sprintf("%v: parse error: %v", err.Loc, err.Reason)
	}
	return fmt.Sprintf("%v: parse error at [%v]: %v", err.Loc, err.Token, err.Reason)
}

// UnknownSymbolError reports a word that is neither a literal, a built-in
// command, a defined function, nor a stored variable.
type UnknownSymbolError struct {
	Loc  source.Location
	Name string
}

func (err UnknownSymbolError) Error() string {
	return fmt.Sprintf("%v: unknown expression [%v] is not a recognized operation or valid value", err.Loc, err.Name)
}

// StackUnderflowError reports an operation called without enough operands.
type StackUnderflowError struct {
	Loc  source.Location
	Op   string
	Need int
	Have int
}

func (err StackUnderflowError) Error() string {
	return fmt.Sprintf("%v: [%v] operation called without at least %v element(s) on stack (have %v)",
		err.Loc, err.Op, err.Need, err.Have)
}

// DomainError reports operands outside of an operation's domain, like the
// factorial of a negative number.
type DomainError struct {
	Loc    source.Location
	Op     string
	Reason string
}

func (err DomainError) Error() string {
	return fmt.Sprintf("%v: [%v] %v", err.Loc, err.Op, err.Reason)
}

// FileAccessError reports an input file that could not be read.
type FileAccessError struct {
	Path string
	Err  error
}

func (err FileAccessError) Error() string {
	return fmt.Sprintf("could not read [%v]: %v", err.Path, err.Err)
}

func (err FileAccessError) Unwrap() error { return err.Err }

// BlockResultError reports a combinator block that left the wrong number of
// values on its working stack.
type BlockResultError struct {
	Loc  source.Location
	Op   string
	Want string
	Have int
}

func (err BlockResultError) Error() string {
	return fmt.Sprintf("%v: [%v] block must leave %v, left %v value(s)", err.Loc, err.Op, err.Want, err.Have)
}

// CallDepthError reports function calls nested deeper than the VM's limit.
type CallDepthError struct {
	Loc   source.Location
	Name  string
	Limit int
}

func (err CallDepthError) Error() string {
	return fmt.Sprintf("%v: call to [%v] exceeds depth limit %v", err.Loc, err.Name, err.Limit)
}

var (
	errNoBlock   = errors.New("combinator called without a preceding [ block ]")
	errNoCombo   = errors.New("block must be followed by map, fold, or scan")
	errStrayElse = errors.New("else without a preceding conditional")
	errStrayFi   = errors.New("fi without a preceding conditional")
)

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }
