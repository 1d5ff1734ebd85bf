package main

import (
	"math"
	"strconv"
	"strings"
)

// Value is one stack cell: a float64, or a piece of text produced by a radix
// or color conversion or written as a #text literal.
type Value struct {
	num    float64
	text   string
	isText bool
}

// Num returns a numeric Value.
func Num(f float64) Value { return Value{num: f} }

// Text returns a text Value.
func Text(s string) Value { return Value{text: s, isText: true} }

// IsText returns true if v holds text rather than a number.
func (v Value) IsText() bool { return v.isText }

// Float returns the numeric content of v; text cells are parsed, reporting
// false if they do not hold a number.
func (v Value) Float() (float64, bool) {
	if !v.isText {
		return v.num, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	return f, err == nil
}

// String returns the text of a text cell, or the shortest decimal form of a
// number.
func (v Value) String() string {
	if v.isText {
		return v.text
	}
	return formatFloat(v.num)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Values returns numeric Values for each of fs.
func Values(fs ...float64) []Value {
	vs := make([]Value, len(fs))
	for i, f := range fs {
		vs[i] = Num(f)
	}
	return vs
}
