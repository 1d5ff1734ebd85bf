package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	sgrValue = "\x1b[38;2;0;192;255;1m"
	sgrLevel = "\x1b[38;2;128;128;128m"
	sgrReset = "\x1b[0m"
)

// stackPrinter renders stack values for display, per the user's precision,
// locale, grouping, and color preferences.
type stackPrinter struct {
	config Config
	color  bool
	msg    *message.Printer
}

func newStackPrinter(cfg Config, color bool) (*stackPrinter, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}
	return &stackPrinter{
		config: cfg,
		color:  color && !cfg.Monochrome,
		msg:    message.NewPrinter(tag),
	}, nil
}

func (sp *stackPrinter) format(v Value) string {
	if v.IsText() {
		return v.String()
	}
	f, _ := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return formatFloat(f)
	}
	if sp.config.Precision < 0 && !sp.config.DigitGrouping {
		return formatFloat(f)
	}
	opts := make([]number.Option, 0, 2)
	if sp.config.Precision >= 0 {
		opts = append(opts, number.MaxFractionDigits(sp.config.Precision))
	} else {
		opts = append(opts, number.MaxFractionDigits(fractionDigits(f)))
	}
	if !sp.config.DigitGrouping {
		opts = append(opts, number.NoSeparator())
	}
	return sp.msg.Sprint(number.Decimal(f, opts...))
}

func fractionDigits(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// printStack writes one line per stack entry, bottom first, optionally
// labeled by level.
func (sp *stackPrinter) printStack(w io.Writer, stack []Value) error {
	width := len(strconv.Itoa(len(stack)))
	var sb strings.Builder
	for i, v := range stack {
		if sp.config.ShowStackLevel {
			level := fmt.Sprintf("%*d:", width, len(stack)-i)
			if sp.color {
				level = sgrLevel + level + sgrReset
			}
			sb.WriteString(level)
		}
		sb.WriteString("  ")
		if sp.color {
			sb.WriteString(sgrValue)
			sb.WriteString(sp.format(v))
			sb.WriteString(sgrReset)
		} else {
			sb.WriteString(sp.format(v))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
