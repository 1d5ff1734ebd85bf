package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Level names a class of log line, along with the ANSI SGR parameters used
// to highlight its label when color is enabled.
type Level struct {
	Name  string
	Color string
}

// Levels used by the command line front end.
var (
	Error   = Level{"error", "1;38;2;241;95;73"}
	Warning = Level{"warning", "1;38;2;255;252;103"}
	Info    = Level{"", ""}
)

// Logger implements a leveled logging facility around an output stream,
// retaining an exit code for "exit non-zero if anything failed" semantics.
type Logger struct {
	sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	color    bool
	exitCode int
}

// New returns a Logger writing to out; labels are colored if color is true.
func New(out io.Writer, color bool) *Logger {
	return &Logger{output: out, color: color}
}

// SetColor enables or disables label highlighting.
func (log *Logger) SetColor(color bool) {
	log.Lock()
	defer log.Unlock()
	log.color = color
}

// ExitCode returns a code to pass to os.Exit: 0 if nothing failed, 1 after
// any Errorf, 2 if the log output itself failed.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level Level) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like `Printf(Error, ...)` but additionally retains state so
// that ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf(Error, mess, args...); err != nil {
		log.exitCode = 2
	} else if log.exitCode == 0 {
		log.exitCode = 1
	}
}

// Warnf logs a line at the Warning level.
func (log *Logger) Warnf(mess string, args ...interface{}) {
	log.Printf(Warning, mess, args...)
}

// Printf prints a line to the output stream like "  level: message...\n".
func (log *Logger) Printf(level Level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.exitCode = 2
	}
}

func (log *Logger) printf(level Level, mess string, args ...interface{}) error {
	if log.output == nil {
		return nil
	}
	if level.Name != "" {
		log.buf.WriteString("  ")
		if log.color && level.Color != "" {
			fmt.Fprintf(&log.buf, "\x1b[%sm%s\x1b[0m", level.Color, level.Name)
		} else {
			log.buf.WriteString(level.Name)
		}
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.buf.WriteTo(log.output)
	log.buf.Reset()
	return err
}
