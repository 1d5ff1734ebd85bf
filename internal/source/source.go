package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Location names a line in a Source input.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Name == "" {
		return fmt.Sprintf("<input>:%v", loc.Line)
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Line combines a Location along with the bytes read so far on it.
type Line struct {
	Location
	bytes.Buffer
}

func (ln *Line) String() string { return fmt.Sprintf("%v %q", ln.Location, ln.Buffer.String()) }

// Source implements sequential rune reading through a Queue of one or more
// input streams. Both the current and last scanned lines are tracked so that
// diagnostics can point at where a word came from.
type Source struct {
	rr    io.RuneReader
	Queue []io.Reader
	Last  Line
	Scan  Line
}

// New returns a Source that reads each of the given readers in turn.
func New(rs ...io.Reader) *Source {
	return &Source{Queue: rs}
}

// ReadRune reads one rune from the current input stream, appending it into
// the current Scan line, and rolling Scan over to Last after line feed.
// Reaching the end of one stream moves on to the next queued one; io.EOF is
// only returned once the queue is drained.
func (src *Source) ReadRune() (rune, int, error) {
	for {
		if src.rr == nil && !src.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := src.rr.ReadRune()
		if n > 0 {
			if r == '\n' {
				src.nextLine()
			} else {
				src.Scan.WriteRune(r)
			}
			return r, n, nil
		}
		if err == io.EOF {
			src.closeIn()
			continue
		}
		return 0, 0, err
	}
}

// Word skips any leading space, then reads runes up to the next space or the
// end of the current stream, returning them along with the location of the
// word's first rune. Returns io.EOF once all input is consumed.
func (src *Source) Word() (word string, loc Location, err error) {
	var sb strings.Builder
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			return "", loc, err
		}
		if !isSpace(r) {
			loc = src.Scan.Location
			sb.WriteRune(r)
			break
		}
	}
	stream := src.rr
	for src.rr == stream {
		r, _, err := src.rr.ReadRune()
		if err == io.EOF {
			src.closeIn()
			break
		} else if err != nil {
			return "", loc, err
		}
		if r == '\n' {
			src.nextLine()
			break
		}
		src.Scan.WriteRune(r)
		if isSpace(r) {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String(), loc, nil
}

func isSpace(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }

func (src *Source) nextLine() {
	src.Last.Reset()
	src.Last.Name = src.Scan.Name
	src.Last.Line = src.Scan.Line
	src.Last.Write(src.Scan.Bytes())
	src.Scan.Reset()
	src.Scan.Line++
}

func (src *Source) closeIn() {
	if src.Scan.Len() > 0 {
		src.nextLine()
	}
	if cl, ok := src.rr.(io.Closer); ok {
		cl.Close()
	}
	src.rr = nil
}

func (src *Source) nextIn() bool {
	if len(src.Queue) == 0 {
		return false
	}
	r := src.Queue[0]
	src.Queue = src.Queue[1:]
	src.rr = newRuneReader(r)
	src.Scan.Reset()
	src.Scan.Name = NameOf(r)
	src.Scan.Line = 1
	return true
}

// NameOf returns the Name() of obj if it has one, otherwise a placeholder
// naming its type.
func NameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

// NamedReader attaches a Name to an io.Reader, so that locations read from
// it are labeled, e.g. "<args>" or "<repl>".
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func newRuneReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	if nr, ok := r.(namedReader); ok {
		if rr, ok := nr.Reader.(io.RuneReader); ok {
			return rr
		}
		return bufio.NewReader(nr.Reader)
	}
	return runeReadCloser{bufio.NewReader(r), r}
}

type runeReadCloser struct {
	*bufio.Reader
	under io.Reader
}

func (rrc runeReadCloser) Close() error {
	if cl, ok := rrc.under.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
