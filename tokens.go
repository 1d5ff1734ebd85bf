package main

import (
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jcorbin/gocomp/internal/source"
)

// TokenKind tags what a Token means to the evaluator.
type TokenKind uint8

// Token kinds.
const (
	TokenWord       TokenKind = iota // command, function, or variable name
	TokenNumber                      // numeric literal
	TokenText                        // #text literal
	TokenDefine                      // ( name ... starts a function definition
	TokenEndDefine                   // ) ends a function definition
	TokenBlockOpen                   // [ starts an anonymous block
	TokenBlockClose                  // ] ends an anonymous block
	TokenStore                       // =name stores the top of stack
	TokenMalformed                   // a literal that could not be read
)

var tokenKindNames = [...]string{
	"word",
	"number",
	"text",
	"define",
	"end-define",
	"block-open",
	"block-close",
	"store",
	"malformed",
}

func (kind TokenKind) String() string {
	if int(kind) < len(tokenKindNames) {
		return tokenKindNames[kind]
	}
	return "token(" + strconv.Itoa(int(kind)) + ")"
}

// Token is one tagged element of a program.
type Token struct {
	Kind TokenKind
	Text string  // the word as written
	Name string  // function name for TokenDefine, variable name for TokenStore
	Num  float64 // value of a TokenNumber
	Err  string  // reason a TokenMalformed could not be read
	Loc  source.Location
}

func (tok Token) String() string {
	if tok.Kind == TokenDefine {
		return "( " + tok.Name
	}
	return tok.Text
}

// Comment delimiter pairs; comments nest within the same kind of pair.
var commentPairs = map[string]string{
	"<": ">",
	"{": "}",
}

// Tokenize reads all words from r, tagging each one, and discarding
// comments. It only fails if r does; malformed input is reported when the
// resulting tokens are evaluated.
func Tokenize(r io.Reader) ([]Token, error) {
	return tokenize(source.New(r))
}

// TokenizeString is Tokenize for in-memory text, with locations labeled by
// name.
func TokenizeString(name, text string) []Token {
	toks, _ := tokenize(source.New(source.NamedReader(name, strings.NewReader(text))))
	return toks
}

// TokenizeFile reads and tokenizes the named file, failing with a
// FileAccessError if it cannot be read.
func TokenizeFile(path string) ([]Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, FileAccessError{path, err}
	}
	defer f.Close()
	toks, err := tokenize(source.New(f))
	if err != nil {
		return nil, FileAccessError{path, err}
	}
	return toks, nil
}

func tokenize(src *source.Source) (toks []Token, err error) {
	var closers []string
	for {
		word, loc, err := src.Word()
		if errors.Is(err, io.EOF) {
			return toks, nil
		} else if err != nil {
			return toks, err
		}

		if n := len(closers); n > 0 {
			if word == closers[n-1] {
				closers = closers[:n-1]
			} else if closer, ok := commentPairs[word]; ok {
				closers = append(closers, closer)
			}
			continue
		}
		if closer, ok := commentPairs[word]; ok {
			closers = append(closers, closer)
			continue
		}

		tok := scanToken(word)
		tok.Loc = loc
		if tok.Kind == TokenDefine {
			name, _, err := src.Word()
			if err != nil && !errors.Is(err, io.EOF) {
				return toks, err
			}
			tok.Name = name
		}
		toks = append(toks, tok)
	}
}

func scanToken(word string) Token {
	tok := Token{Kind: TokenWord, Text: word}
	switch word {
	case "(":
		tok.Kind = TokenDefine
		return tok
	case ")":
		tok.Kind = TokenEndDefine
		return tok
	case "[":
		tok.Kind = TokenBlockOpen
		return tok
	case "]":
		tok.Kind = TokenBlockClose
		return tok
	}

	switch word[0] {
	case '=':
		if len(word) == 1 {
			return tok
		}
		tok.Name = word[1:]
		if isNumber(tok.Name) {
			tok.Kind = TokenMalformed
			tok.Err = "variable name must not be a number"
		} else {
			tok.Kind = TokenStore
		}
		return tok
	case '#':
		if len(word) == 1 {
			tok.Kind = TokenMalformed
			tok.Err = "empty text literal"
		} else {
			tok.Kind = TokenText
			tok.Name = word[1:]
		}
		return tok
	}

	if f, err := strconv.ParseFloat(word, 64); err == nil {
		if isFinite(f) {
			tok.Kind = TokenNumber
			tok.Num = f
		}
	} else if errors.Is(err, strconv.ErrRange) {
		tok.Kind = TokenMalformed
		tok.Err = "numeric literal out of range"
	}
	return tok
}

// isNumber returns true if s is a numeric literal. Spellings of infinity
// and NaN are not, leaving words like inf and nan free for names.
func isNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && isFinite(f)
}

func isFinite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }
