package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tokenize(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		kinds []TokenKind
		texts []string
	}{
		{
			name:  "numbers and words",
			input: "1 -2.5 1e3 + dup",
			kinds: []TokenKind{TokenNumber, TokenNumber, TokenNumber, TokenWord, TokenWord},
			texts: []string{"1", "-2.5", "1e3", "+", "dup"},
		},
		{
			name:  "definition",
			input: "( sq dup x )",
			kinds: []TokenKind{TokenDefine, TokenWord, TokenWord, TokenEndDefine},
			texts: []string{"( sq", "dup", "x", ")"},
		},
		{
			name:  "block",
			input: "[ + ] fold",
			kinds: []TokenKind{TokenBlockOpen, TokenWord, TokenBlockClose, TokenWord},
			texts: []string{"[", "+", "]", "fold"},
		},
		{
			name:  "attached brackets are words",
			input: "[+ x)",
			kinds: []TokenKind{TokenWord, TokenWord},
			texts: []string{"[+", "x)"},
		},
		{
			name:  "store and text",
			input: "=x #ff = #",
			kinds: []TokenKind{TokenStore, TokenText, TokenWord, TokenMalformed},
			texts: []string{"=x", "#ff", "=", "#"},
		},
		{
			name:  "comments",
			input: "1 < a < b > c > 2 { d { e } } 3 < x } > 4",
			kinds: []TokenKind{TokenNumber, TokenNumber, TokenNumber, TokenNumber},
			texts: []string{"1", "2", "3", "4"},
		},
		{
			name:  "out of range",
			input: "1e400",
			kinds: []TokenKind{TokenMalformed},
			texts: []string{"1e400"},
		},
		{
			name:  "infinity and nan are words",
			input: "inf -Inf nan infinity =inf",
			kinds: []TokenKind{TokenWord, TokenWord, TokenWord, TokenWord, TokenStore},
			texts: []string{"inf", "-Inf", "nan", "infinity", "=inf"},
		},
		{
			name:  "multiline",
			input: "1\n\t2\r\n  3  \n",
			kinds: []TokenKind{TokenNumber, TokenNumber, TokenNumber},
			texts: []string{"1", "2", "3"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := Tokenize(strings.NewReader(tc.input))
			require.NoError(t, err)
			var kinds []TokenKind
			var texts []string
			for _, tok := range toks {
				kinds = append(kinds, tok.Kind)
				texts = append(texts, tok.String())
			}
			assert.Equal(t, tc.kinds, kinds, "expected token kinds")
			assert.Equal(t, tc.texts, texts, "expected token texts")
		})
	}
}

func Test_TokenizeString_locations(t *testing.T) {
	toks := TokenizeString("prog", "1 2\n( f\n  dup )\n\n#x")
	var locs []string
	for _, tok := range toks {
		locs = append(locs, tok.Loc.String())
	}
	assert.Equal(t, []string{"prog:1", "prog:1", "prog:2", "prog:3", "prog:3", "prog:5"}, locs)
	assert.Equal(t, "f", toks[2].Name)
	assert.Equal(t, "x", toks[5].Name)
	assert.Equal(t, 2.0, toks[1].Num)
}

func Test_TokenizeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.comp")
	require.NoError(t, os.WriteFile(path, []byte("3 4 +\npln\n"), 0o644))

	toks, err := TokenizeFile(path)
	require.NoError(t, err)
	if assert.Len(t, toks, 4) {
		assert.Equal(t, path+":2", toks[3].Loc.String())
	}

	_, err = TokenizeFile(filepath.Join(dir, "missing.comp"))
	var fae FileAccessError
	require.True(t, errors.As(err, &fae), "expected FileAccessError, got %v", err)
	assert.Equal(t, filepath.Join(dir, "missing.comp"), fae.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func Test_TokenKind_String(t *testing.T) {
	assert.Equal(t, "block-open", TokenBlockOpen.String())
	assert.Equal(t, "malformed", TokenMalformed.String())
	assert.Equal(t, "token(99)", TokenKind(99).String())
}
