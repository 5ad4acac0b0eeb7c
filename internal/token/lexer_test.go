package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLex_TerminatesWithExactlyOneEOF(t *testing.T) {
	t.Parallel()

	toks := Lex("empty.view", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, EOF, toks[0].Kind)

	toks = Lex("x.view", []byte("gtk.Box {}"))
	require.NotEmpty(t, toks)
	assert.Equal(t, EOF, toks[len(toks)-1].Kind)
	for _, tok := range toks[:len(toks)-1] {
		assert.NotEqual(t, EOF, tok.Kind)
	}
}

func TestLex_Punctuation(t *testing.T) {
	t.Parallel()

	toks := Lex("x.view", []byte("#[](){},:.&*->=>="))
	want := []Kind{
		Hash, LBrack, RBrack, LParen, RParen, LBrace, RBrace,
		Comma, Colon, Dot, Amp, Star, Arrow, FatArrow, Assign, EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestLex_Identifiers(t *testing.T) {
	t.Parallel()

	toks := Lex("x.view", []byte("gtk.Box _private mut"))
	require.Len(t, toks, 6)
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, "gtk", toks[0].Text)
	assert.Equal(t, Dot, toks[1].Kind)
	assert.Equal(t, "Box", toks[2].Text)
	assert.Equal(t, "_private", toks[3].Text)
	assert.Equal(t, "mut", toks[4].Text)
}

func TestLex_Numbers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		text  string
	}{
		{"integer", "42", "42"},
		{"float", "3.14", "3.14"},
		{"negative", "-7", "-7"},
		{"negative float", "-0.5", "-0.5"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			toks := Lex("x.view", []byte(tc.input))
			require.GreaterOrEqual(t, len(toks), 2)
			assert.Equal(t, Number, toks[0].Kind)
			assert.Equal(t, tc.text, toks[0].Text)
		})
	}

	// A trailing dot belongs to the path, not the number.
	toks := Lex("x.view", []byte("1.spacing"))
	assert.Equal(t, []Kind{Number, Dot, Ident, EOF}, kinds(toks))
}

func TestLex_Strings(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		toks := Lex("x.view", []byte(`"hello"`))
		require.Equal(t, String, toks[0].Kind)
		assert.Equal(t, "hello", toks[0].Text)
	})

	t.Run("escapes", func(t *testing.T) {
		t.Parallel()
		toks := Lex("x.view", []byte(`"a\nb\t\"c\\"`))
		require.Equal(t, String, toks[0].Kind)
		assert.Equal(t, "a\nb\t\"c\\", toks[0].Text)
	})

	t.Run("unterminated", func(t *testing.T) {
		t.Parallel()
		toks := Lex("x.view", []byte(`"oops`))
		assert.Equal(t, Illegal, toks[0].Kind)
	})

	t.Run("newline terminates", func(t *testing.T) {
		t.Parallel()
		toks := Lex("x.view", []byte("\"oops\nmore"))
		assert.Equal(t, Illegal, toks[0].Kind)
	})
}

func TestLex_Comments(t *testing.T) {
	t.Parallel()

	t.Run("line comments are skipped", func(t *testing.T) {
		t.Parallel()
		toks := Lex("x.view", []byte("// nothing to see\ngtk"))
		assert.Equal(t, []Kind{Ident, EOF}, kinds(toks))
	})

	t.Run("doc comments are tokens", func(t *testing.T) {
		t.Parallel()
		toks := Lex("x.view", []byte("/// The main window.\ngtk"))
		require.Equal(t, DocComment, toks[0].Kind)
		assert.Equal(t, "The main window.", toks[0].Text)
	})
}

func TestLex_Spans(t *testing.T) {
	t.Parallel()

	toks := Lex("x.view", []byte("gtk\n  Box"))
	require.GreaterOrEqual(t, len(toks), 2)

	assert.Equal(t, "x.view", toks[0].Range.Filename)
	assert.Equal(t, 1, toks[0].Range.Start.Line)
	assert.Equal(t, 1, toks[0].Range.Start.Column)
	assert.Equal(t, 2, toks[1].Range.Start.Line)
	assert.Equal(t, 3, toks[1].Range.Start.Column)
	assert.Equal(t, 6, toks[1].Range.Start.Byte)
}
