package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlfrag/internal/ir"
)

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("  \n\t  "))
}

func TestTokenizeWords(t *testing.T) {
	tokens := Tokenize("n  upper\ntrim")
	assert.Equal(t, []string{"n", "upper", "trim"}, ir.Texts(tokens))
	for _, tok := range tokens {
		assert.Equal(t, ir.TokenWord, tok.Kind)
	}
}

func TestTokenizeNamespacedNotSplit(t *testing.T) {
	tests := []string{"sql:date", "SQL:Time", "host:timestamp", "sql:timestamp upper"}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			tokens := Tokenize(in)
			require.NotEmpty(t, tokens)
			assert.Equal(t, ir.TokenNamespaced, tokens[0].Kind)
			assert.Equal(t, strings.Fields(in)[0], tokens[0].Text)
		})
	}
}

func TestTokenizeMarkerAndPlaceholder(t *testing.T) {
	tokens := Tokenize("n round 2 => _ * 100")
	require.Len(t, tokens, 7)

	assert.Equal(t, ir.TokenMarker, tokens[3].Kind)
	assert.Equal(t, ir.TokenPlaceholder, tokens[4].Kind)
	assert.Equal(t, ir.TokenOperator, tokens[5].Kind)
	assert.Equal(t, ir.TokenNumber, tokens[6].Kind)
}

func TestTokenizeUnderscoreInsideWordKeepsWord(t *testing.T) {
	tokens := Tokenize("f as order_total")
	assert.Equal(t, []string{"f", "as", "order_total"}, ir.Texts(tokens))
}

func TestTokenizeCommasStandalone(t *testing.T) {
	tokens := Tokenize("t in a,b , c")
	assert.Equal(t, []string{"t", "in", "a", ",", "b", ",", "c"}, ir.Texts(tokens))
	assert.Equal(t, ir.TokenComma, tokens[3].Kind)
}

func TestTokenizeStrings(t *testing.T) {
	tokens := Tokenize("x = 'it''s here'")
	require.Len(t, tokens, 3)
	assert.Equal(t, ir.TokenString, tokens[2].Kind)
	assert.Equal(t, "'it''s here'", tokens[2].Text)
}

func TestTokenizeDropsSugar(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"n of field round 2", []string{"n", "round", "2"}},
		{"upper IN TABLE", []string{"upper"}},
		{"f of column", []string{"f"}},
		{"in a , b", []string{"in", "a", ",", "b"}},
		{"of", []string{"of"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ir.Texts(Tokenize(tt.in)))
		})
	}
}

func TestTokenizeHelp(t *testing.T) {
	tokens := Tokenize("? commands")
	require.Len(t, tokens, 2)
	assert.Equal(t, ir.TokenHelp, tokens[0].Kind)
	assert.Equal(t, ir.HelpToken, tokens[0].Text)
}

func TestTokenizeNFC(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune.
	tokens := Tokenize("as cafe\u0301")
	require.Len(t, tokens, 2)
	assert.Equal(t, "caf\u00e9", tokens[1].Text)
}

func TestTokenizeNeverFails(t *testing.T) {
	tokens := Tokenize("§ ~ @ #")
	assert.Len(t, tokens, 4)
	for _, tok := range tokens {
		assert.Equal(t, ir.TokenOther, tok.Kind)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "sql:date", Fold("SQL:Date"))
	assert.Equal(t, "t", Fold("T"))
}
