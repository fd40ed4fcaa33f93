package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeBasicFunction(t *testing.T) {
	src := `fn main = x => y { y = x; }`
	tokens, err := Tokenize("t.ant", src)
	require.NoError(t, err)
	require.Equal(t, []Kind{
		KeywordFn, Ident, Assign, Ident, Arrow, Ident, LBrace,
		Ident, Assign, Ident, Semicolon, RBrace, EOF,
	}, kinds(tokens))
}

func TestTokenizeSignsAndAnt(t *testing.T) {
	src := `ant main = 1 { -a = or(b, -c); }`
	tokens, err := Tokenize("t.ant", src)
	require.NoError(t, err)
	require.Equal(t, KeywordAnt, tokens[0].Kind)
	require.Equal(t, Number, tokens[3].Kind)
	require.EqualValues(t, 1, tokens[3].Number)
	require.Equal(t, Sign, tokens[5].Kind)
	require.True(t, tokens[5].Negate)
}

func TestTokenizeCommentsAreSkipped(t *testing.T) {
	src := "# a whole comment line\nfn main = x => y { y = x; } # trailing\n"
	tokens, err := Tokenize("t.ant", src)
	require.NoError(t, err)
	require.Equal(t, KeywordFn, tokens[0].Kind)
}

func TestTokenizeUseAndNoStd(t *testing.T) {
	src := `use "lib/foo.ant"; no_std;`
	tokens, err := Tokenize("t.ant", src)
	require.NoError(t, err)
	require.Equal(t, []Kind{KeywordUse, String, Semicolon, KeywordNoStd, Semicolon, EOF}, kinds(tokens))
	require.Equal(t, "lib/foo.ant", tokens[1].Text)
}

func TestTokenizeRejectsMixedCaseIdentifier(t *testing.T) {
	_, err := Tokenize("t.ant", `set Width = 4;`)
	require.Error(t, err)
}

func TestTokenizeRejectsUnknownCharacter(t *testing.T) {
	_, err := Tokenize("t.ant", `fn main = x => y { y = x & 1; }`)
	require.Error(t, err)
}

func TestTokenizeNumberClamp(t *testing.T) {
	_, err := Tokenize("t.ant", `set width = 1000;`)
	require.Error(t, err)
}

func TestTokenizeDiscardIdent(t *testing.T) {
	tokens, err := Tokenize("t.ant", `fn f = x => _ { _ = x; }`)
	require.NoError(t, err)
	require.Equal(t, "_", tokens[5].Text)
}

func TestTokenizeUpperIdentPeripheral(t *testing.T) {
	tokens, err := Tokenize("t.ant", `ant main = 1 { MX = M0; }`)
	require.NoError(t, err)
	require.Equal(t, "MX", tokens[5].Text)
	require.Equal(t, "M0", tokens[7].Text)
}
