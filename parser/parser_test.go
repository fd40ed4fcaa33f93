package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSimpleFunction(t *testing.T) {
	src := `fn buf = x => y { y = x; }`
	world, err := Parse("t.ant", src)
	require.NoError(t, err)
	require.Len(t, world.Functions, 1)
	fn := world.Functions[0]
	require.Equal(t, "buf", fn.Signature.Name)
	require.Equal(t, []string{"x"}, fn.Signature.Params)
	require.Equal(t, []string{"y"}, fn.Signature.Assignees)
	require.Len(t, fn.Statements, 1)
	require.Equal(t, "x", fn.Statements[0].Expression.Ident)
	require.False(t, fn.Statements[0].Expression.IsCall())
}

func TestParseAntBindingAndCall(t *testing.T) {
	src := `ant main = 1 { CELL_0 = or(CN0, -CN1); }`
	world, err := Parse("t.ant", src)
	require.NoError(t, err)
	require.Len(t, world.AntBindings, 1)
	require.Equal(t, uint8(1), world.AntBindings[0].ID)
	stmt := world.Functions[0].Statements[0]
	require.True(t, stmt.Expression.IsCall())
	require.Equal(t, "or", stmt.Expression.Ident)
	require.Len(t, stmt.Expression.Params, 2)
	require.True(t, stmt.Expression.Params[1].Sign)
}

func TestParseTupleAssigneesAndParams(t *testing.T) {
	src := `fn split = (a, b) => (c, d) { (c, d) = pass(a, b); }`
	world, err := Parse("t.ant", src)
	require.NoError(t, err)
	fn := world.Functions[0]
	require.Equal(t, []string{"a", "b"}, fn.Signature.Params)
	require.Equal(t, []string{"c", "d"}, fn.Signature.Assignees)
	require.Len(t, fn.Statements[0].Assignees, 2)
}

func TestParseSettingsAndImports(t *testing.T) {
	src := `set width = 16; use "lib/gates.ant"; no_std;`
	world, err := Parse("t.ant", src)
	require.NoError(t, err)
	require.Len(t, world.Settings, 1)
	require.Equal(t, "width", world.Settings[0].Key)
	require.Len(t, world.Imports, 1)
	require.Equal(t, "lib/gates.ant", world.Imports[0].Path)
	require.True(t, world.NoStd)
}

func TestParseUnmatchedParenError(t *testing.T) {
	src := `fn f = x => y { y = or(x, x; }`
	_, err := Parse("t.ant", src)
	require.Error(t, err)
}

func TestParseUnexpectedTokenError(t *testing.T) {
	src := `fn f = x => y { y x; }`
	_, err := Parse("t.ant", src)
	require.Error(t, err)
}

func TestParseDuplicateSignatureIdentifier(t *testing.T) {
	src := `fn f = (x, x) => y { y = x; }`
	_, err := Parse("t.ant", src)
	require.Error(t, err)
}

func TestStemStripsDirAndExtension(t *testing.T) {
	require.Equal(t, "gates", Stem("lib/gates.ant"))
	require.Equal(t, "gates", Stem("gates.ant"))
}
