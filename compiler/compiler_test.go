package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxrvus/antbyte/parser"
)

func parseFns(t *testing.T, src string) []parser.Function {
	t.Helper()
	world, err := parser.Parse("t.ant", src)
	require.NoError(t, err)
	return world.Functions
}

func TestCompileLeafStatement(t *testing.T) {
	fns := parseFns(t, `fn id = x => y { y = x; }`)
	out, err := Compile(fns)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Statements, 1)
	cs := out[0].Statements[0]
	require.Equal(t, "y", cs.Assignee.Target)
	require.False(t, cs.Assignee.Sign)
	require.Len(t, cs.Args, 1)
	require.Equal(t, "x", cs.Args[0].Target)
}

func TestCompileOrDirect(t *testing.T) {
	fns := parseFns(t, `fn f = (a, b) => c { c = or(a, -b); }`)
	out, err := Compile(fns)
	require.NoError(t, err)
	cs := out[0].Statements[0]
	require.Equal(t, "c", cs.Assignee.Target)
	require.Len(t, cs.Args, 2)
	require.False(t, cs.Args[0].Sign)
	require.True(t, cs.Args[1].Sign)
}

func TestCompileAndDeMorgan(t *testing.T) {
	fns := parseFns(t, `fn f = (a, b) => c { c = and(a, b); }`)
	out, err := Compile(fns)
	require.NoError(t, err)
	cs := out[0].Statements[0]
	require.True(t, cs.Assignee.Sign)
	require.Len(t, cs.Args, 2)
	require.True(t, cs.Args[0].Sign)
	require.True(t, cs.Args[1].Sign)
}

func TestCompileAssigneeSignXor(t *testing.T) {
	fns := parseFns(t, `fn f = x => y { -y = x; }`)
	out, err := Compile(fns)
	require.NoError(t, err)
	require.True(t, out[0].Statements[0].Assignee.Sign)
}

func TestCompileInlineCallWithSignCombination(t *testing.T) {
	fns := parseFns(t, `
		fn buf2 = i => o { o = i; }
		fn main = x => y { y = -buf2(-x); }
	`)
	out, err := Compile(fns)
	require.NoError(t, err)
	require.Len(t, out, 2)
	main := out[1]
	require.Len(t, main.Statements, 1)
	cs := main.Statements[0]
	require.Equal(t, "y", cs.Assignee.Target)
	require.True(t, cs.Assignee.Sign)
	require.Len(t, cs.Args, 1)
	require.Equal(t, "x", cs.Args[0].Target)
	require.True(t, cs.Args[0].Sign)
}

func TestCompilePeripheralsPreservedAcrossInlining(t *testing.T) {
	fns := parseFns(t, `
		fn buf1 = i => o { o = i; }
		ant main = 1 { DX = buf1(CELL_0); }
	`)
	out, err := Compile(fns)
	require.NoError(t, err)
	main := out[len(out)-1]
	cs := main.Statements[0]
	require.Equal(t, "DX", cs.Assignee.Target)
	require.Equal(t, "CELL_0", cs.Args[0].Target)
}

func TestCompileNestedExpressionGetsTemp(t *testing.T) {
	fns := parseFns(t, `
		fn f = (a, b, c) => d { d = or(and(a, b), c); }
	`)
	out, err := Compile(fns)
	require.NoError(t, err)
	// and(a,b) rewrites to or(-a,-b) assigned to a fresh temp with sign true;
	// the outer or then consumes that temp with sign false.
	require.Len(t, out[0].Statements, 2)
	require.Equal(t, "d", out[0].Statements[1].Assignee.Target)
}

func TestCompileUnknownFunctionError(t *testing.T) {
	fns := parseFns(t, `fn f = x => y { y = bogus(x); }`)
	_, err := Compile(fns)
	require.Error(t, err)
}

func TestCompileOverloadArityMismatch(t *testing.T) {
	fns := parseFns(t, `
		fn g = a => b { b = a; }
		fn f = (x, y) => z { z = g(x, y); }
	`)
	_, err := Compile(fns)
	require.Error(t, err)
}

func TestCompileDuplicateAssigneeError(t *testing.T) {
	fns := parseFns(t, `fn f = (a, b) => c { c = a; c = b; }`)
	_, err := Compile(fns)
	require.Error(t, err)
}

func TestCompileDiscardAssigneeIsDropped(t *testing.T) {
	fns := parseFns(t, `fn f = a => _ { _ = a; }`)
	out, err := Compile(fns)
	require.NoError(t, err)
	require.Empty(t, out[0].Statements)
}

func TestCompileMultiAssigneeInline(t *testing.T) {
	fns := parseFns(t, `
		fn split = a => (x, y) { x = a; -y = a; }
		fn main = a => (p, q) { (p, q) = split(a); }
	`)
	out, err := Compile(fns)
	require.NoError(t, err)
	main := out[1]
	require.Len(t, main.Statements, 2)
	var sawP, sawQ bool
	for _, cs := range main.Statements {
		if cs.Assignee.Target == "p" {
			sawP = true
			require.False(t, cs.Assignee.Sign)
		}
		if cs.Assignee.Target == "q" {
			sawQ = true
			require.True(t, cs.Assignee.Sign)
		}
	}
	require.True(t, sawP)
	require.True(t, sawQ)
}
