package linker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkIncludesStdlibByDefault(t *testing.T) {
	src := `fn main = x => y { y = buf(x); }`
	linked, err := Link("world.ant", src, nil)
	require.NoError(t, err)

	var found bool
	for _, fn := range linked.Functions {
		if fn.Signature.Name == "and" {
			found = true
		}
	}
	require.True(t, found, "expected stdlib's 'and' to be linked in by default")
	require.Equal(t, "main", linked.Functions[len(linked.Functions)-1].Signature.Name)
}

func TestLinkNoStdOmitsStdlib(t *testing.T) {
	src := `no_std; fn f = x => y { y = x; }`
	linked, err := Link("world.ant", src, nil)
	require.NoError(t, err)
	for _, fn := range linked.Functions {
		require.NotEqual(t, "and", fn.Signature.Name)
	}
}

func TestLinkResolvesImportsDepthFirst(t *testing.T) {
	files := map[string]string{
		"lib/gates.ant": `fn dbl = x => y { y = or(x, x); }`,
	}
	load := func(p string) (string, error) { return files[p], nil }

	src := `use "lib/gates.ant"; fn f = x => y { y = dbl(x); }`
	linked, err := Link("world.ant", src, load)
	require.NoError(t, err)

	var sawDbl bool
	for _, fn := range linked.Functions {
		if fn.Signature.Name == "dbl" {
			sawDbl = true
		}
	}
	require.True(t, sawDbl)
}

func TestLinkRenamesImportedMain(t *testing.T) {
	files := map[string]string{
		"lib/counter.ant": `fn main = x => y { y = helper(x); } fn helper = x => y { y = x; }`,
	}
	load := func(p string) (string, error) { return files[p], nil }

	src := `use "lib/counter.ant"; fn f = x => y { y = counter(x); }`
	linked, err := Link("world.ant", src, load)
	require.NoError(t, err)

	var sawCounter, sawMain bool
	for _, fn := range linked.Functions {
		if fn.Signature.Name == "counter" {
			sawCounter = true
		}
		if fn.Signature.Name == "main" && fn.File != "world.ant" {
			sawMain = true
		}
	}
	require.True(t, sawCounter, "imported main should be renamed to the file stem")
	require.False(t, sawMain, "no residual 'main' should survive from the imported file")
}

func TestLinkDetectsCycle(t *testing.T) {
	files := map[string]string{
		"a.ant": `use "b.ant"; fn fa = x => y { y = x; }`,
		"b.ant": `use "a.ant"; fn fb = x => y { y = x; }`,
	}
	load := func(p string) (string, error) { return files[p], nil }

	src := `use "a.ant"; fn f = x => y { y = x; }`
	_, err := Link("world.ant", src, load)
	require.Error(t, err)
}

func TestLinkRejectsNonAntExtension(t *testing.T) {
	load := func(p string) (string, error) { return "", nil }
	src := `use "lib/gates.txt"; fn f = x => y { y = x; }`
	_, err := Link("world.ant", src, load)
	require.Error(t, err)
}

func TestLinkRejectsNonSnakeCaseName(t *testing.T) {
	load := func(p string) (string, error) { return "", nil }
	src := `use "lib/Gates.ant"; fn f = x => y { y = x; }`
	_, err := Link("world.ant", src, load)
	require.Error(t, err)
}

func TestLinkLoadsEachFileOnce(t *testing.T) {
	calls := 0
	files := map[string]string{
		"shared.ant": `fn shared_fn = x => y { y = x; }`,
	}
	load := func(p string) (string, error) {
		calls++
		return files[p], nil
	}

	src := `use "shared.ant"; use "shared.ant"; fn f = x => y { y = x; }`
	_, err := Link("world.ant", src, load)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}
