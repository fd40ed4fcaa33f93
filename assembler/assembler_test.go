package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxrvus/antbyte/compiler"
	"github.com/cxrvus/antbyte/linker"
	"github.com/cxrvus/antbyte/parser"
)

func linkAndCompile(t *testing.T, src string) []compiler.Function {
	t.Helper()
	linked, err := linker.Link("t.ant", src, nil)
	require.NoError(t, err)
	out, err := compiler.Compile(linked.Functions)
	require.NoError(t, err)
	return out
}

func findFunc(t *testing.T, fns []compiler.Function, name string, paramCount int) compiler.Function {
	t.Helper()
	for _, fn := range fns {
		if fn.Signature.Name == name && len(fn.Signature.Params) == paramCount {
			return fn
		}
	}
	t.Fatalf("no compiled function named %q with %d param(s)", name, paramCount)
	return compiler.Function{}
}

// These cases exercise the compiler+simulation pipeline's arithmetic
// directly, the way original_source's CompFunc::simulate/tick is generic
// over any signature — not routed through peripheral discovery, since
// spec.md §8 scenarios 1-4 use plain lower-case signatures that are never
// themselves ant-bound (see DESIGN.md: ant-binding behavior resolution).
func TestSimulateIdentity(t *testing.T) {
	fns := linkAndCompile(t, `fn main = x => y { y = x; }`)
	fn := findFunc(t, fns, "main", 1)
	table, err := simulate(fn.Statements, fn.Signature.Params, fn.Signature.Assignees)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, table.Entries)
}

func TestSimulateAndViaStdlib(t *testing.T) {
	fns := linkAndCompile(t, `fn main = (a,b) => c { c = and(a,b); }`)
	fn := findFunc(t, fns, "main", 2)
	table, err := simulate(fn.Statements, fn.Signature.Params, fn.Signature.Assignees)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0, 0, 1}, table.Entries)
}

func TestSimulateXorViaStdlib(t *testing.T) {
	fns := linkAndCompile(t, `fn main = (a,b) => c { c = xor(a,b); }`)
	fn := findFunc(t, fns, "main", 2)
	table, err := simulate(fn.Statements, fn.Signature.Params, fn.Signature.Assignees)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 1, 0}, table.Entries)
}

func TestSimulateHalfAdderViaStdlib(t *testing.T) {
	fns := linkAndCompile(t, `fn main = (a,b) => (sum, cout) { (sum, cout) = add(a, b); }`)
	fn := findFunc(t, fns, "main", 2)
	table, err := simulate(fn.Statements, fn.Signature.Params, fn.Signature.Assignees)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 1, 2}, table.Entries)
}

func TestAssembleAntBoundReadsAndWritesPeripherals(t *testing.T) {
	fns := linkAndCompile(t, `no_std; ant main = 1 { D0 = CELL_0; }`)
	fn := findFunc(t, fns, "main", 0)
	b, err := Assemble(fn)
	require.NoError(t, err)
	require.Len(t, b.Inputs, 1)
	require.Len(t, b.Outputs, 1)
	require.Equal(t, uint32(1), b.Logic.Get(1))
	require.Equal(t, uint32(0), b.Logic.Get(0))
}

func TestAssembleMemoryEcho(t *testing.T) {
	fns := linkAndCompile(t, `no_std; ant main = 1 { M0 = M0; }`)
	fn := findFunc(t, fns, "main", 0)
	b, err := Assemble(fn)
	require.NoError(t, err)
	require.Len(t, b.Inputs, 1)
	require.Len(t, b.Outputs, 1)
	require.Equal(t, uint32(0), b.Logic.Get(0))
	require.Equal(t, uint32(1), b.Logic.Get(1))
}

func TestAssembleRejectsWriteToInputOnlyPeripheral(t *testing.T) {
	fns := linkAndCompile(t, `no_std; ant main = 1 { T0 = D0; }`)
	fn := findFunc(t, fns, "main", 0)
	_, err := Assemble(fn)
	require.Error(t, err)
}

func TestAssembleRejectsReadOfOutputOnlyPeripheral(t *testing.T) {
	fns := linkAndCompile(t, `no_std; ant main = 1 { D0 = AX; }`)
	fn := findFunc(t, fns, "main", 0)
	_, err := Assemble(fn)
	require.Error(t, err)
}

func TestAssembleRejectsMixedWorkerQueenOutputs(t *testing.T) {
	fns := linkAndCompile(t, `no_std; ant main = 1 { CC = D0; A0 = D0; }`)
	fn := findFunc(t, fns, "main", 0)
	_, err := Assemble(fn)
	require.Error(t, err)
}

func TestAssembleReusesOutputBindingOnLaterRead(t *testing.T) {
	fns := linkAndCompile(t, `no_std; ant main = 1 { A0 = D0; D1 = A0; }`)
	fn := findFunc(t, fns, "main", 0)
	b, err := Assemble(fn)
	require.NoError(t, err)
	// A0 is written then re-read; the re-read must not register as a
	// second distinct input.
	require.Len(t, b.Inputs, 1)
	require.Len(t, b.Outputs, 2)
}

func TestAssembleRejectsTooManyInputs(t *testing.T) {
	// Nine distinct output identifiers (so the compiler's own
	// duplicate-assignee check doesn't fire first), reading eight distinct
	// Memory bits plus one Obstacle bit, to push the discovered input count
	// past the 8-bit cap.
	fns := linkAndCompile(t, `no_std; ant main = 1 {
		C0 = M0; C1 = M1; C2 = M2; C3 = M3;
		D0 = M4; D1 = M5; D2 = M6;
		CC = M7; MQ = CX;
	}`)
	fn := findFunc(t, fns, "main", 0)
	_, err := Assemble(fn)
	require.Error(t, err)
}
