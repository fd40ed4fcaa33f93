package assembler

import (
	"github.com/cxrvus/antbyte/compiler"
	"github.com/cxrvus/antbyte/truthtable"
)

// simulate runs stmts over every possible input combination and packs the
// results into a TruthTable (spec.md §4.5 "Straight-line simulation").
// inputNames and outputNames are the discovery-order renamed peripheral
// variables; bit 0 of the packed input/output word is each list's first
// entry.
func simulate(stmts []compiler.CompositeStatement, inputNames, outputNames []string) (*truthtable.Table, error) {
	entries := make([]uint32, 1<<uint(len(inputNames)))
	for input := range entries {
		entries[input] = tick(stmts, inputNames, outputNames, uint8(input))
	}
	return truthtable.New(len(inputNames), len(outputNames), entries)
}

// tick evaluates stmts once against the scalar environment implied by
// input, returning the packed output word. Each composite statement's
// assignee is the sign-adjusted OR of its sign-adjusted arguments,
// short-circuiting as soon as one argument evaluates true (spec.md §4.4
// "Composite statement": zero arguments yields the constant false).
func tick(stmts []compiler.CompositeStatement, inputNames, outputNames []string, input uint8) uint32 {
	env := map[string]bool{}
	for i, name := range inputNames {
		env[name] = input>>uint(i)&1 == 1
	}

	for _, cs := range stmts {
		value := cs.Assignee.Sign
		for _, arg := range cs.Args {
			if arg.Sign != env[arg.Target] {
				value = !cs.Assignee.Sign
				break
			}
		}
		env[cs.Assignee.Target] = value
	}

	var word uint32
	for i, name := range outputNames {
		if env[name] {
			word |= 1 << uint(i)
		}
	}
	return word
}
