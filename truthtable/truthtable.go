// Package truthtable holds the flat combinational lookup table an ant's
// compiled behavior reduces to: one output word per possible input
// combination (spec.md §4.5, §3). Grounded on
// original_source/src/truth_table.rs's TruthTable, including its exact
// bounds checks and its Display text format, adopted here as String().
package truthtable

import (
	"fmt"
	"strings"

	"github.com/cxrvus/antbyte/errors"
)

// Table is a dense combinational truth table: Entries[i] is the output word
// produced when the packed input bits equal i.
type Table struct {
	InputCount  uint8
	OutputCount uint8
	Entries     []uint32
}

// New validates and constructs a Table. len(entries) must equal
// 1<<inputBits, outputBits must not exceed 32, and no entry may exceed the
// range representable in outputBits.
func New(inputBits, outputBits int, entries []uint32) (*Table, error) {
	if outputBits > 32 {
		return nil, errors.New(errors.AsmCapacity, "output bit count must not be greater than 32")
	}
	want := 1 << uint(inputBits)
	if len(entries) != want {
		return nil, errors.New(errors.AsmCapacity,
			fmt.Sprintf("entry count must be equal to 1<<input_bits (%d), got %d", want, len(entries))).
			WithContext("input_bits", inputBits)
	}
	limit := uint64(1) << uint(outputBits)
	for i, e := range entries {
		if uint64(e) >= limit {
			return nil, errors.New(errors.AsmCapacity,
				fmt.Sprintf("entry %d at index %d exceeds 1<<output_bits (%d)", e, i, limit))
		}
	}
	return &Table{InputCount: uint8(inputBits), OutputCount: uint8(outputBits), Entries: entries}, nil
}

// Get looks up the output word for a packed input byte; an input past the
// end of Entries (beyond InputCount bits) yields 0.
func (t *Table) Get(input uint8) uint32 {
	if int(input) >= len(t.Entries) {
		return 0
	}
	return t.Entries[input]
}

// String renders the table in the "input => output" binary form used by the
// --debug text dump (spec.md §6), one line per entry.
func (t *Table) String() string {
	var b strings.Builder
	for input, output := range t.Entries {
		fmt.Fprintf(&b, "%0*b => %0*b\n", t.InputCount, input, t.OutputCount, output)
	}
	return b.String()
}
