// Package peripheral defines the typed channels between world state and a
// compiled ant behavior: their bit capacities, I/O roles, per-ant-kind
// restrictions, and the upper-case identifier aliases a world file uses to
// name them (spec.md §3 "Peripheral kinds", §6 "Peripheral identifiers").
// Grounded on original_source/src/ant/peripherals.rs's InputType/OutputType
// enums and cap() tables, and on the teacher's runtime/decorators/registry.go
// for the name-keyed registry shape.
package peripheral

import (
	"strconv"
	"strings"

	"github.com/cxrvus/antbyte/errors"
)

// Kind identifies a peripheral channel. A Kind may be readable, writable, or
// both; IORole below governs which.
type Kind int

const (
	Time Kind = iota
	Cell
	CellNext
	Memory
	Random
	Obstacle
	Direction
	Halted

	CellClear
	MemoryClear
	Hatch
	Kill
	Die
)

func (k Kind) String() string {
	switch k {
	case Time:
		return "Time"
	case Cell:
		return "Cell"
	case CellNext:
		return "CellNext"
	case Memory:
		return "Memory"
	case Random:
		return "Random"
	case Obstacle:
		return "Obstacle"
	case Direction:
		return "Direction"
	case Halted:
		return "Halted"
	case CellClear:
		return "CellClear"
	case MemoryClear:
		return "MemoryClear"
	case Hatch:
		return "Hatch"
	case Kill:
		return "Kill"
	case Die:
		return "Die"
	default:
		return "Unknown"
	}
}

// IORole tells the assembler whether a Kind may be read, written, or
// both (spec.md §3: "its I/O role (input-only, output-only, or either)").
type IORole int

const (
	InputOnly IORole = iota
	OutputOnly
	Either
)

// AntKind distinguishes worker and queen ants for forbidden-peripheral
// checks (spec.md §6 "Worker Only" / "Queen Only").
type AntKind int

const (
	Worker AntKind = iota
	Queen
)

// Cap is the bit capacity of a Kind: Time 8, Cell/CellNext 4, Memory 8,
// Random 8, Obstacle 1, Direction 3, Halted 1; CellClear 1, MemoryClear 1,
// Hatch 4, Kill 1, Die 1. Memory is capped at 8 (not the 16 a wider variant
// of this peripheral carries in original_source/src/ant/peripherals.rs) to
// match spec.md §3's `Ant.memory: u8` field, which cannot address a 16-bit
// value.
func Cap(k Kind) uint8 {
	switch k {
	case Time, Random, Memory:
		return 8
	case Cell, CellNext, Hatch:
		return 4
	case Obstacle, Halted, CellClear, MemoryClear, Kill, Die:
		return 1
	case Direction:
		return 3
	default:
		return 0
	}
}

// Role reports a Kind's I/O direction. Cell and Memory are Either: the same
// alias ("C", "M") names both the input read and the output write spec.md
// §3/§4.6 call "Cell/CellWrite" and "MemoryWrite" — there is no distinct
// write-only identifier for either, so this implementation folds the
// "*Write" output kinds spec.md names into the shared Either kind rather
// than modeling them as separate unreachable Kind values.
func Role(k Kind) IORole {
	switch k {
	case Time, CellNext, Random, Obstacle:
		return InputOnly
	case Cell, Memory, Direction, Halted:
		return Either
	case CellClear, MemoryClear, Hatch, Kill, Die:
		return OutputOnly
	default:
		return InputOnly
	}
}

// Forbidden reports whether kind k, in the given read/write occurrence, may
// not be used by ants of kind ak (spec.md §6: writing Cell/CellClear is
// worker-only, forbidden for queens; Hatch/Kill are queen-only, forbidden
// for workers). Reading Cell is legal for any ant kind; only the write
// occurrence is restricted. Grounded on peripherals.rs's OutputType::is_legal.
func Forbidden(k Kind, written bool, ak AntKind) bool {
	switch ak {
	case Worker:
		return k == Hatch || k == Kill
	case Queen:
		return written && (k == Cell || k == CellClear)
	default:
		return false
	}
}

type alias struct {
	kind   Kind
	output bool // true for the aliases of the output-only kinds (CellClear, MemoryClear, Hatch, Kill, Die)
}

// aliases maps every recognized upper-case prefix to its Kind, per spec.md
// §6's identifier table. A handful (MemoryClear's alias) are not given as
// literal examples in the spec text; those are marked as extension points
// in DESIGN.md per Open Question (c).
var aliases = map[string]alias{
	"C":         {kind: Cell},
	"CELL_":     {kind: Cell},
	"CC":        {kind: CellClear, output: true},
	"CLEAR":     {kind: CellClear, output: true},
	"CN":        {kind: CellNext},
	"NEXT_CELL_": {kind: CellNext},
	"CX":        {kind: Obstacle},
	"OBS":       {kind: Obstacle},
	"OBSTACLE":  {kind: Obstacle},
	"T":         {kind: Time},
	"CLOCK_":    {kind: Time},
	"M":         {kind: Memory},
	"MEM_":      {kind: Memory},
	"MQ":        {kind: MemoryClear, output: true},
	"MEM_CLEAR_": {kind: MemoryClear, output: true},
	"R":         {kind: Random},
	"RAND_":     {kind: Random},
	"D":         {kind: Direction},
	"DIR_":      {kind: Direction},
	"DX":        {kind: Halted},
	"HALT":      {kind: Halted},
	"A":         {kind: Hatch, output: true},
	"SPAWN_":    {kind: Hatch, output: true},
	"AK":        {kind: Kill, output: true},
	"KILL":      {kind: Kill, output: true},
	"AX":        {kind: Die, output: true},
	"DIE":       {kind: Die, output: true},
}

// aliasPrefixes is aliases' keys ordered longest-first so greedy prefix
// matching in Lookup never matches a short alias that is itself a prefix of
// a longer one (e.g. "C" vs "CC" vs "CELL_").
var aliasPrefixes []string

func init() {
	for k := range aliases {
		aliasPrefixes = append(aliasPrefixes, k)
	}
	for i := 1; i < len(aliasPrefixes); i++ {
		for j := i; j > 0 && len(aliasPrefixes[j]) > len(aliasPrefixes[j-1]); j-- {
			aliasPrefixes[j], aliasPrefixes[j-1] = aliasPrefixes[j-1], aliasPrefixes[j]
		}
	}
}

// IsIdent reports whether name is an upper-case peripheral identifier
// rather than a local lower-case variable or temporary (spec.md §3's
// Token casing rule: identifiers are either all-upper-and-digits or
// all-lower-and-digits).
func IsIdent(name string) bool {
	if name == "" || name == "_" {
		return false
	}
	hasUpper, hasLower := false, false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
		if c >= 'a' && c <= 'z' {
			hasLower = true
		}
	}
	return hasUpper && !hasLower
}

// Bit is a resolved peripheral reference: which channel, and which bit of
// it (0 for single-bit peripherals).
type Bit struct {
	Kind     Kind
	BitIndex uint8
}

// Parse resolves an upper-case world-file identifier like "CELL_0", "M3",
// "DX", or "AX" into a Bit, validating bit-index range and single-bit
// peripherals carrying no index (spec.md §4.5 "Peripheral discovery").
func Parse(ident string) (Bit, error) {
	var match string
	for _, prefix := range aliasPrefixes {
		if strings.HasPrefix(ident, prefix) {
			match = prefix
			break
		}
	}
	if match == "" {
		return Bit{}, errors.New(errors.AsmPeriphUnknown,
			"'"+ident+"' is not a recognized peripheral identifier")
	}

	a := aliases[match]
	suffix := ident[len(match):]
	cap := Cap(a.kind)

	if suffix == "" {
		if cap > 1 {
			return Bit{}, errors.New(errors.AsmBitRange,
				"peripheral '"+ident+"' requires a bit index in [0, "+strconv.Itoa(int(cap))+")")
		}
		return Bit{Kind: a.kind, BitIndex: 0}, nil
	}

	if cap <= 1 {
		return Bit{}, errors.New(errors.AsmBitRange,
			"'"+a.kind.String()+"' is a single-bit peripheral and may not carry a bit index (in '"+ident+"')")
	}

	n, err := strconv.ParseUint(suffix, 16, 8)
	if err != nil {
		return Bit{}, errors.New(errors.AsmBitRange,
			"invalid hex bit index '"+suffix+"' in '"+ident+"'")
	}
	if uint8(n) >= cap {
		return Bit{}, errors.New(errors.AsmBitRange,
			"bit index "+suffix+" exceeds capacity "+strconv.Itoa(int(cap))+" (in '"+ident+"')")
	}

	return Bit{Kind: a.kind, BitIndex: uint8(n)}, nil
}
