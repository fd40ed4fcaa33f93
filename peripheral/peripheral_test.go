package peripheral

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSingleBitPeripheral(t *testing.T) {
	b, err := Parse("DX")
	require.NoError(t, err)
	require.Equal(t, Halted, b.Kind)
	require.EqualValues(t, 0, b.BitIndex)
}

func TestParseMultiBitPeripheral(t *testing.T) {
	b, err := Parse("CELL_3")
	require.NoError(t, err)
	require.Equal(t, Cell, b.Kind)
	require.EqualValues(t, 3, b.BitIndex)
}

func TestParseAcceptsBitIndexAtCapacityBoundary(t *testing.T) {
	// Memory is capped at 8 bits (DESIGN.md: peripheral, "Memory is capped
	// at 8"), so no currently-defined peripheral's bit index ever needs a
	// true hex letter digit; this exercises the highest valid decimal index
	// instead, still going through the same hex-radix parse in Parse.
	b, err := Parse("M7")
	require.NoError(t, err)
	require.Equal(t, Memory, b.Kind)
	require.EqualValues(t, 7, b.BitIndex)

	_, err = Parse("M8")
	require.Error(t, err)
}

func TestParseRejectsIndexOnSingleBit(t *testing.T) {
	_, err := Parse("KILL0")
	require.Error(t, err)
}

func TestParseRequiresIndexOnMultiBit(t *testing.T) {
	_, err := Parse("M")
	require.Error(t, err)
}

func TestParseRejectsOutOfRangeIndex(t *testing.T) {
	_, err := Parse("CELL_9")
	require.Error(t, err)
}

func TestParseRejectsUnknownPeripheral(t *testing.T) {
	_, err := Parse("ZZZ")
	require.Error(t, err)
}

func TestForbiddenRules(t *testing.T) {
	require.True(t, Forbidden(Hatch, true, Worker))
	require.True(t, Forbidden(Kill, true, Worker))
	require.False(t, Forbidden(Die, true, Worker))
	require.True(t, Forbidden(Cell, true, Queen))
	require.False(t, Forbidden(Cell, false, Queen), "reading Cell is legal for a queen")
	require.True(t, Forbidden(CellClear, true, Queen))
	require.False(t, Forbidden(Memory, true, Queen))
}

func TestRoleAssignments(t *testing.T) {
	require.Equal(t, InputOnly, Role(Time))
	require.Equal(t, Either, Role(Cell))
	require.Equal(t, OutputOnly, Role(Hatch))
}
