package world

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxrvus/antbyte/linker"
)

func buildState(t *testing.T, src string) *State {
	t.Helper()
	linked, err := linker.Link("t.ant", src, nil)
	require.NoError(t, err)
	props, err := NewProperties(linked)
	require.NoError(t, err)
	return NewState(props)
}

// assertInvariants checks the universal invariants spec.md §8 lists against
// the current state: population cap, occupancy/liveness agreement, no two
// live ants sharing a cell, dir range, and cell-value range for the
// configured color mode.
func assertInvariants(t *testing.T, s *State) {
	t.Helper()
	require.LessOrEqual(t, len(s.Ants), 256)

	seen := map[Pos]bool{}
	for _, a := range s.Ants {
		if a.Status == Dead {
			continue
		}
		require.False(t, seen[a.Pos], "two live ants share position %v", a.Pos)
		seen[a.Pos] = true
		require.Less(t, a.Dir, uint8(8))
	}

	for y := 0; y < int(s.Height); y++ {
		for x := 0; x < int(s.Width); x++ {
			p := Pos{X: x, Y: y}
			require.Equal(t, seen[p], s.isOccupied(p), "occupancy cache disagrees with live ants at %v", p)
		}
	}

	for _, c := range s.Cells {
		if s.Props.Config.Colors == Binary {
			require.Contains(t, []uint8{0, 0xF}, c)
		} else {
			require.Less(t, c, uint8(16))
		}
	}
}

// TestSelfReplicatingWorkerFillsGrid is spec.md §8 scenario 5: one worker
// bound to id 1 whose only statement spawns behavior 1 with a constant bit
// (Hatch places the child one cell behind the parent). The grid is oriented as a single column of 4 cells so the
// ant's default North-facing direction needs no explicit Direction
// statement: the seed ant is pinned at the top edge by Collide and spawns
// a new ant one cell south of itself (and, in turn, of each newly spawned
// ant) every tick until the column is full.
func TestSelfReplicatingWorkerFillsGrid(t *testing.T) {
	s := buildState(t, `no_std;
		set width = 1;
		set height = 4;
		set border = collide;
		set start = top_left;
		ant main = 1 { A0 = -or(); }
	`)

	require.Len(t, s.Ants, 1)
	assertInvariants(t, s)

	more, err := s.Tick()
	require.NoError(t, err)
	require.True(t, more)
	require.Len(t, s.Ants, 2)
	assertInvariants(t, s)

	more, err = s.Tick()
	require.NoError(t, err)
	require.True(t, more)
	require.Len(t, s.Ants, 3)
	assertInvariants(t, s)

	// Tick 3 fills the last cell; tick 4 onward every spawn attempt is
	// either out of bounds (Collide) or lands on an already-occupied cell.
	_, err = s.Tick()
	require.NoError(t, err)
	require.Len(t, s.Ants, 4)
	assertInvariants(t, s)

	for i := 0; i < 3; i++ {
		_, err := s.Tick()
		require.NoError(t, err)
		require.Len(t, s.Ants, 4)
	}
}

// TestMemoryEchoPreservesOnlyWrittenBit is spec.md §8 scenario 6: an ant
// with `M0 = M0;` preserves ant.memory bit 0 across every tick and zeroes
// every other bit, since the Memory output fully overwrites ant.memory and
// only bit 0 is ever driven.
func TestMemoryEchoPreservesOnlyWrittenBit(t *testing.T) {
	s := buildState(t, `no_std;
		set width = 2;
		set height = 2;
		ant main = 1 { M0 = M0; }
	`)
	require.Len(t, s.Ants, 1)

	s.Ants[0].Memory = 0xFF

	_, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, uint8(1), s.Ants[0].Memory)

	_, err = s.Tick()
	require.NoError(t, err)
	require.Equal(t, uint8(1), s.Ants[0].Memory)
}

func TestTickCountTerminatesInclusive(t *testing.T) {
	s := buildState(t, `no_std;
		set width = 4;
		set height = 4;
		set ticks = 2;
		ant main = 1 { D0 = D0; }
	`)

	more, err := s.Tick()
	require.NoError(t, err)
	require.True(t, more)

	more, err = s.Tick()
	require.NoError(t, err)
	require.False(t, more)
	require.EqualValues(t, 2, s.TickCount)
}

func TestWrapBorderDiagonalShift(t *testing.T) {
	cfg := Config{Width: 4, Height: 4, Border: Wrap}
	p, ok := nextPos(Pos{X: 3, Y: 0}, 2, cfg) // East off the right edge
	require.True(t, ok)
	require.Equal(t, Pos{X: 0, Y: 1}, p)
}

func TestCycleBorderWrapsEachAxisIndependently(t *testing.T) {
	cfg := Config{Width: 4, Height: 4, Border: Cycle}
	p, ok := nextPos(Pos{X: 3, Y: 2}, 2, cfg) // East off the right edge
	require.True(t, ok)
	require.Equal(t, Pos{X: 0, Y: 2}, p)
}

func TestCollideBorderStopsAtEdge(t *testing.T) {
	cfg := Config{Width: 4, Height: 4, Border: Collide}
	_, ok := nextPos(Pos{X: 3, Y: 0}, 2, cfg) // East off the right edge
	require.False(t, ok)
}

func TestDespawnBorderDespawnsOnExit(t *testing.T) {
	s := buildState(t, `no_std;
		set width = 1;
		set height = 1;
		set border = despawn;
		set start = top_left;
		ant main = 1 { D0 = D0; }
	`)
	require.Len(t, s.Ants, 1)

	more, err := s.Tick()
	require.NoError(t, err)
	require.False(t, more)
	require.Empty(t, s.Ants)
}
