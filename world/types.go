package world

import (
	"github.com/cxrvus/antbyte/assembler"
)

// AntStatus tracks an ant's place in its lifecycle (spec.md §3 "Ant",
// §4.6 "World construction"/"Tick"): Newborn for the tick it was spawned
// in, Alive from its first age-up onward, Dead once it is removed from
// the population at the end of a tick.
type AntStatus int

const (
	Newborn AntStatus = iota
	Alive
	Dead
)

// Pos is a grid coordinate. Both axes are signed during border-mode
// arithmetic (a Collide/Despawn step can momentarily go negative before
// being rejected), so Pos carries int rather than the unsigned width/height
// types Config uses.
type Pos struct {
	X, Y int
}

// Ant is one simulated actor (spec.md §3 "Ant"). Dir is 0..7, one of the
// eight compass directions in clockwise order starting at North. Halted is
// tracked separately from Status: a halted ant is still Alive, it simply
// skips the move step (spec.md §4.6 step 5).
type Ant struct {
	BehaviorID uint8
	Status     AntStatus
	Pos        Pos
	Dir        uint8
	Halted     bool
	Memory     uint8
	Age        uint32
}

// Properties is the resolved, ready-to-run form of a linked world: its
// compiled behaviors indexed by the ant id a Hatch/Spawn output or an
// ant-binding statement names — index i is the behavior bound to id i,
// index 1 must be populated (spec.md §3 "WorldProperties") — plus the
// configuration the tick engine reads every step.
type Properties struct {
	Config    Config
	Behaviors [256]*assembler.Behavior
}

// State is the live, mutable simulation (spec.md §3 "WorldState"):
// the grid, the ant set and its occupancy cache, the shared per-tick
// random source, and the running tick count.
type State struct {
	Props *Properties

	Width, Height uint32
	Cells         []uint8
	Occupied      []bool
	Ants          []*Ant

	TickCount uint64
	rng       randSource
}

func (s *State) index(p Pos) int {
	return p.Y*int(s.Width) + p.X
}

func (s *State) cellAt(p Pos) uint8 {
	return s.Cells[s.index(p)]
}

func (s *State) setCellAt(p Pos, v uint8) {
	s.Cells[s.index(p)] = v
}

func (s *State) inBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && uint32(p.X) < s.Width && uint32(p.Y) < s.Height
}
