package world

import (
	"github.com/cxrvus/antbyte/assembler"
	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/peripheral"
)

// outputApplyOrder is the fixed order spec.md §4.6 step 4 lists for
// applying a tick's accumulated output values — not the declaration order
// of peripheral.Kind itself, which groups kinds by input/output role
// rather than by application sequence (see DESIGN.md: world, "Output apply
// order").
var outputApplyOrder = []peripheral.Kind{
	peripheral.Direction,
	peripheral.Halted,
	peripheral.Cell,
	peripheral.CellClear,
	peripheral.Memory,
	peripheral.MemoryClear,
	peripheral.Hatch,
	peripheral.Kill,
	peripheral.Die,
}

// Tick advances the simulation by one step (spec.md §4.6 "Tick"): every
// currently-alive ant runs against the live, mutating State (not a
// snapshot — an ant can see an earlier ant's moves/spawns/kills within the
// same tick), then every surviving ant ages and the dead are swept out.
// Returns false once the run should stop (no ants remain, or the
// configured tick budget is exhausted).
func (s *State) Tick() (bool, error) {
	s.TickCount++

	snapshot := s.Ants
	for _, a := range snapshot {
		if a.Status == Dead {
			continue
		}
		if err := s.antTick(a); err != nil {
			return false, err
		}
	}

	live := s.Ants[:0]
	for _, a := range s.Ants {
		if a.Status == Dead {
			continue
		}
		ageUp(a)
		live = append(live, a)
	}
	s.Ants = live

	if len(s.Ants) == 0 {
		return false, nil
	}
	if s.Props.Config.Ticks != nil && s.TickCount >= uint64(*s.Props.Config.Ticks) {
		return false, nil
	}
	return true, nil
}

// antTick runs one ant's behavior once: gather inputs, look up the output
// word, dispatch and apply it, then attempt the move step (spec.md §4.6
// "Ant tick").
func (s *State) antTick(a *Ant) error {
	b := s.Props.Behaviors[a.BehaviorID]
	if b == nil {
		return errors.New(errors.WorldNoEntry,
			"ant is bound to an unpopulated behavior id").WithContext("id", a.BehaviorID)
	}

	np, npOK := nextPos(a.Pos, a.Dir, s.Props.Config)

	inputWord := s.readInput(a, b, np, npOK)
	outputWord := b.Logic.Get(inputWord)

	values := s.accumulateOutputs(b, outputWord)
	s.applyOutputs(a, values)

	if a.Status != Dead && !a.Halted {
		mp, mpOK := nextPos(a.Pos, a.Dir, s.Props.Config)
		if mpOK && !s.isOccupied(mp) {
			s.occupy(a.Pos, false)
			a.Pos = mp
			s.occupy(a.Pos, true)
		} else if !mpOK && s.Props.Config.Border == Despawn {
			s.die(a)
		}
	}

	return nil
}

// readInput gathers the ant's input peripherals into a packed word in the
// exact bit order simulate() used to build the truth table: iterating
// Inputs in declared order, shifting the accumulator left and OR-ing in
// each new bit. Inputs is in reverse discovery order, so the
// last-discovered peripheral ends up at the most significant bit and the
// first-discovered at the least (spec.md §4.6 step 1; see DESIGN.md:
// world, "Input/output bit ordering").
func (s *State) readInput(a *Ant, b *assembler.Behavior, np Pos, npOK bool) uint8 {
	var word uint8
	for _, in := range b.Inputs {
		var v uint8
		switch in.Kind {
		case peripheral.Time:
			v = uint8(a.Age)
		case peripheral.Cell:
			v = s.cellAt(a.Pos)
		case peripheral.CellNext:
			if npOK {
				v = s.cellAt(np)
			}
		case peripheral.Memory:
			v = a.Memory
		case peripheral.Random:
			v = s.rng.nextByte()
		case peripheral.Obstacle:
			if !npOK || s.isOccupied(np) {
				v = 1
			}
		case peripheral.Direction:
			v = a.Dir
		case peripheral.Halted:
			if a.Halted {
				v = 1
			}
		}
		bit := (v >> in.BitIndex) & 1
		word = word<<1 | bit
	}
	return word
}

// accumulateOutputs unpacks outputWord's bits into one accumulated byte
// value per output peripheral kind (spec.md §4.6 step 3): output bit i
// (least significant first) is Outputs[i]'s declared bit index, OR-ed into
// that kind's running value.
func (s *State) accumulateOutputs(b *assembler.Behavior, outputWord uint32) map[peripheral.Kind]uint8 {
	values := map[peripheral.Kind]uint8{}
	for i, out := range b.Outputs {
		bit := uint8(outputWord>>uint(i)) & 1
		values[out.Kind] |= bit << out.BitIndex
	}
	return values
}

// applyOutputs applies this tick's accumulated output values to ant in the
// fixed order spec.md §4.6 step 4 mandates, consulting only the kinds this
// ant's behavior actually wrote.
func (s *State) applyOutputs(a *Ant, values map[peripheral.Kind]uint8) {
	for _, kind := range outputApplyOrder {
		v, wrote := values[kind]
		if !wrote {
			continue
		}

		switch kind {
		case peripheral.Direction:
			a.Dir = (a.Dir + v) % 8
		case peripheral.Halted:
			a.Halted = v != 0
		case peripheral.Cell:
			if v != 0 {
				s.setCellAt(a.Pos, adjustedColor(s.Props.Config.Colors, v))
			}
		case peripheral.CellClear:
			if v == 1 {
				s.setCellAt(a.Pos, 0)
			}
		case peripheral.Memory:
			a.Memory = v
		case peripheral.MemoryClear:
			if v == 1 {
				a.Memory = 0
			}
		case peripheral.Hatch:
			if v != 0 {
				s.reproduce(a, v)
			}
		case peripheral.Kill:
			if v == 1 {
				if np, ok := nextPos(a.Pos, a.Dir, s.Props.Config); ok {
					s.killAt(np)
				}
			}
		case peripheral.Die:
			if v == 1 {
				s.die(a)
			}
		}
	}
}

// reproduce spawns a new ant bound to behaviorID one step ahead of a, as if
// a had turned to face backward (spec.md §4.6 step 4, `Spawn/Hatch`).
//
// spec.md's own prose reads "behavior[v-1] exists", but that contradicts
// the literal expectation of its own scenario 5 (DESIGN.md: world,
// "Hatch/Spawn behavior id"): a single constant-bit Hatch value (v=1) must
// spawn the self-same entry-point behavior (id 1), which only works if v is
// used directly as the behavior id. This implementation does that,
// following original_source/src/ant/world/ant_tick.rs's `reproduce` over
// spec.md's literal (but internally inconsistent) offset.
func (s *State) reproduce(a *Ant, behaviorID uint8) {
	if s.Props.Behaviors[behaviorID] == nil {
		return
	}

	flipped := (a.Dir + 4) % 8
	np, ok := nextPos(a.Pos, flipped, s.Props.Config)
	if !ok {
		return
	}

	child := &Ant{
		BehaviorID: behaviorID,
		Pos:        np,
		Dir:        a.Dir,
		Status:     Newborn,
	}
	s.spawn(child)
}

// adjustedColor collapses any nonzero value to the single "lit" color in
// Binary mode; RGBI stores the value as-is (spec.md §4.6 step 4).
func adjustedColor(mode ColorMode, v uint8) uint8 {
	if mode == Binary {
		return 0xF
	}
	return v
}
