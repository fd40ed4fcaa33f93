package world

// Cache + list duality (spec.md §9 "Cache invariant"): Occupied must stay
// in exact sync with the set of live ants. spawn/killAt/die and the move
// step in antTick (tick.go) are the only mutation sites and each updates
// both sides together.

func (s *State) isOccupied(p Pos) bool {
	return s.Occupied[s.index(p)]
}

func (s *State) occupy(p Pos, v bool) {
	s.Occupied[s.index(p)] = v
}

// spawn appends ant to the population if there is room and its cell is
// free, silently dropping it otherwise (spec.md §4.6 "Spawn primitive").
func (s *State) spawn(ant *Ant) {
	if len(s.Ants) >= 256 || s.isOccupied(ant.Pos) {
		return
	}
	s.Ants = append(s.Ants, ant)
	s.occupy(ant.Pos, true)
}

// antAt returns the live ant occupying p, if any.
func (s *State) antAt(p Pos) *Ant {
	if !s.isOccupied(p) {
		return nil
	}
	for _, a := range s.Ants {
		if a.Status != Dead && a.Pos == p {
			return a
		}
	}
	return nil
}

// killAt marks the ant at p (if any) dead and clears its occupancy
// (spec.md §4.6 step 4, `Kill(1)`).
func (s *State) killAt(p Pos) {
	if a := s.antAt(p); a != nil {
		s.die(a)
	}
}

// die marks ant dead and clears its occupancy (spec.md §4.6 step 4,
// `Die(1)`, and the move step's Despawn case).
func (s *State) die(ant *Ant) {
	if ant.Status == Dead {
		return
	}
	ant.Status = Dead
	s.occupy(ant.Pos, false)
}
