package world

import (
	"github.com/golang/glog"

	"github.com/cxrvus/antbyte/assembler"
	"github.com/cxrvus/antbyte/compiler"
	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/linker"
)

// resolveBinding picks the compiled function an AntBinding assembles into
// (DESIGN.md: "ant-binding behavior resolution"). Only same-named
// functions with no parameters and no assignees are considered: the first
// of them in compiled order with a non-empty statement list, or the first
// of them at all if every one is empty.
func resolveBinding(name string, compiled []compiler.Function) (compiler.Function, bool) {
	var fallback compiler.Function
	haveFallback := false

	for _, fn := range compiled {
		if fn.Signature.Name != name || len(fn.Signature.Params) != 0 || len(fn.Signature.Assignees) != 0 {
			continue
		}
		if !haveFallback {
			fallback, haveFallback = fn, true
		}
		if len(fn.Statements) > 0 {
			return fn, true
		}
	}

	return fallback, haveFallback
}

// NewProperties resolves a Linked world's settings and ant bindings into a
// ready-to-run Properties: one assembled Behavior per bound ant id, stored
// at Behaviors[id] (spec.md §3 "WorldProperties": "The behavior at index i
// is the ant function bound to id i. Index 1 must be populated.").
func NewProperties(linked *linker.Linked) (*Properties, error) {
	cfg, err := ConfigFromSettings(linked.Settings)
	if err != nil {
		return nil, err
	}

	compiled, err := compiler.Compile(linked.Functions)
	if err != nil {
		return nil, err
	}

	props := &Properties{Config: cfg}

	for _, binding := range linked.AntBindings {
		if props.Behaviors[binding.ID] != nil {
			return nil, errors.New(errors.WorldNoEntry,
				"ant id reused across bindings").WithContext("id", binding.ID)
		}

		fn, ok := resolveBinding(binding.FunctionName, compiled)
		if !ok {
			return nil, errors.New(errors.WorldNoEntry,
				"ant binding '"+binding.FunctionName+"' has no matching compiled function")
		}

		b, aerr := assembler.Assemble(fn)
		if aerr != nil {
			return nil, aerr.In("ant binding " + binding.FunctionName)
		}

		props.Behaviors[binding.ID] = b
	}

	if props.Behaviors[1] == nil {
		return nil, errors.New(errors.WorldNoEntry, "index 1 of behaviors is empty")
	}

	glog.V(1).Infof("world: resolved ant bindings, %dx%d grid", cfg.Width, cfg.Height)

	return props, nil
}

// startPos computes the seed ant's grid coordinate for the configured
// StartingPos (original_source/src/ant/world/mod.rs's `World::new`).
func startPos(cfg Config) Pos {
	switch cfg.Start {
	case TopLeft:
		return Pos{X: 0, Y: 0}
	case MiddleLeft:
		return Pos{X: 0, Y: int(cfg.Height / 2)}
	default: // Center
		return Pos{X: int(cfg.Width / 2), Y: int(cfg.Height / 2)}
	}
}

// NewState constructs a fresh simulation from props: an empty grid and a
// single seed ant bound to behavior id 1, facing North, at the configured
// starting position, aged once so it starts Alive rather than Newborn
// (spec.md §4.6 "World construction").
func NewState(props *Properties) *State {
	cfg := props.Config
	s := &State{
		Props:    props,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Cells:    make([]uint8, uint64(cfg.Width)*uint64(cfg.Height)),
		Occupied: make([]bool, uint64(cfg.Width)*uint64(cfg.Height)),
		rng:      newRandSource(cfg.NoiseSeed),
	}

	seed := &Ant{
		BehaviorID: 1,
		Pos:        startPos(cfg),
		Dir:        0,
		Status:     Newborn,
	}
	ageUp(seed)
	s.spawn(seed)

	glog.V(1).Infof("world: constructed %dx%d grid, seed ant at (%d,%d)",
		cfg.Width, cfg.Height, seed.Pos.X, seed.Pos.Y)

	return s
}

// ageUp applies one tick's worth of aging (spec.md §4.6 "Tick": "age every
// ant (newborn->alive, alive->alive with age+=1)").
func ageUp(a *Ant) {
	if a.Status == Newborn {
		a.Status = Alive
		return
	}
	if a.Status == Alive {
		a.Age++
	}
}
