package world

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// randSource is the ant tick's Random peripheral source: one byte per call
// from a single stream shared by all ants, so the byte an ant sees depends
// on how many draws were made before it (spec.md §4.6 step 1,
// `Random = rng.next_byte()`). No third-party RNG crate appears anywhere in
// the reference corpus (see DESIGN.md: world, "Random source"), so this is
// one of the few genuinely stdlib-only pieces of this package.
type randSource struct {
	r *rand.Rand
}

// newRandSource seeds deterministically from seed if set (spec.md §4.6
// "World construction": "seeded from noise_seed if set"), otherwise from
// system entropy.
func newRandSource(seed *uint32) randSource {
	if seed != nil {
		return randSource{r: rand.New(rand.NewPCG(uint64(*seed), uint64(*seed)))}
	}
	var b [16]byte
	_, _ = crand.Read(b[:]) // falls back to an all-zero seed only if the OS source is unavailable
	return randSource{r: rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))}
}

func (rs randSource) nextByte() uint8 {
	return uint8(rs.r.IntN(256))
}
