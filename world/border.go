package world

// dirVectors is the fixed dir→unit-vector table for the eight principal
// directions (spec.md §4.6 "Directions"): N, NE, E, SE, S, SW, W, NW,
// clockwise starting at North. glyphs pairs each with the two-character
// rendering glyph a terminal/GIF renderer draws for it.
var dirVectors = [8]Pos{
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
}

var dirGlyphs = [8]string{"^|", "^\\", "->", "\\v", "v|", "/v", "<-", "/^"}

// DirGlyph returns the two-character glyph a renderer draws for dir
// (spec.md §4.6: "rendering uses a two-character glyph per direction").
func DirGlyph(dir uint8) string {
	return dirGlyphs[dir%8]
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

// nextPos computes the position one step from pos in direction dir under
// cfg's border policy (spec.md §4.6 "Border policy"). The bool result is
// false only for Collide/Despawn stepping off the grid.
func nextPos(pos Pos, dir uint8, cfg Config) (Pos, bool) {
	v := dirVectors[dir%8]
	width, height := int(cfg.Width), int(cfg.Height)

	switch cfg.Border {
	case Collide, Despawn:
		nx, ny := pos.X+v.X, pos.Y+v.Y
		if nx < 0 || ny < 0 || nx >= width || ny >= height {
			return Pos{}, false
		}
		return Pos{X: nx, Y: ny}, true

	case Cycle:
		// Each axis wraps independently modulo its own dimension (spec.md
		// §4.6: "Cycle wraps each axis independently modulo its dimension").
		return Pos{X: mod(pos.X+v.X, width), Y: mod(pos.Y+v.Y, height)}, true

	default: // Wrap
		// The grid is one linear sequence of width*height cells in row-major
		// order; a step that would cross a single-axis boundary carries into
		// the adjacent row/column instead, producing the diagonal shift
		// spec.md §4.6 describes ("stepping off the right edge advances down
		// one row as it wraps to column 0"). Computing a signed linear index
		// from the (possibly one-out-of-range) next coordinates and reducing
		// it modulo the total cell count gives this directly, without having
		// to special-case which single axis crossed.
		total := width * height
		linear := (pos.Y+v.Y)*width + (pos.X + v.X)
		linear = mod(linear, total)
		return Pos{X: linear % width, Y: linear / width}, true
	}
}
