package cli

import (
	"fmt"
	"strings"

	"github.com/cxrvus/antbyte/world"
)

// colorCodes splits a cell/color value into its ANSI background/foreground
// SGR codes (original_source/src/bin/cli.rs's `color_codes`): the low 3 bits
// select one of 8 base colors, the high bit is intensity; the foreground is
// the complementary color so the glyph stays legible against its own
// background.
func colorCodes(value uint8) (bg, fg int) {
	color := int(value & 0b0111)
	intensity := value&0b1000 != 0

	if intensity {
		bg = 100 + color
	} else {
		bg = 40 + color
	}

	flipped := color ^ 0b0111
	if intensity {
		fg = 90 + flipped
	} else {
		fg = 30 + flipped
	}
	return bg, fg
}

func colorCell(value uint8, content string) string {
	bg, fg := colorCodes(value)
	return fmt.Sprintf("\x1b[%d;%dm%s\x1b[0m", fg, bg, content)
}

// ClearScreen emits the ANSI sequence original_source/src/cli.rs's
// `clear_screen` uses before redrawing a frame.
func ClearScreen() {
	fmt.Print("\x1B[2J\x1B[1;1H")
}

// RenderANSI renders one frame of s as a colorized grid, one two-character
// cell per glyph: an ant's direction glyph over its cell, or two spaces for
// an empty cell, colorized by the cell's value (spec.md §4.6 "Directions":
// "rendering uses a two-character glyph per direction").
func RenderANSI(s *world.State) string {
	ants := make(map[world.Pos]*world.Ant, len(s.Ants))
	for _, a := range s.Ants {
		if a.Status != world.Dead {
			ants[a.Pos] = a
		}
	}

	var b strings.Builder
	for y := 0; y < int(s.Height); y++ {
		b.WriteByte('\n')
		for x := 0; x < int(s.Width); x++ {
			p := world.Pos{X: x, Y: y}
			cell := s.Cells[y*int(s.Width)+x]

			content := "  "
			if a, ok := ants[p]; ok {
				content = world.DirGlyph(a.Dir)
			}
			b.WriteString(colorCell(cell, content))
		}
	}
	b.WriteByte('\n')
	return b.String()
}
