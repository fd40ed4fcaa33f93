package cli

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/cxrvus/antbyte/errors"
	"github.com/cxrvus/antbyte/world"
)

// maxGIFFrames and maxGIFPixels are the hard ceilings spec.md §6 states and
// original_source/src/ant/world/gif_export.rs implements (`MAX_FRAMES`,
// `MAX_PX`).
const (
	maxGIFFrames = 0x100
	maxGIFPixels = 0x200
)

// palette is the fixed 16-color RGBI palette original_source/src/ant/world/
// gif_export.rs embeds as `PALETTE`; cell values (0-15 in both color modes,
// since Binary only ever writes 0 or 0xF) index directly into it.
var palette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xFF}, // 0: Black
	color.RGBA{0x80, 0x00, 0x00, 0xFF}, // 1: Dark Red
	color.RGBA{0x00, 0x80, 0x00, 0xFF}, // 2: Dark Green
	color.RGBA{0x80, 0x80, 0x00, 0xFF}, // 3: Dark Yellow/Brown
	color.RGBA{0x00, 0x00, 0x80, 0xFF}, // 4: Dark Blue
	color.RGBA{0x80, 0x00, 0x80, 0xFF}, // 5: Dark Magenta
	color.RGBA{0x00, 0x80, 0x80, 0xFF}, // 6: Dark Cyan
	color.RGBA{0xC0, 0xC0, 0xC0, 0xFF}, // 7: Light Gray
	color.RGBA{0x80, 0x80, 0x80, 0xFF}, // 8: Dark Gray
	color.RGBA{0xFF, 0x00, 0x00, 0xFF}, // 9: Bright Red
	color.RGBA{0x00, 0xFF, 0x00, 0xFF}, // 10: Bright Green
	color.RGBA{0xFF, 0xFF, 0x00, 0xFF}, // 11: Bright Yellow
	color.RGBA{0x00, 0x00, 0xFF, 0xFF}, // 12: Bright Blue
	color.RGBA{0xFF, 0x00, 0xFF, 0xFF}, // 13: Bright Magenta
	color.RGBA{0x00, 0xFF, 0xFF, 0xFF}, // 14: Bright Cyan
	color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, // 15: White
}

// gifScale picks the integer upscale factor so the larger grid axis comes as
// close to maxGIFPixels as possible without exceeding it. A grid whose
// larger axis is already over maxGIFPixels keeps scale 1 and is not
// shrunk.
func gifScale(width, height uint32) int {
	maxDim := int(width)
	if int(height) > maxDim {
		maxDim = int(height)
	}
	if maxDim == 0 {
		return 1
	}
	scale := 1
	if maxDim <= maxGIFPixels {
		scale = maxGIFPixels / maxDim
	}
	if scale < 1 {
		scale = 1
	}
	return scale
}

// frameDelay converts a configured fps into a GIF frame delay in 1/100s
// units, defaulting to 30fps and clamping to [1, 30] the way
// gif_export.rs's `gif_render` does.
func frameDelay(fps *uint32) int {
	f := 30
	if fps != nil {
		f = int(*fps)
	}
	if f < 1 {
		f = 1
	}
	if f > 30 {
		f = 30
	}
	return (100 + f/2) / f
}

// renderGIFFrame rasterizes s's cell grid (not the ants: gif_export.rs's own
// `gif_render` only ever samples `self.cells`) into a paletted image scaled
// by scale.
func renderGIFFrame(s *world.State, scale int) *image.Paletted {
	width, height := int(s.Width)*scale, int(s.Height)*scale
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette)

	for y := 0; y < int(s.Height); y++ {
		for x := 0; x < int(s.Width); x++ {
			idx := s.Cells[y*int(s.Width)+x]
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(x*scale+dx, y*scale+dy, idx)
				}
			}
		}
	}
	return img
}

// ExportGIF ticks s up to maxGIFFrames-1 times, writing one rasterized frame
// before each tick plus the final frame after the last one (the population
// died out, the tick cap was hit, or the frame limit was reached), so the
// infinitely-looping animated GIF holds at most maxGIFFrames frames.
func ExportGIF(w io.Writer, s *world.State) error {
	scale := gifScale(s.Width, s.Height)
	delay := frameDelay(s.Props.Config.FPS)

	anim := &gif.GIF{LoopCount: 0}

	more := true
	for i := 0; i < maxGIFFrames-1 && more; i++ {
		anim.Image = append(anim.Image, renderGIFFrame(s, scale))
		anim.Delay = append(anim.Delay, delay)

		var err error
		more, err = s.Tick()
		if err != nil {
			return err
		}
	}

	anim.Image = append(anim.Image, renderGIFFrame(s, scale))
	anim.Delay = append(anim.Delay, delay)

	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrap(errors.CliIO, "failed to encode GIF", err)
	}
	return nil
}
