// Package texture converts image files into terminal cell art and
// resolves texture handles at draw time.
package texture

import (
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cometfall/cometfall/internal/core"
)

// SpriteCols is the default width of converted sprite art in cells.
// One cell is one pixel column; each cell row packs two pixel rows via
// half-block runes, so a square source stays square on screen.
const SpriteCols = 16

// mergeLabDistance is the perceptual distance below which the top and
// bottom pixels of a cell collapse into a single full block.
const mergeLabDistance = 0.02

// Image is sprite art converted to terminal cells.
type Image struct {
	W, H  int
	Cells []core.Cell // row-major, len = W*H
}

// At returns the cell at (x, y), transparent outside the image.
func (img *Image) At(x, y int) core.Cell {
	if x < 0 || x >= img.W || y < 0 || y >= img.H {
		return core.Cell{}
	}
	return img.Cells[y*img.W+x]
}

// Convert downsamples src into half-block cell art targetW cells wide.
// Each cell covers one pixel column and two pixel rows: both opaque
// renders '▀' with the bottom color as background (or '█' when the two
// colors are perceptually close), a single opaque half renders '▀' or
// '▄' with no background, and fully transparent pairs stay transparent.
// A targetW <= 0 uses the source width.
func Convert(src image.Image, targetW int) *Image {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return &Image{}
	}
	if targetW <= 0 {
		targetW = srcW
	}

	// Scale height proportionally, rounded up to a whole cell row.
	pixelH := int(math.Round(float64(srcH) * float64(targetW) / float64(srcW)))
	if pixelH < 2 {
		pixelH = 2
	}
	if pixelH%2 != 0 {
		pixelH++
	}
	rows := pixelH / 2

	img := &Image{
		W:     targetW,
		H:     rows,
		Cells: make([]core.Cell, targetW*rows),
	}

	sample := func(x, py int) (core.RGB, bool) {
		sx := bounds.Min.X + x*srcW/targetW
		sy := bounds.Min.Y + py*srcH/pixelH
		return pixelAt(src, sx, sy)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < targetW; x++ {
			top, topOK := sample(x, 2*y)
			bottom, bottomOK := sample(x, 2*y+1)
			img.Cells[y*targetW+x] = packCell(top, topOK, bottom, bottomOK)
		}
	}
	return img
}

// packCell folds a vertical pixel pair into one terminal cell.
func packCell(top core.RGB, topOK bool, bottom core.RGB, bottomOK bool) core.Cell {
	switch {
	case topOK && bottomOK:
		a, b := labColor(top), labColor(bottom)
		if a.DistanceLab(b) < mergeLabDistance {
			r, g, bl := a.BlendLab(b, 0.5).Clamped().RGB255()
			return core.Cell{Rune: '█', Fg: core.RGB{R: r, G: g, B: bl}, Attr: core.AttrFg}
		}
		return core.Cell{Rune: '▀', Fg: top, Bg: bottom, Attr: core.AttrFg | core.AttrBg}
	case topOK:
		return core.Cell{Rune: '▀', Fg: top, Attr: core.AttrFg}
	case bottomOK:
		return core.Cell{Rune: '▄', Fg: bottom, Attr: core.AttrFg}
	default:
		return core.Cell{}
	}
}

// pixelAt reads one source pixel, reporting opacity.
// Pixels more than half transparent are dropped entirely; terminal
// cells have no alpha channel to blend with.
func pixelAt(src image.Image, x, y int) (core.RGB, bool) {
	r, g, b, a := src.At(x, y).RGBA()
	if a < 0x8000 {
		return core.RGB{}, false
	}
	// Un-premultiply to recover the original channel values.
	return core.RGB{
		R: uint8((r * 0xffff / a) >> 8),
		G: uint8((g * 0xffff / a) >> 8),
		B: uint8((b * 0xffff / a) >> 8),
	}, true
}

func labColor(c core.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
