package core

// RGB is a 24-bit truecolor value carried by screen cells. Sprite art is
// converted from image files, so cells need full color rather than a small
// ANSI palette.
type RGB struct {
	R, G, B uint8
}

// CellAttr marks which color channels of a Cell are meaningful.
type CellAttr uint8

const (
	// AttrFg is set when the cell's foreground color should be applied.
	AttrFg CellAttr = 1 << iota
	// AttrBg is set when the cell's background color should be applied.
	AttrBg
)

// Cell is a single screen cell: a rune plus optional foreground and
// background colors. The zero value is a transparent cell (Rune 0) that
// drawing routines skip.
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
	Attr CellAttr
}

// Blank returns an empty opaque cell (a plain space, no colors).
func Blank() Cell {
	return Cell{Rune: ' '}
}

// Transparent reports whether the cell carries nothing to draw.
func (c Cell) Transparent() bool {
	return c.Rune == 0
}

// SameStyle reports whether two cells can be rendered in one styled run.
func (c Cell) SameStyle(o Cell) bool {
	return c.Attr == o.Attr && c.Fg == o.Fg && c.Bg == o.Bg
}
