package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cometfall/cometfall/internal/core"
)

// styleKey identifies one distinct cell style.
type styleKey struct {
	fg   core.RGB
	bg   core.RGB
	attr core.CellAttr
}

// Renderer converts screen buffers to styled terminal strings. Styles
// are cached per renderer; every session owns its renderer, so the
// cache needs no locking.
type Renderer struct {
	styles map[styleKey]lipgloss.Style
}

// NewRenderer creates a renderer with an empty style cache.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[styleKey]lipgloss.Style)}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (r *Renderer) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same style for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !cell.SameStyle(start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Attr == 0 {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}

// styleFor returns the lipgloss style for a cell, building and caching
// it on first use.
func (r *Renderer) styleFor(c core.Cell) lipgloss.Style {
	k := styleKey{fg: c.Fg, bg: c.Bg, attr: c.Attr}
	if s, ok := r.styles[k]; ok {
		return s
	}

	s := lipgloss.NewStyle()
	if c.Attr&core.AttrFg != 0 {
		s = s.Foreground(lipgloss.Color(hexColor(c.Fg)))
	}
	if c.Attr&core.AttrBg != 0 {
		s = s.Background(lipgloss.Color(hexColor(c.Bg)))
	}
	r.styles[k] = s
	return s
}

// hexColor formats an RGB value as a lipgloss hex color string.
func hexColor(c core.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
