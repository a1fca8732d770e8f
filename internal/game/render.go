package game

import (
	"fmt"

	"github.com/cometfall/cometfall/internal/core"
)

// Minimum terminal size for a playable view.
const (
	minScreenW = 24
	minScreenH = 10
)

const (
	hudRows    = 1 // Top row reserved for the HUD line
	GroundChar = '═'
)

// viewport maps logical window coordinates onto a centered cell grid.
// One cell spans one logical unit horizontally and two vertically,
// matching the half-block sprite converter, so sprites keep their
// proportions on screen.
type viewport struct {
	offsetX int     // Left edge of the playfield in cells
	top     int     // First playfield row
	cols    int     // Playfield width in cells
	rows    int     // Playfield height in cells
	scale   float64 // Cells per logical pixel, horizontal
	windowW float64
	windowH float64
}

// newViewport fits the logical window into the screen, preserving
// aspect, leaving room for the HUD above and the ground line below.
func newViewport(windowW, windowH float64, screenW, screenH int) viewport {
	availH := screenH - hudRows - 1
	scale := float64(screenW) / windowW
	if vs := 2 * float64(availH) / windowH; vs < scale {
		scale = vs
	}
	cols := core.Max(1, int(windowW*scale))
	rows := core.Max(1, int(windowH*scale/2))
	return viewport{
		offsetX: (screenW - cols) / 2,
		top:     hudRows + (availH-rows)/2,
		cols:    cols,
		rows:    rows,
		scale:   scale,
		windowW: windowW,
		windowH: windowH,
	}
}

// cellX converts a logical x coordinate to a cell column.
func (v viewport) cellX(x float64) int {
	return v.offsetX + int(x*v.scale)
}

// cellY converts a logical y coordinate (y up) to a cell row (y down).
func (v viewport) cellY(y float64) int {
	return v.top + int((v.windowH-y)*v.scale/2)
}

// cellRect converts a centered logical box to a cell rectangle,
// at least one cell in each dimension.
func (v viewport) cellRect(center, size core.Vec3) core.Rect {
	x0 := v.cellX(center.X - size.X/2)
	x1 := v.cellX(center.X + size.X/2)
	y0 := v.cellY(center.Y + size.Y/2)
	y1 := v.cellY(center.Y - size.Y/2)
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		g.renderTooSmall(dst)
		return
	}

	v := newViewport(g.cfg.Window.Width, g.cfg.Window.Height, dst.Width(), dst.Height())

	g.renderHUD(dst)
	g.renderLanes(dst, v)
	g.renderEntity(dst, v, g.comet)
	g.renderEntity(dst, v, g.ship)

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Survived %.1fs  |  Press R to restart", g.elapsed))
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	dst.DrawTextCentered(dst.Height()/2, msg)

	hint := "Please resize terminal"
	dst.DrawTextCentered(dst.Height()/2+1, hint)
}

// renderHUD draws the title and the survival clock.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(2, 0, " Cometfall ")

	timeText := fmt.Sprintf(" Time: %.1fs ", g.elapsed)
	dst.DrawText(dst.Width()-len(timeText)-2, 0, timeText)
}

// renderLanes draws the lane separators and the ground line.
func (g *Game) renderLanes(dst *core.Screen, v viewport) {
	sep := core.Cell{Rune: '·', Fg: core.RGB{R: 90, G: 90, B: 110}, Attr: core.AttrFg}
	for lane := 1; lane < LaneCount; lane++ {
		x := v.cellX(LaneWidth(g.cfg.Window.Width) * float64(lane))
		for y := v.top; y < v.top+v.rows; y++ {
			dst.SetCell(x, y, sep)
		}
	}

	dst.DrawHLine(v.offsetX, v.top+v.rows, v.cols, GroundChar)
}

// renderEntity blits one entity through the drawer. Entities partially
// outside the logical window are not drawn; the comet pops in just
// under the top edge and vanishes below the ship, like obstacles
// entering and leaving any scrolling playfield.
func (g *Game) renderEntity(dst *core.Screen, v viewport, e Entity) {
	if e.Position.Y+e.Size.Y/2 > g.cfg.Window.Height || e.Position.Y-e.Size.Y/2 < 0 {
		return
	}

	rect := v.cellRect(e.Position, e.Size)
	if g.drawer != nil {
		g.drawer.Draw(dst, e.Texture, rect, e.Angle)
		return
	}
	dst.DrawRect(rect, '█')
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
