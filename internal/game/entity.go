// Package game implements the three-lane comet dodging game.
// A spaceship holds one of three lanes at the bottom of a logical
// 800x600 playfield while a comet falls from the top; sharing a lane
// with the comet as it passes the ship ends the run.
package game

import "github.com/cometfall/cometfall/internal/core"

// LaneCount is the number of vertical lanes. The lane math and the
// input mapping assume exactly three.
const LaneCount = 3

// Entity is a drawable object in logical window space.
// Position is the sprite center, origin bottom-left, y up.
type Entity struct {
	Texture  core.TextureHandle
	Position core.Vec3
	Size     core.Vec3 // X/Y extents in logical pixels, Z unused
	Angle    float64   // Rotation in degrees, counter-clockwise
}

// NewEntity creates an entity with the given texture, position and size.
// Rotation starts at zero.
func NewEntity(texture core.TextureHandle, position, size core.Vec3) Entity {
	return Entity{
		Texture:  texture,
		Position: position,
		Size:     size,
	}
}

// LaneWidth returns the width of one lane for the given window width.
func LaneWidth(windowW float64) float64 {
	return windowW / LaneCount
}

// LaneCenterX returns the horizontal center of a lane.
// Lanes are indexed 0 (left) to LaneCount-1 (right).
func LaneCenterX(windowW float64, lane int) float64 {
	w := LaneWidth(windowW)
	return w/2 + float64(lane)*w
}
