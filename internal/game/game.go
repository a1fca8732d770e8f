package game

import (
	"math/rand"

	"github.com/cometfall/cometfall/internal/config"
	"github.com/cometfall/cometfall/internal/core"
)

// StartLane is the lane the spaceship occupies at the beginning of a run.
const StartLane = 1 // middle

// Sprites bundles the texture handles the game draws with.
// Invalid handles are fine; the drawer falls back to solid blocks.
type Sprites struct {
	Ship  core.TextureHandle
	Comet core.TextureHandle
}

// Drawer blits a textured sprite into a cell rectangle.
// The game supplies position, size, and rotation; transform composition
// and handle resolution live behind this interface.
type Drawer interface {
	Draw(dst *core.Screen, texture core.TextureHandle, rect core.Rect, angleDeg float64)
}

// Game implements the comet dodging logic. It holds the complete run
// state explicitly; there are no package-level variables. All movement
// goes through ChangeLane and Update, both gated behind the game-over
// flag, which is monotonic within a run.
type Game struct {
	cfg     config.Config
	drawer  Drawer
	sprites Sprites

	runtime core.RuntimeConfig
	rng     *rand.Rand
	tick    uint64
	elapsed float64 // Seconds survived in the current run

	ship      Entity
	comet     Entity
	shipLane  int
	cometLane int
	gameOver  bool
}

// New creates a game instance. The drawer may be nil, in which case
// sprites render as solid blocks. Reset must be called before Step.
func New(cfg config.Config, drawer Drawer, sprites Sprites) *Game {
	return &Game{
		cfg:     cfg,
		drawer:  drawer,
		sprites: sprites,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "cometfall"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cometfall"
}

// Reset initializes or restarts the run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.elapsed = 0
	g.gameOver = false

	g.shipLane = StartLane
	g.ship = NewEntity(
		g.sprites.Ship,
		core.Vec3{X: LaneCenterX(g.cfg.Window.Width, StartLane), Y: g.cfg.Ship.StartY},
		core.Vec3{X: g.cfg.Ship.Width, Y: g.cfg.Ship.Height, Z: 1},
	)

	g.comet = NewEntity(
		g.sprites.Comet,
		core.Vec3{},
		core.Vec3{X: g.cfg.Comet.Width, Y: g.cfg.Comet.Height, Z: 1},
	)
	g.respawnComet()
}

// respawnComet rolls a fresh lane and places the comet above the window.
func (g *Game) respawnComet() {
	g.cometLane = g.rng.Intn(LaneCount)
	g.comet.Position.X = LaneCenterX(g.cfg.Window.Width, g.cometLane)
	g.comet.Position.Y = g.cfg.Window.Height + g.cfg.Comet.RespawnMargin
}

// ChangeLane moves the spaceship to the requested lane and reports
// whether the request was accepted. Requests outside [0, LaneCount)
// and requests after game over are rejected without changing state.
// The ship never moves vertically.
func (g *Game) ChangeLane(lane int) bool {
	if g.gameOver {
		return false
	}
	if lane < 0 || lane >= LaneCount {
		return false
	}
	g.shipLane = lane
	g.ship.Position.X = LaneCenterX(g.cfg.Window.Width, lane)
	return true
}

// Update advances the simulation by dt seconds: the comet falls, the
// collision band is checked, and an off-screen comet respawns. After
// game over it is a no-op, so the final positions stay frozen.
// A negative dt is treated as zero; the collision and respawn checks
// still run.
func (g *Game) Update(dt float64) {
	if g.gameOver {
		return
	}
	if dt < 0 {
		dt = 0
	}
	g.elapsed += dt

	// Move comet down
	g.comet.Position.Y -= g.cfg.Comet.FallSpeed * dt

	// The comet hits the ship when it shares the lane and its center is
	// inside the vertical band around the ship. Lanes are compared as
	// integer indices; float positions are never compared for equality.
	if g.cometLane == g.shipLane &&
		g.comet.Position.Y < g.ship.Position.Y+g.ship.Size.Y &&
		g.comet.Position.Y > g.ship.Position.Y-g.comet.Size.Y {
		g.gameOver = true
	}

	// Recycle the comet once it has fallen past the bottom edge
	if g.comet.Position.Y < -g.cfg.Comet.RespawnMargin {
		g.respawnComet()
	}
}

// Step advances the game by one fixed tick: lane-change input first,
// then one Update with the tick interval. Movement input at a boundary
// lane is ignored rather than clamped.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	laneBefore := g.shipLane
	if in.Has(core.ActionMoveLeft) && g.shipLane > 0 {
		g.ChangeLane(g.shipLane - 1)
	}
	if in.Has(core.ActionMoveRight) && g.shipLane < LaneCount-1 {
		g.ChangeLane(g.shipLane + 1)
	}

	g.tick++
	g.Update(1.0 / float64(g.runtime.TickRate))

	var events []core.Event
	if g.shipLane != laneBefore {
		events = append(events, core.EventLaneShift)
	}
	if g.gameOver {
		events = append(events, core.EventGameOver)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Lane:     g.shipLane,
		Elapsed:  g.elapsed,
		GameOver: g.gameOver,
	}
}
