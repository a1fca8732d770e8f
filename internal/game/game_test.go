package game

import (
	"math"
	"testing"

	"github.com/cometfall/cometfall/internal/config"
	"github.com/cometfall/cometfall/internal/core"
)

func newTestGame(seed int64) *Game {
	g := New(config.Default(), nil, Sprites{Ship: core.InvalidTexture, Comet: core.InvalidTexture})
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	})
	return g
}

// placeComet positions the comet manually for collision scenarios.
func placeComet(g *Game, lane int, y float64) {
	g.cometLane = lane
	g.comet.Position.X = LaneCenterX(g.cfg.Window.Width, lane)
	g.comet.Position.Y = y
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(42)

	if g.shipLane != StartLane {
		t.Errorf("shipLane = %d, expected start lane %d", g.shipLane, StartLane)
	}
	wantX := LaneCenterX(g.cfg.Window.Width, StartLane)
	if g.ship.Position.X != wantX {
		t.Errorf("ship x = %v, expected %v", g.ship.Position.X, wantX)
	}
	if g.ship.Position.Y != g.cfg.Ship.StartY {
		t.Errorf("ship y = %v, expected %v", g.ship.Position.Y, g.cfg.Ship.StartY)
	}

	wantCometY := g.cfg.Window.Height + g.cfg.Comet.RespawnMargin
	if g.comet.Position.Y != wantCometY {
		t.Errorf("comet y = %v, expected to spawn at %v", g.comet.Position.Y, wantCometY)
	}
	if g.cometLane < 0 || g.cometLane >= LaneCount {
		t.Errorf("cometLane = %d, expected a lane in [0, %d)", g.cometLane, LaneCount)
	}

	if g.gameOver {
		t.Error("new run should not start game over")
	}
	if g.tick != 0 || g.elapsed != 0 {
		t.Errorf("tick/elapsed = %d/%v, expected 0/0", g.tick, g.elapsed)
	}
}

func TestChangeLaneSetsLaneCenter(t *testing.T) {
	laneWidth := 800.0 / 3

	for lane := 0; lane < LaneCount; lane++ {
		g := newTestGame(1)
		shipY := g.ship.Position.Y

		if !g.ChangeLane(lane) {
			t.Errorf("ChangeLane(%d) rejected, expected accept", lane)
		}

		wantX := laneWidth/2 + float64(lane)*laneWidth
		if g.ship.Position.X != wantX {
			t.Errorf("ChangeLane(%d): ship x = %v, expected exactly %v", lane, g.ship.Position.X, wantX)
		}
		if g.shipLane != lane {
			t.Errorf("ChangeLane(%d): shipLane = %d", lane, g.shipLane)
		}
		if g.ship.Position.Y != shipY {
			t.Errorf("ChangeLane(%d): ship y moved from %v to %v", lane, shipY, g.ship.Position.Y)
		}

		// Idempotent: repeating the request produces the same position
		if !g.ChangeLane(lane) {
			t.Errorf("repeated ChangeLane(%d) rejected", lane)
		}
		if g.ship.Position.X != wantX {
			t.Errorf("repeated ChangeLane(%d): ship x = %v, expected %v", lane, g.ship.Position.X, wantX)
		}
	}
}

func TestChangeLaneRejectsOutOfRange(t *testing.T) {
	for _, lane := range []int{-1, -100, LaneCount, LaneCount + 1, 99} {
		g := newTestGame(1)
		laneBefore := g.shipLane
		posBefore := g.ship.Position

		if g.ChangeLane(lane) {
			t.Errorf("ChangeLane(%d) accepted, expected reject", lane)
		}
		if g.shipLane != laneBefore {
			t.Errorf("ChangeLane(%d) mutated shipLane to %d", lane, g.shipLane)
		}
		if g.ship.Position != posBefore {
			t.Errorf("ChangeLane(%d) mutated ship position to %+v", lane, g.ship.Position)
		}
	}
}

func TestChangeLaneRejectedAfterGameOver(t *testing.T) {
	g := newTestGame(1)
	g.gameOver = true
	posBefore := g.ship.Position

	if g.ChangeLane(0) {
		t.Error("ChangeLane accepted after game over")
	}
	if g.shipLane != StartLane || g.ship.Position != posBefore {
		t.Error("ChangeLane mutated state after game over")
	}
}

func TestCometFalls(t *testing.T) {
	g := newTestGame(1)
	yBefore := g.comet.Position.Y
	dt := 0.1

	g.Update(dt)

	want := yBefore - g.cfg.Comet.FallSpeed*dt
	if g.comet.Position.Y != want {
		t.Errorf("comet y = %v after Update(%v), expected %v", g.comet.Position.Y, dt, want)
	}
	if g.elapsed != dt {
		t.Errorf("elapsed = %v, expected %v", g.elapsed, dt)
	}
}

func TestUpdateNegativeDeltaClamped(t *testing.T) {
	g := newTestGame(1)
	yBefore := g.comet.Position.Y

	g.Update(-1)

	if g.comet.Position.Y != yBefore {
		t.Errorf("comet moved on negative dt: y = %v, expected %v", g.comet.Position.Y, yBefore)
	}
	if g.elapsed != 0 {
		t.Errorf("elapsed = %v after negative dt, expected 0", g.elapsed)
	}

	// Collision is still evaluated even with a clamped dt
	placeComet(g, g.shipLane, 60)
	g.Update(-1)
	if !g.gameOver {
		t.Error("collision should be detected even when dt is clamped to zero")
	}
}

func TestCollisionSameLaneInBand(t *testing.T) {
	g := newTestGame(1)

	// Spaceship at lane 1, y=50, 50x50; comet in the same lane at y=60:
	// inside the band (0, 100), exact lane match.
	placeComet(g, g.shipLane, 60)
	g.Update(0)

	if !g.State().GameOver {
		t.Error("comet in ship lane inside the band should end the game")
	}
}

func TestMissDifferentLane(t *testing.T) {
	g := newTestGame(1)

	// Same vertical band, neighboring lane: no collision.
	placeComet(g, 0, 60)
	g.Update(0)

	if g.State().GameOver {
		t.Error("comet in a different lane must not end the game")
	}
}

func TestCollisionBand(t *testing.T) {
	// Ship y=50 with 50x50 entities gives the open band (0, 100).
	tests := []struct {
		name     string
		cometY   float64
		gameOver bool
	}{
		{"above band", 150, false},
		{"at upper boundary", 100, false},
		{"just inside upper edge", 99.5, true},
		{"centered on ship", 50, true},
		{"just inside lower edge", 0.5, true},
		{"at lower boundary", 0, false},
		{"below band", -10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(1)
			placeComet(g, g.shipLane, tc.cometY)
			g.Update(0)

			if g.gameOver != tc.gameOver {
				t.Errorf("comet at y=%v: gameOver = %v, expected %v", tc.cometY, g.gameOver, tc.gameOver)
			}
		})
	}
}

func TestUpdateNoOpAfterGameOver(t *testing.T) {
	g := newTestGame(1)
	placeComet(g, g.shipLane, 60)
	g.Update(0)
	if !g.gameOver {
		t.Fatal("setup: expected game over")
	}

	before := g.Snapshot()
	for _, dt := range []float64{0, 1.0 / 60, 1, 100} {
		g.Update(dt)
		if g.Snapshot() != before {
			t.Errorf("Update(%v) after game over changed state: %+v -> %+v", dt, before, g.Snapshot())
		}
	}
}

func TestRespawnAfterOffscreen(t *testing.T) {
	g := newTestGame(1)

	// Keep the comet out of the ship's lane so it falls through.
	placeComet(g, 0, -49)
	g.ChangeLane(1)

	// Not yet past the threshold: -49 is above -50.
	g.Update(0)
	if g.comet.Position.Y != -49 {
		t.Fatalf("comet respawned early at y = %v", g.comet.Position.Y)
	}

	// This update carries it past -50 and must respawn it in the same call.
	g.Update(0.01)

	wantY := g.cfg.Window.Height + g.cfg.Comet.RespawnMargin
	if g.comet.Position.Y != wantY {
		t.Errorf("comet y = %v after respawn, expected exactly %v", g.comet.Position.Y, wantY)
	}
	if g.cometLane < 0 || g.cometLane >= LaneCount {
		t.Errorf("cometLane = %d, expected a lane in [0, %d)", g.cometLane, LaneCount)
	}
	if g.comet.Position.X != LaneCenterX(g.cfg.Window.Width, g.cometLane) {
		t.Errorf("comet x = %v, expected the center of lane %d", g.comet.Position.X, g.cometLane)
	}
}

func TestCometNeverObservedBelowThreshold(t *testing.T) {
	g := newTestGame(7)
	centers := [LaneCount]float64{
		LaneCenterX(g.cfg.Window.Width, 0),
		LaneCenterX(g.cfg.Window.Width, 1),
		LaneCenterX(g.cfg.Window.Width, 2),
	}

	// Dodge forever: hop away from the comet's lane every tick.
	for i := 0; i < 5000; i++ {
		in := core.NewInputFrame()
		if g.shipLane == g.cometLane {
			if g.shipLane == 0 {
				in.Set(core.ActionMoveRight)
			} else {
				in.Set(core.ActionMoveLeft)
			}
		}
		g.Step(in)

		if g.gameOver {
			t.Fatalf("dodging run ended at tick %d: ship lane %d, comet lane %d, comet y %v",
				i, g.shipLane, g.cometLane, g.comet.Position.Y)
		}
		if g.comet.Position.Y < -g.cfg.Comet.RespawnMargin {
			t.Fatalf("tick %d: comet observed below the respawn threshold: y = %v", i, g.comet.Position.Y)
		}
		if g.comet.Position.X != centers[g.cometLane] {
			t.Fatalf("tick %d: comet x = %v, not snapped to lane %d center", i, g.comet.Position.X, g.cometLane)
		}
	}
}

func TestCollisionEndsChasingRun(t *testing.T) {
	g := newTestGame(3)

	// Chase the comet's lane every tick; the first descent must kill.
	// One full descent takes (650+50)/300 s, about 140 ticks at 60 fps.
	for i := 0; i < 300; i++ {
		in := core.NewInputFrame()
		if g.shipLane < g.cometLane {
			in.Set(core.ActionMoveRight)
		} else if g.shipLane > g.cometLane {
			in.Set(core.ActionMoveLeft)
		}
		result := g.Step(in)

		if result.State.GameOver {
			if g.shipLane != g.cometLane {
				t.Errorf("game ended with ship lane %d != comet lane %d", g.shipLane, g.cometLane)
			}
			return
		}
	}
	t.Error("chasing the comet should end the game within one descent")
}

func TestStepBoundaryLanesIgnoreMoves(t *testing.T) {
	g := newTestGame(1)

	step := func(a core.Action) core.StepResult {
		in := core.NewInputFrame()
		in.Set(a)
		return g.Step(in)
	}

	// Start in the middle, move to the left edge.
	res := step(core.ActionMoveLeft)
	if g.shipLane != 0 {
		t.Fatalf("shipLane = %d after move left, expected 0", g.shipLane)
	}
	if !hasEvent(res.Events, core.EventLaneShift) {
		t.Error("successful lane change should emit a lane shift event")
	}

	// Left edge: further left moves are ignored.
	res = step(core.ActionMoveLeft)
	if g.shipLane != 0 {
		t.Errorf("shipLane = %d, move left at lane 0 should be ignored", g.shipLane)
	}
	if hasEvent(res.Events, core.EventLaneShift) {
		t.Error("ignored move should not emit a lane shift event")
	}

	// Across to the right edge.
	step(core.ActionMoveRight)
	step(core.ActionMoveRight)
	if g.shipLane != 2 {
		t.Fatalf("shipLane = %d after two moves right, expected 2", g.shipLane)
	}

	res = step(core.ActionMoveRight)
	if g.shipLane != 2 {
		t.Errorf("shipLane = %d, move right at lane 2 should be ignored", g.shipLane)
	}
	if hasEvent(res.Events, core.EventLaneShift) {
		t.Error("ignored move should not emit a lane shift event")
	}
}

func TestStepAfterGameOver(t *testing.T) {
	g := newTestGame(1)
	placeComet(g, g.shipLane, 60)
	g.Update(0)

	before := g.Snapshot()
	in := core.NewInputFrame()
	in.Set(core.ActionMoveLeft)
	result := g.Step(in)

	if !result.State.GameOver {
		t.Error("State should stay game over")
	}
	if len(result.Events) != 0 {
		t.Errorf("Step after game over emitted events: %v", result.Events)
	}
	if g.Snapshot() != before {
		t.Errorf("Step after game over changed state: %+v -> %+v", before, g.Snapshot())
	}
}

func TestGameOverEventFiresOnce(t *testing.T) {
	g := newTestGame(5)

	fired := 0
	for i := 0; i < 400; i++ {
		in := core.NewInputFrame()
		if g.shipLane < g.cometLane {
			in.Set(core.ActionMoveRight)
		} else if g.shipLane > g.cometLane {
			in.Set(core.ActionMoveLeft)
		}
		result := g.Step(in)
		if hasEvent(result.Events, core.EventGameOver) {
			fired++
		}
	}

	if fired != 1 {
		t.Errorf("game over event fired %d times, expected exactly once", fired)
	}
}

func TestElapsedTracksTicks(t *testing.T) {
	g := newTestGame(1)

	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}

	if math.Abs(g.State().Elapsed-1.0) > 1e-9 {
		t.Errorf("elapsed = %v after 60 ticks at 60 fps, expected 1.0", g.State().Elapsed)
	}
	if g.tick != 60 {
		t.Errorf("tick = %d, expected 60", g.tick)
	}
}

func TestDeterminism(t *testing.T) {
	// Same seed and input script must produce identical runs.
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}

	script := make([]core.InputFrame, 1000)
	for i := range script {
		script[i] = core.NewInputFrame()
		switch {
		case i%30 == 0:
			script[i].Set(core.ActionMoveLeft)
		case i%45 == 0:
			script[i].Set(core.ActionMoveRight)
		}
	}

	run := func() Snapshot {
		g := New(config.Default(), nil, Sprites{})
		g.Reset(cfg)
		for _, in := range script {
			g.Step(in)
		}
		return g.Snapshot()
	}

	first := run()
	second := run()
	if first != second {
		t.Errorf("runs diverged:\n  first  %+v\n  second %+v", first, second)
	}
}

func TestResetStartsFreshRun(t *testing.T) {
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	g := New(config.Default(), nil, Sprites{})
	g.Reset(rt)

	// Play into a game over.
	placeComet(g, g.shipLane, 60)
	g.Update(0)
	if !g.gameOver {
		t.Fatal("setup: expected game over")
	}

	g.Reset(rt)

	if g.gameOver {
		t.Error("Reset should clear the game over flag")
	}
	if g.tick != 0 || g.elapsed != 0 {
		t.Errorf("Reset should zero tick/elapsed, got %d/%v", g.tick, g.elapsed)
	}
	if g.shipLane != StartLane {
		t.Errorf("Reset should return the ship to lane %d, got %d", StartLane, g.shipLane)
	}
	wantY := g.cfg.Window.Height + g.cfg.Comet.RespawnMargin
	if g.comet.Position.Y != wantY {
		t.Errorf("Reset should respawn the comet at y=%v, got %v", wantY, g.comet.Position.Y)
	}
}

func hasEvent(events []core.Event, e core.Event) bool {
	for _, ev := range events {
		if ev == e {
			return true
		}
	}
	return false
}
