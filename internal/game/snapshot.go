package game

// Snapshot captures the run state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	ShipLane  int
	CometLane int
	CometY    float64
	Elapsed   float64
	GameOver  bool
}

// Snapshot returns the current state snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		ShipLane:  g.shipLane,
		CometLane: g.cometLane,
		CometY:    g.comet.Position.Y,
		Elapsed:   g.elapsed,
		GameOver:  g.gameOver,
	}
}
