package game

type SessionState int

const (
	StateMenu SessionState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// GameStats is the single shared mutable state of a session. Event handlers
// are its only writers during a tick; everything else reads snapshots.
type GameStats struct {
	Score          int
	Lives          int
	Level          int
	VehiclesPassed int
	Collisions     int
	Violations     int

	TimeScale      float64
	PowerUpTime    float64
	ScoreMul       float64
	MultiplierTime float64
}

func NewGameStats() *GameStats {
	return &GameStats{
		Lives:     InitialLives,
		Level:     1,
		TimeScale: 1.0,
		ScoreMul:  1.0,
	}
}

// Penalize subtracts from the score, clamped at zero.
func (g *GameStats) Penalize(points int) {
	g.Score = max(g.Score-points, 0)
}

// Award adds points scaled by the active multiplier and returns the amount
// actually credited.
func (g *GameStats) Award(points int) int {
	credited := int(float64(points) * g.ScoreMul)
	g.Score += credited
	return credited
}

// RecordPass counts a vehicle that cleared the playfield and advances the
// level exactly once per VehiclesPerLevel passes.
func (g *GameStats) RecordPass() {
	g.VehiclesPassed++
	if g.VehiclesPassed%VehiclesPerLevel == 0 {
		g.Level++
	}
}

// TickTimers counts down power-up durations in (already scaled) simulation
// time and restores the defaults when they run out.
func (g *GameStats) TickTimers(dt float64) {
	if g.PowerUpTime > 0 {
		g.PowerUpTime -= dt
		if g.PowerUpTime <= 0 {
			g.PowerUpTime = 0
			g.TimeScale = 1.0
		}
	}
	if g.MultiplierTime > 0 {
		g.MultiplierTime -= dt
		if g.MultiplierTime <= 0 {
			g.MultiplierTime = 0
			g.ScoreMul = 1.0
		}
	}
}
