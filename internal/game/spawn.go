package game

// VehicleSpawner feeds the simulation with new vehicles at the four
// playfield edges. Spawn pressure scales with level: shorter intervals and
// a higher concurrent cap.
type VehicleSpawner struct {
	rng   *Rand
	Timer float64
}

func NewVehicleSpawner(seed uint64) *VehicleSpawner {
	return &VehicleSpawner{rng: NewRand(seed)}
}

// Interval is the seconds between spawns at the given level.
func SpawnInterval(level int) float64 {
	return max(MinSpawnInterval, InitialSpawnInterval-float64(level)*SpawnDifficultyIncrease)
}

// VehicleCap is the concurrent vehicle limit at the given level.
func VehicleCap(level int) int {
	return BaseVehicleCap + level*VehicleCapPerLevel
}

// Update advances the spawn timer and returns a new vehicle when one is
// due, or nil. liveCount throttles spawning against the level cap.
func (sp *VehicleSpawner) Update(dt float64, level, liveCount int) *Vehicle {
	sp.Timer += dt
	if sp.Timer < SpawnInterval(level) {
		return nil
	}
	sp.Timer = 0
	if liveCount >= VehicleCap(level) {
		return nil
	}
	return sp.Spawn()
}

// Spawn creates one weighted-random vehicle at a random approach.
func (sp *VehicleSpawner) Spawn() *Vehicle {
	dir := Direction(sp.rng.Intn(4))
	x, y, lane := spawnPoint(dir)
	class := sp.pickClass()
	return NewVehicle(class, x, y, dir, lane, NewRand(sp.rng.NextU64()))
}

// pickClass rolls the weighted variant table (50/20/15/10/5).
func (sp *VehicleSpawner) pickClass() VehicleClass {
	roll := sp.rng.Intn(100)
	acc := 0
	for c := ClassStandard; c <= ClassEmergency; c++ {
		acc += c.Params().SpawnWeight
		if roll < acc {
			return c
		}
	}
	return ClassStandard
}

// spawnPoint returns the off-screen start position and lane index for an
// approach direction. Each approach uses its own inbound lane, offset half
// a lane from the street centre.
func spawnPoint(d Direction) (x, y float64, lane int) {
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2
	const edge = 50.0
	const laneOff = 30.0
	switch d {
	case DirRight:
		return -edge, cy - laneOff, 0
	case DirLeft:
		return ScreenWidth + edge, cy + laneOff, 1
	case DirDown:
		return cx - laneOff, -edge, 2
	default:
		return cx + laneOff, ScreenHeight + edge, 3
	}
}
