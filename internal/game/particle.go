package game

import "math"

const (
	MaxParticles    = 512
	particleAirDrag = 1.65
	crashSparkCount = 26
	crashSmokeCount = 10
	crashSparkSpeed = 180.0
	crashSmokeSpeed = 40.0
	crashSparkLife  = 0.6
	crashSmokeLife  = 1.4
)

type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleSmoke
)

type Particle struct {
	X, Y   float64
	VX, VY float64

	Size    float64
	Life    float64
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

// ParticleSystem is a pure-simulation debris effect: collisions feed it,
// the renderer only reads it.
type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *Rand
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: NewRand(seed),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// SpawnCrash throws sparks and a smoke plume from a collision point.
func (ps *ParticleSystem) SpawnCrash(x, y float64) {
	for i := 0; i < crashSparkCount; i++ {
		ang := ps.rng.RangeF(0, 2*math.Pi)
		spd := ps.rng.RangeF(0.4, 1.0) * crashSparkSpeed
		life := ps.rng.RangeF(0.5, 1.0) * crashSparkLife
		ps.Add(Particle{
			X: x, Y: y,
			VX:      math.Cos(ang) * spd,
			VY:      math.Sin(ang) * spd,
			Size:    ps.rng.RangeF(2, 4),
			MaxLife: life,
			Col:     Palette.Spark,
			Kind:    ParticleSpark,
		})
	}
	for i := 0; i < crashSmokeCount; i++ {
		ang := ps.rng.RangeF(0, 2*math.Pi)
		spd := ps.rng.RangeF(0.2, 1.0) * crashSmokeSpeed
		ps.Add(Particle{
			X: x + ps.rng.RangeF(-8, 8), Y: y + ps.rng.RangeF(-8, 8),
			VX:      math.Cos(ang) * spd,
			VY:      math.Sin(ang)*spd - 15,
			Size:    ps.rng.RangeF(6, 12),
			MaxLife: ps.rng.RangeF(0.6, 1.0) * crashSmokeLife,
			Col:     Palette.Smoke,
			Kind:    ParticleSmoke,
		})
	}
}

// Update integrates and expires particles in place.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	drag := math.Exp(-particleAirDrag * dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			// Swap-delete; order is irrelevant for rendering.
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= drag
		p.VY *= drag
		if p.Kind == ParticleSmoke {
			p.Size += 6 * dt
		}
		i++
	}
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// Alpha is the particle's current opacity for rendering.
func (p *Particle) Alpha() float32 {
	t := clampF(p.Life/p.MaxLife, 0, 1)
	a := 1.0 - t
	if p.Kind == ParticleSmoke {
		fadeIn := clampF(t/0.18, 0, 1)
		a = (1.0 - t) * fadeIn * 0.85
	}
	return float32(a)
}
