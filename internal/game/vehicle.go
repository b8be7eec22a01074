package game

import "github.com/google/uuid"

type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirDown
	DirUp
)

// Horizontal reports whether the direction travels along the X axis.
func (d Direction) Horizontal() bool { return d == DirLeft || d == DirRight }

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	default:
		return "up"
	}
}

// Vector returns the unit travel vector for the direction.
func (d Direction) Vector() (float64, float64) {
	switch d {
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	default:
		return 0, -1
	}
}

type VehicleClass int

const (
	ClassStandard VehicleClass = iota
	ClassFast
	ClassBus
	ClassTruck
	ClassEmergency
)

func (c VehicleClass) String() string {
	switch c {
	case ClassStandard:
		return "standard"
	case ClassFast:
		return "fast"
	case ClassBus:
		return "bus"
	case ClassTruck:
		return "truck"
	default:
		return "emergency"
	}
}

// behaviorHook is an optional per-class behavior step. Hooks mutate only the
// vehicle's own position/speed; dt and the movement verdict are fixed by the
// caller.
type behaviorHook func(v *Vehicle, dt float64)

// classParams is the shared parameter table for all vehicle classes. The
// update algorithm itself never varies per class; only these numbers and the
// two hooks do.
type classParams struct {
	BaseSpeed   float64
	MaxSpeed    float64
	Accel       float64
	DecelFactor float64 // braking = Accel * DecelFactor; heavier is lower
	Length      float64 // footprint along the travel axis
	Width       float64 // footprint across the travel axis
	Priority    bool
	SpawnWeight int // percent, weights sum to 100
	Special     behaviorHook
	PostMove    behaviorHook
}

var vehicleClasses = [...]classParams{
	ClassStandard: {
		BaseSpeed: 100, MaxSpeed: 150, Accel: 80, DecelFactor: 2.0,
		Length: 50, Width: 30, SpawnWeight: 50,
	},
	ClassFast: {
		BaseSpeed: 150, MaxSpeed: 250, Accel: 150, DecelFactor: 2.0,
		Length: 55, Width: 32, SpawnWeight: 20,
	},
	ClassBus: {
		BaseSpeed: 60, MaxSpeed: 100, Accel: 40, DecelFactor: 2.0,
		Length: 85, Width: 38, SpawnWeight: 15,
	},
	ClassTruck: {
		BaseSpeed: 50, MaxSpeed: 80, Accel: 30, DecelFactor: 1.5,
		Length: 110, Width: 40, SpawnWeight: 10,
	},
	ClassEmergency: {
		BaseSpeed: 180, MaxSpeed: 200, Accel: 200, DecelFactor: 2.0,
		Length: 60, Width: 35, Priority: true, SpawnWeight: 5,
	},
}

// The hooks call Params, so assigning them inside the composite literal
// would make the table's initializer depend on itself. Wiring them here
// keeps the literal hook-free.
func init() {
	vehicleClasses[ClassFast].Special = fastJitter
	vehicleClasses[ClassFast].PostMove = fastRecenter
	vehicleClasses[ClassBus].Special = busDwell
}

// Params returns the class parameter record.
func (c VehicleClass) Params() classParams { return vehicleClasses[c] }

type Vehicle struct {
	ID       uuid.UUID
	X, Y     float64
	Dir      Direction
	Lane     int
	Class    VehicleClass
	Speed    float64
	Stopped  bool
	WaitTime float64
	Removed  bool

	// laneCenter is the cross-axis coordinate the vehicle spawned on; fast
	// cars jitter around it but never leave the lane.
	laneCenter      float64
	crossedLine     bool // latched once the stop line has been passed
	obstructionSent bool // one obstruction report per stop episode
	rng             *Rand
}

// NewVehicle creates a vehicle of the given class at (x, y). The cross-axis
// coordinate is remembered as the lane centre.
func NewVehicle(class VehicleClass, x, y float64, dir Direction, lane int, rng *Rand) *Vehicle {
	if rng == nil {
		rng = NewRand(1)
	}
	v := &Vehicle{
		ID:    uuid.New(),
		X:     x,
		Y:     y,
		Dir:   dir,
		Lane:  lane,
		Class: class,
		Speed: class.Params().BaseSpeed,
		rng:   rng,
	}
	if dir.Horizontal() {
		v.laneCenter = y
	} else {
		v.laneCenter = x
	}
	return v
}

// Priority reports whether the vehicle may pass a blocking Red signal.
func (v *Vehicle) Priority() bool { return v.Class.Params().Priority }

// Update advances the vehicle one tick. The sequence is fixed for every
// class: special hook, accelerate or brake, move, post-move hook.
func (v *Vehicle) Update(dt float64, canMove bool) {
	p := v.Class.Params()

	if p.Special != nil {
		p.Special(v, dt)
	}

	if canMove {
		v.Speed = approach(v.Speed, p.MaxSpeed, p.Accel*dt)
		v.Stopped = false
		v.WaitTime = 0
	} else {
		v.Speed = approach(v.Speed, 0, p.Accel*p.DecelFactor*dt)
		v.Stopped = true
		v.WaitTime += dt
	}

	dx, dy := v.Dir.Vector()
	v.X += dx * v.Speed * dt
	v.Y += dy * v.Speed * dt

	if p.PostMove != nil {
		p.PostMove(v, dt)
	}
}

// Rect returns the footprint rectangle, oriented along the travel axis.
func (v *Vehicle) Rect() Rect {
	p := v.Class.Params()
	w, h := p.Length, p.Width
	if !v.Dir.Horizontal() {
		w, h = h, w
	}
	return Rect{X: v.X - w/2, Y: v.Y - h/2, W: w, H: h}
}

// HalfLength is half the footprint extent along the travel axis.
func (v *Vehicle) HalfLength() float64 { return v.Class.Params().Length / 2 }

// BrakingDistance is how far the vehicle travels while decelerating from its
// current speed to a halt.
func (v *Vehicle) BrakingDistance() float64 {
	p := v.Class.Params()
	decel := p.Accel * p.DecelFactor
	if decel <= 0 {
		return 0
	}
	return v.Speed * v.Speed / (2 * decel)
}

// OffScreen reports whether the vehicle has fully left the playfield.
func (v *Vehicle) OffScreen() bool {
	return v.X < -OffscreenMargin || v.X > ScreenWidth+OffscreenMargin ||
		v.Y < -OffscreenMargin || v.Y > ScreenHeight+OffscreenMargin
}

// fastJitter gives moving fast cars a 1% per-tick chance of a small lateral
// wobble.
func fastJitter(v *Vehicle, dt float64) {
	if v.Stopped || v.rng.Float64() >= 0.01 {
		return
	}
	off := float64(v.rng.Range(-2, 2))
	if v.Dir.Horizontal() {
		v.Y += off
	} else {
		v.X += off
	}
}

// fastRecenter keeps accumulated jitter within a few units of the lane
// centre so a fast car cannot wander into the neighboring lane.
func fastRecenter(v *Vehicle, dt float64) {
	const maxDrift = 6.0
	if v.Dir.Horizontal() {
		v.Y = clampF(v.Y, v.laneCenter-maxDrift, v.laneCenter+maxDrift)
	} else {
		v.X = clampF(v.X, v.laneCenter-maxDrift, v.laneCenter+maxDrift)
	}
}

// busDwell models unscheduled bus stops: a moving bus has a 0.2% per-tick
// chance of braking to a halt, then pulls away again after waiting at least
// a second.
func busDwell(v *Vehicle, dt float64) {
	if !v.Stopped && v.Speed > 0 && v.rng.Float64() < 0.002 {
		v.Speed = 0
		v.WaitTime = 0
		return
	}
	if v.Speed == 0 && v.WaitTime > 1.0 && v.rng.Float64() < 0.1 {
		v.Speed = v.Class.Params().BaseSpeed
	}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
