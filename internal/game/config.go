package game

// Playfield dimensions (in world units, 1 unit = 1 screen pixel).
const (
	ScreenWidth  = 1200
	ScreenHeight = 800
)

// Window defaults.
const (
	WindowWidth  = 1200
	WindowHeight = 800
)

// Road layout. Two perpendicular streets crossing at the playfield centre,
// two lanes each way.
const (
	StreetWidth      = 160.0
	LaneWidth        = 80.0
	IntersectionSize = 200.0
)

// Stop lines and following distances.
const (
	StopLineDistance = 110.0 // from intersection centre to the painted line
	SafeDistance     = 90.0  // base gap between vehicles, before size terms
	DetectionMargin  = 10.0
	LaneTolerance    = 30.0 // cross-axis slack when matching lanes
)

// Vehicles leaving the playfield by this margin count as passed.
const OffscreenMargin = 100.0

// Spawning.
const (
	InitialSpawnInterval    = 2.0
	MinSpawnInterval        = 0.8
	SpawnDifficultyIncrease = 0.1 // interval reduction per level
	BaseVehicleCap          = 12  // concurrent vehicles at level 1
	VehicleCapPerLevel      = 2
)

// Session.
const (
	InitialLives     = 5
	VehiclesPerLevel = 20 // passes needed to advance a level
)

// Points.
const (
	PointsStandard      = 10
	PointsBus           = 20
	PointsPriority      = 30
	PointsSmoothFlow    = 50
	PointsPerfectTiming = 25
)

// Penalties.
const (
	PenaltyCollision         = 100
	PenaltyCollisionPriority = 300
	PenaltyRedLight          = 50
	PenaltySpeeding          = 30
	PenaltyWrongLane         = 40
	PenaltyObstruction       = 200
	PenaltyViolationDefault  = 25
)

// Congestion penalties by level.
const (
	PenaltyCongestionLow      = 5
	PenaltyCongestionMedium   = 15
	PenaltyCongestionHigh     = 30
	PenaltyCongestionCritical = 50
	PenaltyCongestionDefault  = 10
)

// Signal phase durations (seconds). The fallbacks are what a signal gets
// when constructed with a non-positive duration. Green and Red run a second
// longer than the fallback baseline, tuned for the 1200x800 playfield.
const (
	GreenDuration  = 6.0
	YellowDuration = 2.0
	RedDuration    = 6.0

	FallbackGreenDuration  = 5.0
	FallbackYellowDuration = 2.0
	FallbackRedDuration    = 5.0
)

// Signal placement and click tolerance.
const (
	SignalOffsetNear  = 200.0
	SignalOffsetFar   = 100.0
	SignalClickRadius = 30.0
)

// Power-ups.
const (
	SlowTimeScale        = 0.5
	SlowTimeDuration     = 5.0
	ScoreMultiplier      = 2.0
	MultiplierDuration   = 10.0
	NotificationDuration = 2.0 // seconds a notification stays on screen
)

// Flow analysis.
const (
	CongestionLowCount      = 3
	CongestionMediumCount   = 5
	CongestionHighCount     = 10
	CongestionCriticalCount = 15
	CongestionChance        = 0.01 // per-tick emission probability
	SmoothFlowStreak        = 5    // consecutive clean passes for a bonus
	PerfectTimingWindow     = 1.0  // seconds between green and arrival
	PowerUpStreaks          = 3    // smooth-flow bonuses per power-up grant
)

// Event log retention (entries kept by the terminal logging handler).
const EventLogSize = 100
