package game

type SignalPhase int

const (
	PhaseGreen SignalPhase = iota
	PhaseYellow
	PhaseRed
)

func (p SignalPhase) String() string {
	switch p {
	case PhaseGreen:
		return "green"
	case PhaseYellow:
		return "yellow"
	default:
		return "red"
	}
}

// Next returns the successor in the fixed Green→Yellow→Red→Green cycle.
func (p SignalPhase) Next() SignalPhase {
	switch p {
	case PhaseGreen:
		return PhaseYellow
	case PhaseYellow:
		return PhaseRed
	default:
		return PhaseGreen
	}
}

// CanPass reports whether vehicles may cross under this phase.
func (p SignalPhase) CanPass() bool { return p == PhaseGreen }

type SignalOrientation int

const (
	OrientHorizontal SignalOrientation = iota
	OrientVertical
)

// PhaseHook is fired on phase entry/exit. Visual effects only; no simulation
// state may depend on it.
type PhaseHook func(s *TrafficSignal, phase SignalPhase)

// TrafficSignal is a three-phase timed signal. The cycle and its transitions
// are total; a signal has no terminal state.
type TrafficSignal struct {
	X, Y        float64
	Orientation SignalOrientation

	Phase          SignalPhase
	Elapsed        float64
	ManualOverride bool

	durations [3]float64 // indexed by SignalPhase

	OnEnter PhaseHook
	OnExit  PhaseHook
}

// NewTrafficSignal creates a signal in Red. Non-positive durations are
// rejected and replaced with the documented fallbacks.
func NewTrafficSignal(x, y float64, orient SignalOrientation, green, yellow, red float64) *TrafficSignal {
	if green <= 0 {
		green = FallbackGreenDuration
	}
	if yellow <= 0 {
		yellow = FallbackYellowDuration
	}
	if red <= 0 {
		red = FallbackRedDuration
	}
	return &TrafficSignal{
		X:           x,
		Y:           y,
		Orientation: orient,
		Phase:       PhaseRed,
		durations:   [3]float64{green, yellow, red},
	}
}

// Duration returns the configured duration of the given phase.
func (s *TrafficSignal) Duration(p SignalPhase) float64 { return s.durations[p] }

// Remaining returns the time left in the current phase.
func (s *TrafficSignal) Remaining() float64 {
	return max(s.durations[s.Phase]-s.Elapsed, 0)
}

// CanPass reports whether vehicles may cross right now.
func (s *TrafficSignal) CanPass() bool { return s.Phase.CanPass() }

// Update advances the phase timer. Signals under manual override do not
// cycle on their own.
func (s *TrafficSignal) Update(dt float64) {
	if s.ManualOverride {
		return
	}
	s.Elapsed += dt
	if s.Elapsed >= s.durations[s.Phase] {
		s.transition(s.Phase.Next())
	}
}

// CyclePhase advances to the next phase immediately, bypassing the timer.
// Only permitted while the player holds manual control of the signal.
func (s *TrafficSignal) CyclePhase() {
	if !s.ManualOverride {
		return
	}
	s.transition(s.Phase.Next())
}

// ForceRed is a forced transition used by the coordinator to restore the
// cross-group invariant. It bypasses both timer and override.
func (s *TrafficSignal) ForceRed() {
	if s.Phase == PhaseRed {
		return
	}
	s.transition(PhaseRed)
}

func (s *TrafficSignal) transition(next SignalPhase) {
	if s.OnExit != nil {
		s.OnExit(s, s.Phase)
	}
	s.Phase = next
	s.Elapsed = 0
	if s.OnEnter != nil {
		s.OnEnter(s, next)
	}
}
