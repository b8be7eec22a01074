package game

import "math"

// SignalCoordinator owns every signal at the intersection and keeps the
// cross-group invariant: the horizontal and vertical groups never both show
// Green. Enforcement is eager: it runs after every timed update and after
// every manual cycle, so the invariant holds at every point a vehicle can
// observe.
type SignalCoordinator struct {
	Signals    []*TrafficSignal
	horizontal []*TrafficSignal
	vertical   []*TrafficSignal
}

func NewSignalCoordinator() *SignalCoordinator {
	return &SignalCoordinator{}
}

func (sc *SignalCoordinator) Add(s *TrafficSignal) {
	sc.Signals = append(sc.Signals, s)
	if s.Orientation == OrientHorizontal {
		sc.horizontal = append(sc.horizontal, s)
	} else {
		sc.vertical = append(sc.vertical, s)
	}
}

// Update ticks every signal, then restores the invariant.
func (sc *SignalCoordinator) Update(dt float64) {
	for _, s := range sc.Signals {
		s.Update(dt)
	}
	sc.Enforce()
}

// Cycle manually advances one signal and immediately re-coordinates.
func (sc *SignalCoordinator) Cycle(s *TrafficSignal) {
	s.CyclePhase()
	sc.Enforce()
}

// Enforce forces conflicting greens to Red. The horizontal group wins a
// simultaneous conflict.
func (sc *SignalCoordinator) Enforce() {
	anyGreen := false
	for _, h := range sc.horizontal {
		if h.CanPass() {
			anyGreen = true
			break
		}
	}
	if !anyGreen {
		return
	}
	for _, v := range sc.vertical {
		if v.CanPass() {
			v.ForceRed()
		}
	}
}

// GroupCanPass reports whether any signal of the given orientation shows
// Green.
func (sc *SignalCoordinator) GroupCanPass(o SignalOrientation) bool {
	for _, s := range sc.Signals {
		if s.Orientation == o && s.CanPass() {
			return true
		}
	}
	return false
}

// SignalFor returns the signal governing a travel direction. Horizontal
// traffic answers to horizontal signals and vice versa; each group holds one
// signal per approach (right/down first, left/up second).
func (sc *SignalCoordinator) SignalFor(d Direction) *TrafficSignal {
	group := sc.vertical
	if d.Horizontal() {
		group = sc.horizontal
	}
	idx := 0
	if d == DirLeft || d == DirUp {
		idx = 1
	}
	if idx >= len(group) {
		if len(group) == 0 {
			return nil
		}
		idx = 0
	}
	return group[idx]
}

// SignalAt returns the signal closest to (x, y) within the click tolerance,
// or nil.
func (sc *SignalCoordinator) SignalAt(x, y float64) *TrafficSignal {
	var best *TrafficSignal
	bestD := SignalClickRadius
	for _, s := range sc.Signals {
		d := math.Hypot(s.X-x, s.Y-y)
		if d <= bestD {
			bestD = d
			best = s
		}
	}
	return best
}
