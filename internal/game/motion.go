package game

// pendingEvent is an occurrence detected during gating, drained through the
// pipeline only after every vehicle has updated.
type pendingEvent struct {
	Type    GameEventType
	Payload map[string]any
}

// IntersectionZone is the bounding region where crossing traffic can
// collide.
func IntersectionZone() Rect {
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2
	return Rect{
		X: cx - IntersectionSize/2,
		Y: cy - IntersectionSize/2,
		W: IntersectionSize,
		H: IntersectionSize,
	}
}

// StopLine returns the coordinate of the painted stop line for a travel
// direction (an X for horizontal traffic, a Y for vertical).
func StopLine(d Direction) float64 {
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2
	switch d {
	case DirRight:
		return cx - StopLineDistance
	case DirLeft:
		return cx + StopLineDistance
	case DirDown:
		return cy - StopLineDistance
	default:
		return cy + StopLineDistance
	}
}

// MotionGate decides, per tick and per vehicle, whether it may advance. The
// verdict combines three independent checks: pairwise collision inside the
// intersection, following distance in the lane, and stop-line compliance
// with the governing signal.
type MotionGate struct {
	signals *SignalCoordinator
}

func NewMotionGate(signals *SignalCoordinator) *MotionGate {
	return &MotionGate{signals: signals}
}

// Evaluate returns the movement verdict for each vehicle (parallel to the
// input slice) plus any events the checks generated.
func (m *MotionGate) Evaluate(vehicles []*Vehicle) ([]bool, []pendingEvent) {
	verdicts := make([]bool, len(vehicles))
	var events []pendingEvent

	collided := make([]bool, len(vehicles))
	zone := IntersectionZone()
	for i, v1 := range vehicles {
		for j := i + 1; j < len(vehicles); j++ {
			v2 := vehicles[j]
			if v1.Dir.Horizontal() == v2.Dir.Horizontal() {
				continue
			}
			if !zone.Contains(v1.X, v1.Y) || !zone.Contains(v2.X, v2.Y) {
				continue
			}
			if !v1.Rect().Overlaps(v2.Rect()) {
				continue
			}
			collided[i] = true
			collided[j] = true
			events = append(events, pendingEvent{
				Type:    EventCollision,
				Payload: map[string]any{"vehicle1": v1, "vehicle2": v2},
			})
		}
	}

	for i, v := range vehicles {
		spacingOK, ahead := m.spacingOK(v, vehicles)
		signalOK := m.signalOK(v)

		// Spacing runs before the signal check: rear-end pileups are
		// prevented no matter what the lights show.
		verdicts[i] = !collided[i] && spacingOK && signalOK

		if ev := m.checkRedLightCrossing(v); ev != nil {
			events = append(events, *ev)
		}
		if ev := m.checkObstruction(v, spacingOK, ahead); ev != nil {
			events = append(events, *ev)
		}
	}

	return verdicts, events
}

// spacingOK checks the gap to the nearest vehicle ahead in the same lane
// and direction. The threshold grows with both footprints so long vehicles
// keep longer gaps. Returns the blocking vehicle when too close.
func (m *MotionGate) spacingOK(v *Vehicle, vehicles []*Vehicle) (bool, *Vehicle) {
	ahead, gap := vehicleAhead(v, vehicles)
	if ahead == nil {
		return true, nil
	}
	safe := SafeDistance + (v.Class.Params().Length+ahead.Class.Params().Length)/2
	if gap >= safe {
		return true, nil
	}
	return false, ahead
}

// vehicleAhead finds the closest same-lane, same-direction vehicle in front
// of v, with its centre-to-centre distance.
func vehicleAhead(v *Vehicle, vehicles []*Vehicle) (*Vehicle, float64) {
	var closest *Vehicle
	minDist := 0.0
	for _, other := range vehicles {
		if other == v || other.Removed || other.Dir != v.Dir {
			continue
		}
		if !sameLane(v, other) {
			continue
		}
		d, ok := distanceAhead(v, other)
		if !ok {
			continue
		}
		if closest == nil || d < minDist {
			closest = other
			minDist = d
		}
	}
	return closest, minDist
}

func sameLane(v1, v2 *Vehicle) bool {
	if v1.Dir.Horizontal() {
		return absF(v1.Y-v2.Y) < LaneTolerance
	}
	return absF(v1.X-v2.X) < LaneTolerance
}

// distanceAhead returns how far other is in front of v along v's travel
// direction; ok is false when other is behind.
func distanceAhead(v, other *Vehicle) (float64, bool) {
	var d float64
	switch v.Dir {
	case DirRight:
		d = other.X - v.X
	case DirLeft:
		d = v.X - other.X
	case DirDown:
		d = other.Y - v.Y
	default:
		d = v.Y - other.Y
	}
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// signalOK applies the stop-line compliance rule. Before the hold zone the
// signal is irrelevant; inside it, only a Green (or a priority vehicle)
// allows movement. Past the intersection centre the vehicle is committed.
func (m *MotionGate) signalOK(v *Vehicle) bool {
	if v.Priority() {
		return true
	}
	sig := m.signals.SignalFor(v.Dir)
	if sig == nil {
		return true
	}
	if m.inHoldZone(v) {
		return sig.CanPass()
	}
	return true
}

// inHoldZone reports whether the vehicle's front is at or past its stop
// point but not yet committed to the intersection. The stop point backs the
// line off by the vehicle's half-length, a detection margin, and its current
// braking distance, so a braking vehicle halts with its nose on the line
// instead of sliding over it.
func (m *MotionGate) inHoldZone(v *Vehicle) bool {
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2
	line := StopLine(v.Dir)
	back := v.HalfLength() + DetectionMargin + v.BrakingDistance()
	const commit = 50.0

	switch v.Dir {
	case DirRight:
		return v.X >= line-back && v.X < cx-commit
	case DirLeft:
		return v.X <= line+back && v.X > cx+commit
	case DirDown:
		return v.Y >= line-back && v.Y < cy-commit
	default:
		return v.Y <= line+back && v.Y > cy+commit
	}
}

// checkRedLightCrossing emits one Violation the tick a non-priority
// vehicle's nose first passes its stop line against a non-Green signal.
func (m *MotionGate) checkRedLightCrossing(v *Vehicle) *pendingEvent {
	if v.crossedLine {
		return nil
	}
	line := StopLine(v.Dir)
	var crossed bool
	switch v.Dir {
	case DirRight:
		crossed = v.X+v.HalfLength() >= line
	case DirLeft:
		crossed = v.X-v.HalfLength() <= line
	case DirDown:
		crossed = v.Y+v.HalfLength() >= line
	default:
		crossed = v.Y-v.HalfLength() <= line
	}
	if !crossed {
		return nil
	}
	v.crossedLine = true

	if v.Priority() {
		return nil // emergency vehicles clear a Red silently
	}
	sig := m.signals.SignalFor(v.Dir)
	if sig == nil || sig.CanPass() {
		return nil
	}
	return &pendingEvent{
		Type:    EventViolation,
		Payload: map[string]any{"type": "red_light", "vehicle": v},
	}
}

// checkObstruction flags a priority vehicle pinned near the stop line by a
// non-priority vehicle's blockage. Reported once per stop episode.
func (m *MotionGate) checkObstruction(v *Vehicle, spacingOK bool, ahead *Vehicle) *pendingEvent {
	if !v.Priority() {
		return nil
	}
	if spacingOK || ahead == nil || ahead.Priority() {
		v.obstructionSent = false
		return nil
	}
	if !m.inHoldZone(v) || v.obstructionSent {
		return nil
	}
	v.obstructionSent = true
	return &pendingEvent{
		Type:    EventViolation,
		Payload: map[string]any{"type": "emergency_obstruction", "vehicle": v, "blocker": ahead},
	}
}
