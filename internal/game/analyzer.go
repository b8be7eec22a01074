package game

// FlowAnalyzer is a tick-level pass over the whole intersection, separate
// from the per-vehicle gating checks. It turns aggregate traffic shape into
// Congestion, SmoothFlow, PerfectTiming and PowerUp events.
type FlowAnalyzer struct {
	rng *Rand

	cleanRun     int // consecutive passes with zero stopped vehicles
	smoothGrants int // smooth-flow bonuses since the last power-up
}

func NewFlowAnalyzer(seed uint64) *FlowAnalyzer {
	return &FlowAnalyzer{rng: NewRand(seed)}
}

// congestionLevel maps a stopped-vehicle count to a severity label; ""
// means traffic is flowing.
func congestionLevel(stopped int) string {
	switch {
	case stopped > CongestionCriticalCount:
		return "critical"
	case stopped > CongestionHighCount:
		return "high"
	case stopped > CongestionMediumCount:
		return "medium"
	case stopped > CongestionLowCount:
		return "low"
	default:
		return ""
	}
}

// Analyze inspects the live vehicle set once per tick and occasionally
// reports congestion. Emission is probabilistic so a standing jam does not
// drain the score every frame.
func (fa *FlowAnalyzer) Analyze(vehicles []*Vehicle) []pendingEvent {
	stopped := 0
	for _, v := range vehicles {
		if !v.Removed && v.Stopped {
			stopped++
		}
	}
	level := congestionLevel(stopped)
	if level == "" {
		return nil
	}
	if fa.rng.Float64() >= CongestionChance {
		return nil
	}
	return []pendingEvent{{
		Type:    EventCongestion,
		Payload: map[string]any{"level": level, "waiting_vehicles": stopped},
	}}
}

// NotePass records a completed crossing. A run of clean passes (nothing
// stopped anywhere) earns a SmoothFlow bonus; enough bonuses in a row earn
// a power-up.
func (fa *FlowAnalyzer) NotePass(stoppedCount int) []pendingEvent {
	if stoppedCount > 0 {
		fa.cleanRun = 0
		return nil
	}
	fa.cleanRun++
	if fa.cleanRun < SmoothFlowStreak {
		return nil
	}
	fa.cleanRun = 0

	events := []pendingEvent{{Type: EventSmoothFlow, Payload: map[string]any{}}}
	fa.smoothGrants++
	if fa.smoothGrants >= PowerUpStreaks {
		fa.smoothGrants = 0
		events = append(events, pendingEvent{
			Type:    EventPowerUp,
			Payload: map[string]any{"type": fa.pickPowerUp()},
		})
	}
	return events
}

// NoteManualGreen checks whether a manual cycle to Green arrived just in
// time for an approaching vehicle: still rolling, nose within a second of
// its stop line.
func (fa *FlowAnalyzer) NoteManualGreen(sig *TrafficSignal, vehicles []*Vehicle) *pendingEvent {
	if !sig.CanPass() {
		return nil
	}
	for _, v := range vehicles {
		if v.Removed || v.Stopped || v.Speed <= 0 || v.Priority() {
			continue
		}
		if v.Dir.Horizontal() != (sig.Orientation == OrientHorizontal) {
			continue
		}
		line := StopLine(v.Dir)
		var dist float64
		switch v.Dir {
		case DirRight:
			dist = line - (v.X + v.HalfLength())
		case DirLeft:
			dist = (v.X - v.HalfLength()) - line
		case DirDown:
			dist = line - (v.Y + v.HalfLength())
		default:
			dist = (v.Y - v.HalfLength()) - line
		}
		if dist > 0 && dist <= v.Speed*PerfectTimingWindow {
			return &pendingEvent{Type: EventPerfectTiming, Payload: map[string]any{"vehicle": v}}
		}
	}
	return nil
}

func (fa *FlowAnalyzer) pickPowerUp() string {
	kinds := [...]string{"slow_time", "score_multiplier", "extra_life", "clear_traffic"}
	return kinds[fa.rng.Intn(len(kinds))]
}
