package game

// Simulation owns every core system and drives one synchronous update per
// tick. Within a tick the order is fixed: signal timers, coordinator
// enforcement, motion gating, vehicle kinematics, exit bookkeeping, flow
// analysis, then the event drain. Gating must see post-coordination signal
// state, and events must see post-gating movement outcomes.
type Simulation struct {
	State SessionState

	Stats     *GameStats
	Pipeline  *EventPipeline
	Signals   *SignalCoordinator
	Gate      *MotionGate
	Spawner   *VehicleSpawner
	Analyzer  *FlowAnalyzer
	Particles *ParticleSystem
	Vehicles  []*Vehicle

	// Clock is accumulated scaled simulation time.
	Clock float64

	seed uint64
}

func NewSimulation(seed uint64) *Simulation {
	s := &Simulation{State: StateMenu, seed: seed}
	s.reset()
	return s
}

// reset builds a fresh session: new stats, pipeline, signals, spawner.
func (s *Simulation) reset() {
	s.Stats = NewGameStats()
	s.Pipeline = NewEventPipeline(s.Stats)
	s.Signals = newIntersection()
	s.Gate = NewMotionGate(s.Signals)
	s.Spawner = NewVehicleSpawner(s.seed ^ 0x5A11)
	s.Analyzer = NewFlowAnalyzer(s.seed ^ 0xF10A)
	s.Particles = NewParticleSystem(MaxParticles, s.seed^0xDEB5)
	s.Vehicles = s.Vehicles[:0]
	s.Clock = 0
}

// newIntersection places the four signals: one per approach, grouped by
// street orientation, all starting Red on automatic timers. The coordinator
// breaks the first simultaneous Green in favor of the horizontal group and
// the cycles interleave from there.
func newIntersection() *SignalCoordinator {
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2
	sc := NewSignalCoordinator()
	sc.Add(NewTrafficSignal(cx-SignalOffsetNear, cy-SignalOffsetFar, OrientHorizontal, GreenDuration, YellowDuration, RedDuration))
	sc.Add(NewTrafficSignal(cx+SignalOffsetNear, cy+SignalOffsetFar, OrientHorizontal, GreenDuration, YellowDuration, RedDuration))
	sc.Add(NewTrafficSignal(cx-SignalOffsetFar, cy-SignalOffsetNear, OrientVertical, GreenDuration, YellowDuration, RedDuration))
	sc.Add(NewTrafficSignal(cx+SignalOffsetFar, cy+SignalOffsetNear, OrientVertical, GreenDuration, YellowDuration, RedDuration))
	return sc
}

// Start begins play from the menu.
func (s *Simulation) Start() {
	if s.State != StateMenu {
		return
	}
	s.State = StatePlaying
}

// TogglePause flips between playing and paused.
func (s *Simulation) TogglePause() {
	switch s.State {
	case StatePlaying:
		s.State = StatePaused
	case StatePaused:
		s.State = StatePlaying
	}
}

// Restart discards the session and starts playing again. Valid from game
// over or mid-game.
func (s *Simulation) Restart() {
	s.reset()
	s.State = StatePlaying
}

// ClickAt resolves a click to a signal. The first click takes manual
// control of the signal; every click cycles its phase. A manual cycle to
// Green is a perfect-timing candidate.
func (s *Simulation) ClickAt(x, y float64) {
	if s.State != StatePlaying {
		return
	}
	sig := s.Signals.SignalAt(x, y)
	if sig == nil {
		return
	}
	sig.ManualOverride = true
	s.Signals.Cycle(sig)
	if ev := s.Analyzer.NoteManualGreen(sig, s.Vehicles); ev != nil {
		s.Pipeline.Emit(ev.Type, ev.Payload)
	}
}

// ReleaseAt returns a clicked signal to its automatic timer.
func (s *Simulation) ReleaseAt(x, y float64) {
	if s.State != StatePlaying {
		return
	}
	if sig := s.Signals.SignalAt(x, y); sig != nil {
		sig.ManualOverride = false
	}
}

// Tick advances the simulation by one frame. rawDT is wall-clock delta
// time; everything inside runs on power-up-scaled time except notification
// expiry.
func (s *Simulation) Tick(rawDT float64) {
	if s.State != StatePlaying {
		return
	}

	dt := rawDT * s.Stats.TimeScale
	s.Clock += dt
	s.Pipeline.Now = s.Clock
	s.Stats.TickTimers(dt)

	s.Signals.Update(dt)

	if v := s.Spawner.Update(dt, s.Stats.Level, s.liveCount()); v != nil {
		s.Vehicles = append(s.Vehicles, v)
	}

	verdicts, events := s.Gate.Evaluate(s.Vehicles)

	for i, v := range s.Vehicles {
		if !v.Removed {
			v.Update(dt, verdicts[i])
		}
	}

	stopped := s.stoppedCount()
	for _, v := range s.Vehicles {
		if v.Removed || !v.OffScreen() {
			continue
		}
		v.Removed = true
		events = append(events, pendingEvent{
			Type:    EventVehiclePassed,
			Payload: map[string]any{"vehicle": v},
		})
		events = append(events, s.Analyzer.NotePass(stopped)...)
	}

	events = append(events, s.Analyzer.Analyze(s.Vehicles)...)

	for _, pe := range events {
		e := s.Pipeline.Emit(pe.Type, pe.Payload)
		if e.Type == EventCollision {
			if v1, v2 := e.Vehicle("vehicle1"), e.Vehicle("vehicle2"); v1 != nil && v2 != nil {
				s.Particles.SpawnCrash((v1.X+v2.X)/2, (v1.Y+v2.Y)/2)
			}
		}
	}

	if s.Pipeline.ClearTraffic {
		s.Pipeline.ClearTraffic = false
		for _, v := range s.Vehicles {
			if v.Stopped && !v.Priority() {
				v.Removed = true
			}
		}
	}

	s.prune()
	s.Particles.Update(dt)
	s.Pipeline.ExpireNotifications(rawDT)

	if s.Stats.Lives <= 0 {
		s.State = StateGameOver
	}
}

func (s *Simulation) liveCount() int {
	n := 0
	for _, v := range s.Vehicles {
		if !v.Removed {
			n++
		}
	}
	return n
}

func (s *Simulation) stoppedCount() int {
	n := 0
	for _, v := range s.Vehicles {
		if !v.Removed && v.Stopped {
			n++
		}
	}
	return n
}

// prune compacts the vehicle slice, dropping removed entries.
func (s *Simulation) prune() {
	live := s.Vehicles[:0]
	for _, v := range s.Vehicles {
		if !v.Removed {
			live = append(live, v)
		}
	}
	s.Vehicles = live
}
