package game

import (
	"fmt"
	"log/slog"
)

type GameEventType int

const (
	EventCollision GameEventType = iota
	EventViolation
	EventVehiclePassed
	EventCongestion
	EventPowerUp
	EventSmoothFlow
	EventPerfectTiming
)

func (t GameEventType) String() string {
	switch t {
	case EventCollision:
		return "collision"
	case EventViolation:
		return "violation"
	case EventVehiclePassed:
		return "vehicle_passed"
	case EventCongestion:
		return "congestion"
	case EventPowerUp:
		return "power_up"
	case EventSmoothFlow:
		return "smooth_flow"
	default:
		return "perfect_timing"
	}
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityPositive
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityPositive:
		return "positive"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "info"
	}
}

// EventResponse is filled in by whichever handler applied its effect.
type EventResponse struct {
	Penalty  int
	Points   int
	Message  string
	Severity Severity
}

// GameEvent is one simulation occurrence traveling through the pipeline.
// Created when detected, processed synchronously, then discarded.
type GameEvent struct {
	Type     GameEventType
	Payload  map[string]any
	Handled  bool
	Response EventResponse
}

// Vehicle fetches a vehicle reference from the payload; nil when the key is
// absent or holds something else. Handlers treat nil as a field-level no-op.
func (e *GameEvent) Vehicle(key string) *Vehicle {
	v, _ := e.Payload[key].(*Vehicle)
	return v
}

// Str fetches a string payload field, or "".
func (e *GameEvent) Str(key string) string {
	s, _ := e.Payload[key].(string)
	return s
}

// Float fetches a float payload field, or def.
func (e *GameEvent) Float(key string, def float64) float64 {
	if f, ok := e.Payload[key].(float64); ok {
		return f
	}
	return def
}

// Int fetches an int payload field, or 0.
func (e *GameEvent) Int(key string) int {
	n, _ := e.Payload[key].(int)
	return n
}

// Notification is a transient message for the UI layer. The core only
// creates and expires them; the renderer reads them.
type Notification struct {
	Message  string
	Severity Severity
	Age      float64
	Duration float64
}

// LogEntry is one record in the terminal handler's append-only log.
type LogEntry struct {
	Time     float64
	Type     GameEventType
	Subtype  string
	Penalty  int
	Points   int
	Message  string
	Severity Severity
}

// eventHandler is one link of the fixed chain: a match predicate plus an
// effect. Effects mutate GameStats (and the event's response) only.
type eventHandler struct {
	name  string
	match func(*GameEvent) bool
	apply func(*EventPipeline, *GameEvent)
}

// EventPipeline processes events through a fixed, ordered handler chain:
// collision → violation → score → power-up → congestion → logging. The
// chain topology is set at construction and never changes. Handlers skip
// events already marked handled, so reprocessing a duplicate costs nothing
// beyond a log append.
type EventPipeline struct {
	stats *GameStats
	chain []eventHandler

	// Now is simulation time, stamped onto log entries by the caller.
	Now float64

	// ClearTraffic is raised by the clear_traffic power-up and consumed by
	// the simulation on its next removal pass.
	ClearTraffic bool

	Notifications []Notification
	log           []LogEntry
}

func NewEventPipeline(stats *GameStats) *EventPipeline {
	p := &EventPipeline{stats: stats}
	p.chain = []eventHandler{
		{name: "collision", match: matchType(EventCollision), apply: handleCollision},
		{name: "violation", match: matchType(EventViolation), apply: handleViolation},
		{name: "score", match: matchScore, apply: handleScore},
		{name: "powerup", match: matchType(EventPowerUp), apply: handlePowerUp},
		{name: "congestion", match: matchType(EventCongestion), apply: handleCongestion},
		{name: "logging", match: func(*GameEvent) bool { return true }, apply: handleLogging},
	}
	return p
}

// Emit creates an event and drives it through the chain.
func (p *EventPipeline) Emit(t GameEventType, payload map[string]any) *GameEvent {
	e := &GameEvent{Type: t, Payload: payload}
	p.Process(e)
	return e
}

// Process runs the event through every handler in order. The terminal
// logging handler matches everything and marks the event handled; an event
// arriving already handled reaches only that append.
func (p *EventPipeline) Process(e *GameEvent) {
	wasHandled := e.Handled
	for i, h := range p.chain {
		terminal := i == len(p.chain)-1
		if e.Handled && !terminal {
			continue
		}
		if h.match(e) {
			h.apply(p, e)
		}
	}
	if !wasHandled && e.Response.Message != "" {
		p.Notifications = append(p.Notifications, Notification{
			Message:  e.Response.Message,
			Severity: e.Response.Severity,
			Duration: NotificationDuration,
		})
	}
}

// ExpireNotifications ages the queue and drops entries past their display
// duration.
func (p *EventPipeline) ExpireNotifications(dt float64) {
	live := p.Notifications[:0]
	for _, n := range p.Notifications {
		n.Age += dt
		if n.Age < n.Duration {
			live = append(live, n)
		}
	}
	p.Notifications = live
}

// RecentEvents returns up to count most recent log entries, oldest first.
func (p *EventPipeline) RecentEvents(count int) []LogEntry {
	if count > len(p.log) {
		count = len(p.log)
	}
	return p.log[len(p.log)-count:]
}

func matchType(t GameEventType) func(*GameEvent) bool {
	return func(e *GameEvent) bool { return e.Type == t }
}

func matchScore(e *GameEvent) bool {
	return e.Type == EventVehiclePassed || e.Type == EventSmoothFlow || e.Type == EventPerfectTiming
}

func handleCollision(p *EventPipeline, e *GameEvent) {
	v1 := e.Vehicle("vehicle1")
	v2 := e.Vehicle("vehicle2")
	if v1 == nil || v2 == nil {
		return
	}

	penalty := PenaltyCollision
	if v1.Priority() || v2.Priority() {
		penalty = PenaltyCollisionPriority
	}
	p.stats.Penalize(penalty)
	p.stats.Lives--
	p.stats.Collisions++

	// Removal is idempotent; a vehicle in two overlapping pairs is fine.
	v1.Removed = true
	v2.Removed = true

	sev := SeverityMedium
	if penalty > PenaltyCollision {
		sev = SeverityHigh
	}
	e.Response = EventResponse{
		Penalty:  penalty,
		Message:  fmt.Sprintf("Collision! -%d points", penalty),
		Severity: sev,
	}
}

var violationPenalties = map[string]int{
	"red_light":             PenaltyRedLight,
	"speeding":              PenaltySpeeding,
	"wrong_lane":            PenaltyWrongLane,
	"emergency_obstruction": PenaltyObstruction,
}

var violationMessages = map[string]string{
	"red_light":             "Red light ignored!",
	"speeding":              "Speeding!",
	"wrong_lane":            "Wrong lane!",
	"emergency_obstruction": "Emergency vehicle obstructed!",
}

func handleViolation(p *EventPipeline, e *GameEvent) {
	subtype := e.Str("type")
	penalty, ok := violationPenalties[subtype]
	if !ok {
		penalty = PenaltyViolationDefault
	}
	p.stats.Penalize(penalty)
	p.stats.Violations++

	msg, ok := violationMessages[subtype]
	if !ok {
		msg = "Traffic violation"
	}
	sev := SeverityLow
	if penalty > PenaltyCollision {
		sev = SeverityHigh
	}
	e.Response = EventResponse{
		Penalty:  penalty,
		Message:  fmt.Sprintf("%s -%d points", msg, penalty),
		Severity: sev,
	}
}

func handleScore(p *EventPipeline, e *GameEvent) {
	var points int
	var msg string

	switch e.Type {
	case EventVehiclePassed:
		points = PointsStandard
		msg = fmt.Sprintf("+%d points", points)
		if v := e.Vehicle("vehicle"); v != nil {
			switch {
			case v.Priority():
				points = PointsPriority
				msg = fmt.Sprintf("Emergency vehicle through! +%d points", points)
			case v.Class == ClassBus:
				points = PointsBus
				msg = fmt.Sprintf("Bus through! +%d points", points)
			}
		}
		p.stats.RecordPass()

	case EventSmoothFlow:
		points = PointsSmoothFlow
		msg = fmt.Sprintf("Smooth flow! +%d points", points)

	case EventPerfectTiming:
		points = PointsPerfectTiming
		msg = fmt.Sprintf("Perfect timing! +%d points", points)
	}

	awarded := p.stats.Award(points)
	e.Response = EventResponse{
		Points:   awarded,
		Message:  msg,
		Severity: SeverityPositive,
	}
}

func handlePowerUp(p *EventPipeline, e *GameEvent) {
	switch e.Str("type") {
	case "slow_time":
		p.stats.TimeScale = SlowTimeScale
		p.stats.PowerUpTime = SlowTimeDuration
		e.Response = EventResponse{Message: "Time slowed!", Severity: SeverityPositive}

	case "extra_life":
		p.stats.Lives++
		e.Response = EventResponse{Message: "Extra life!", Severity: SeverityPositive}

	case "score_multiplier":
		p.stats.ScoreMul = ScoreMultiplier
		p.stats.MultiplierTime = e.Float("duration", MultiplierDuration)
		e.Response = EventResponse{Message: "Points x2!", Severity: SeverityPositive}

	case "clear_traffic":
		p.ClearTraffic = true
		e.Response = EventResponse{Message: "Traffic cleared!", Severity: SeverityPositive}
	}
}

var congestionPenalties = map[string]int{
	"low":      PenaltyCongestionLow,
	"medium":   PenaltyCongestionMedium,
	"high":     PenaltyCongestionHigh,
	"critical": PenaltyCongestionCritical,
}

var congestionMessages = map[string]string{
	"low":      "Slow traffic",
	"medium":   "Moderate congestion",
	"high":     "Heavy traffic!",
	"critical": "CRITICAL CONGESTION!",
}

func handleCongestion(p *EventPipeline, e *GameEvent) {
	level := e.Str("level")
	penalty, ok := congestionPenalties[level]
	if !ok {
		penalty = PenaltyCongestionDefault
	}
	p.stats.Penalize(penalty)

	sev := SeverityHigh
	if level == "low" || level == "medium" {
		sev = SeverityMedium
	}
	msg, ok := congestionMessages[level]
	if !ok {
		msg = "Congestion"
	}
	e.Response = EventResponse{
		Penalty:  penalty,
		Message:  fmt.Sprintf("%s -%d points", msg, penalty),
		Severity: sev,
	}
}

// handleLogging is the terminal handler: it records every event, handled or
// not, and marks it handled.
func handleLogging(p *EventPipeline, e *GameEvent) {
	entry := LogEntry{
		Time:     p.Now,
		Type:     e.Type,
		Subtype:  e.Str("type"),
		Penalty:  e.Response.Penalty,
		Points:   e.Response.Points,
		Message:  e.Response.Message,
		Severity: e.Response.Severity,
	}
	p.log = append(p.log, entry)
	if len(p.log) > EventLogSize {
		p.log = p.log[1:]
	}
	slog.Debug("event",
		"type", e.Type.String(),
		"subtype", entry.Subtype,
		"penalty", entry.Penalty,
		"points", entry.Points,
		"score", p.stats.Score,
	)
	e.Handled = true
}
