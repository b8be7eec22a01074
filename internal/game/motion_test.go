package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGate() (*MotionGate, *SignalCoordinator) {
	sc := newIntersection()
	return NewMotionGate(sc), sc
}

func setGroup(sc *SignalCoordinator, o SignalOrientation, p SignalPhase) {
	for _, s := range sc.Signals {
		if s.Orientation == o {
			s.Phase = p
		}
	}
}

func findEvents(events []pendingEvent, t GameEventType) []pendingEvent {
	var out []pendingEvent
	for _, e := range events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func TestCollisionInsideIntersection(t *testing.T) {
	gate, _ := testGate()
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2

	v1 := NewVehicle(ClassStandard, cx, cy, DirRight, 0, NewRand(1))
	v2 := NewVehicle(ClassStandard, cx, cy, DirDown, 2, NewRand(2))
	verdicts, events := gate.Evaluate([]*Vehicle{v1, v2})

	assert.False(t, verdicts[0])
	assert.False(t, verdicts[1])
	collisions := findEvents(events, EventCollision)
	require.Len(t, collisions, 1, "one event per colliding pair")
	assert.Same(t, v1, collisions[0].Payload["vehicle1"])
	assert.Same(t, v2, collisions[0].Payload["vehicle2"])
}

func TestNoCollisionForParallelTraffic(t *testing.T) {
	gate, sc := testGate()
	setGroup(sc, OrientHorizontal, PhaseGreen)
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2

	// Overlapping footprints but same axis: spacing handles this case, not
	// the collision check.
	v1 := NewVehicle(ClassStandard, cx, cy-30, DirRight, 0, NewRand(1))
	v2 := NewVehicle(ClassStandard, cx+20, cy-30, DirRight, 0, NewRand(2))
	_, events := gate.Evaluate([]*Vehicle{v1, v2})
	assert.Empty(t, findEvents(events, EventCollision))
}

func TestNoCollisionOutsideZone(t *testing.T) {
	gate, _ := testGate()

	v1 := NewVehicle(ClassStandard, 100, 380, DirRight, 0, NewRand(1))
	v2 := NewVehicle(ClassStandard, 100, 380, DirDown, 2, NewRand(2))
	_, events := gate.Evaluate([]*Vehicle{v1, v2})
	assert.Empty(t, findEvents(events, EventCollision))
}

func TestSpacingBlocksFollower(t *testing.T) {
	gate, _ := testGate()

	follower := NewVehicle(ClassStandard, 100, 370, DirRight, 0, NewRand(1))
	leader := NewVehicle(ClassStandard, 180, 370, DirRight, 0, NewRand(2))
	verdicts, _ := gate.Evaluate([]*Vehicle{follower, leader})

	assert.False(t, verdicts[0], "gap of 80 is under the safe distance")
	assert.True(t, verdicts[1], "nothing ahead of the leader")
}

func TestSpacingIgnoresOtherLanes(t *testing.T) {
	gate, _ := testGate()

	follower := NewVehicle(ClassStandard, 100, 370, DirRight, 0, NewRand(1))
	oncoming := NewVehicle(ClassStandard, 180, 430, DirLeft, 1, NewRand(2))
	verdicts, _ := gate.Evaluate([]*Vehicle{follower, oncoming})
	assert.True(t, verdicts[0], "opposite lane is out of scope for spacing")
}

func TestSpacingScalesWithLength(t *testing.T) {
	gate, _ := testGate()

	// Gap of 150: fine between two standard cars (threshold 140), too
	// close behind a truck (threshold 170).
	follower := NewVehicle(ClassStandard, 100, 370, DirRight, 0, NewRand(1))
	car := NewVehicle(ClassStandard, 250, 370, DirRight, 0, NewRand(2))
	verdicts, _ := gate.Evaluate([]*Vehicle{follower, car})
	assert.True(t, verdicts[0])

	truck := NewVehicle(ClassTruck, 250, 370, DirRight, 0, NewRand(3))
	verdicts, _ = gate.Evaluate([]*Vehicle{follower, truck})
	assert.False(t, verdicts[0])
}

func TestRedSignalHoldsVehicleAtLine(t *testing.T) {
	gate, sc := testGate()
	v := NewVehicle(ClassStandard, 470, 370, DirRight, 0, NewRand(1))

	verdicts, _ := gate.Evaluate([]*Vehicle{v})
	assert.False(t, verdicts[0], "red signal blocks inside the hold zone")

	setGroup(sc, OrientHorizontal, PhaseGreen)
	verdicts, _ = gate.Evaluate([]*Vehicle{v})
	assert.True(t, verdicts[0])

	setGroup(sc, OrientHorizontal, PhaseYellow)
	verdicts, _ = gate.Evaluate([]*Vehicle{v})
	assert.False(t, verdicts[0], "yellow blocks like red")
}

func TestSignalIrrelevantBeforeHoldZone(t *testing.T) {
	gate, _ := testGate()
	v := NewVehicle(ClassStandard, 100, 370, DirRight, 0, NewRand(1))
	verdicts, _ := gate.Evaluate([]*Vehicle{v})
	assert.True(t, verdicts[0], "far from the line the signal does not gate")
}

func TestCommittedVehicleIgnoresSignal(t *testing.T) {
	gate, _ := testGate()
	cx := float64(ScreenWidth) / 2
	v := NewVehicle(ClassStandard, cx-20, 370, DirRight, 0, NewRand(1))
	v.crossedLine = true
	verdicts, _ := gate.Evaluate([]*Vehicle{v})
	assert.True(t, verdicts[0], "past the commit point a red cannot stop the vehicle")
}

func TestEmergencyBypassesRed(t *testing.T) {
	gate, _ := testGate()
	v := NewVehicle(ClassEmergency, 460, 370, DirRight, 0, NewRand(1))
	verdicts, events := gate.Evaluate([]*Vehicle{v})
	assert.True(t, verdicts[0])
	assert.Empty(t, findEvents(events, EventViolation), "priority crossings are silent")
}

func TestRedLightViolationEmittedOnce(t *testing.T) {
	gate, _ := testGate()

	// Nose past the line, signal Red.
	line := StopLine(DirRight)
	v := NewVehicle(ClassStandard, line-10, 370, DirRight, 0, NewRand(1))
	_, events := gate.Evaluate([]*Vehicle{v})
	violations := findEvents(events, EventViolation)
	require.Len(t, violations, 1)
	assert.Equal(t, "red_light", violations[0].Payload["type"])
	assert.Same(t, v, violations[0].Payload["vehicle"])

	// Latched: re-evaluating the same crossing stays quiet.
	_, events = gate.Evaluate([]*Vehicle{v})
	assert.Empty(t, findEvents(events, EventViolation))
}

func TestNoViolationOnGreen(t *testing.T) {
	gate, sc := testGate()
	setGroup(sc, OrientHorizontal, PhaseGreen)

	line := StopLine(DirRight)
	v := NewVehicle(ClassStandard, line-10, 370, DirRight, 0, NewRand(1))
	_, events := gate.Evaluate([]*Vehicle{v})
	assert.Empty(t, findEvents(events, EventViolation))
	assert.True(t, v.crossedLine, "the crossing still latches")
}

func TestEmergencyObstructionReportedOnce(t *testing.T) {
	gate, sc := testGate()
	setGroup(sc, OrientHorizontal, PhaseGreen) // no red-light noise from the blocker

	blocker := NewVehicle(ClassStandard, 520, 370, DirRight, 0, NewRand(1))
	emergency := NewVehicle(ClassEmergency, 460, 370, DirRight, 0, NewRand(2))
	vehicles := []*Vehicle{blocker, emergency}

	_, events := gate.Evaluate(vehicles)
	obstructions := findEvents(events, EventViolation)
	require.Len(t, obstructions, 1)
	assert.Equal(t, "emergency_obstruction", obstructions[0].Payload["type"])
	assert.Same(t, emergency, obstructions[0].Payload["vehicle"])
	assert.Same(t, blocker, obstructions[0].Payload["blocker"])

	// One report per stop episode.
	_, events = gate.Evaluate(vehicles)
	assert.Empty(t, findEvents(events, EventViolation))
}

func TestStopLinePlacement(t *testing.T) {
	cx, cy := float64(ScreenWidth)/2, float64(ScreenHeight)/2
	assert.Equal(t, cx-StopLineDistance, StopLine(DirRight))
	assert.Equal(t, cx+StopLineDistance, StopLine(DirLeft))
	assert.Equal(t, cy-StopLineDistance, StopLine(DirDown))
	assert.Equal(t, cy+StopLineDistance, StopLine(DirUp))

	zone := IntersectionZone()
	assert.True(t, zone.Contains(cx, cy))
	assert.False(t, zone.Contains(cx, cy-IntersectionSize))
}
