package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline() (*EventPipeline, *GameStats) {
	stats := NewGameStats()
	return NewEventPipeline(stats), stats
}

func TestCollisionHandler(t *testing.T) {
	p, stats := testPipeline()
	stats.Score = 500

	v1 := NewVehicle(ClassStandard, 600, 400, DirRight, 0, NewRand(1))
	v2 := NewVehicle(ClassStandard, 600, 400, DirDown, 2, NewRand(2))
	e := p.Emit(EventCollision, map[string]any{"vehicle1": v1, "vehicle2": v2})

	assert.Equal(t, 400, stats.Score)
	assert.Equal(t, InitialLives-1, stats.Lives)
	assert.Equal(t, 1, stats.Collisions)
	assert.True(t, v1.Removed)
	assert.True(t, v2.Removed)
	assert.Equal(t, PenaltyCollision, e.Response.Penalty)
	assert.Equal(t, SeverityMedium, e.Response.Severity)
}

func TestCollisionWithPriorityVehicle(t *testing.T) {
	p, stats := testPipeline()
	stats.Score = 500

	v1 := NewVehicle(ClassEmergency, 600, 400, DirRight, 0, NewRand(1))
	v2 := NewVehicle(ClassStandard, 600, 400, DirDown, 2, NewRand(2))
	e := p.Emit(EventCollision, map[string]any{"vehicle1": v1, "vehicle2": v2})

	assert.Equal(t, 200, stats.Score)
	assert.Equal(t, PenaltyCollisionPriority, e.Response.Penalty)
	assert.Equal(t, SeverityHigh, e.Response.Severity)
}

func TestCollisionWithMissingVehicles(t *testing.T) {
	p, stats := testPipeline()
	stats.Score = 500

	// A malformed payload must not cost a life or points.
	p.Emit(EventCollision, map[string]any{"vehicle1": "bogus"})
	assert.Equal(t, 500, stats.Score)
	assert.Equal(t, InitialLives, stats.Lives)
}

func TestViolationPenalties(t *testing.T) {
	cases := map[string]int{
		"red_light":             PenaltyRedLight,
		"speeding":              PenaltySpeeding,
		"wrong_lane":            PenaltyWrongLane,
		"emergency_obstruction": PenaltyObstruction,
		"never_heard_of_it":     PenaltyViolationDefault,
	}
	for subtype, want := range cases {
		t.Run(subtype, func(t *testing.T) {
			p, stats := testPipeline()
			stats.Score = 1000
			e := p.Emit(EventViolation, map[string]any{"type": subtype})
			assert.Equal(t, 1000-want, stats.Score)
			assert.Equal(t, want, e.Response.Penalty)
			assert.Equal(t, 1, stats.Violations)
		})
	}
}

func TestScoreFloor(t *testing.T) {
	p, stats := testPipeline()
	stats.Score = 10
	p.Emit(EventViolation, map[string]any{"type": "red_light"})
	assert.Equal(t, 0, stats.Score, "penalties clamp at zero")
}

func TestScoreHandlerByClass(t *testing.T) {
	cases := []struct {
		class VehicleClass
		want  int
	}{
		{ClassStandard, PointsStandard},
		{ClassFast, PointsStandard},
		{ClassBus, PointsBus},
		{ClassTruck, PointsStandard},
		{ClassEmergency, PointsPriority},
	}
	for _, tc := range cases {
		t.Run(tc.class.String(), func(t *testing.T) {
			p, stats := testPipeline()
			v := NewVehicle(tc.class, 0, 370, DirRight, 0, NewRand(1))
			e := p.Emit(EventVehiclePassed, map[string]any{"vehicle": v})
			assert.Equal(t, tc.want, stats.Score)
			assert.Equal(t, tc.want, e.Response.Points)
			assert.Equal(t, 1, stats.VehiclesPassed)
		})
	}
}

func TestBonusEvents(t *testing.T) {
	p, stats := testPipeline()
	p.Emit(EventSmoothFlow, nil)
	assert.Equal(t, PointsSmoothFlow, stats.Score)
	p.Emit(EventPerfectTiming, nil)
	assert.Equal(t, PointsSmoothFlow+PointsPerfectTiming, stats.Score)
	assert.Equal(t, 0, stats.VehiclesPassed, "bonuses do not count as passes")
}

func TestScoreMultiplierApplies(t *testing.T) {
	p, stats := testPipeline()
	stats.ScoreMul = 2.0
	v := NewVehicle(ClassStandard, 0, 370, DirRight, 0, NewRand(1))
	e := p.Emit(EventVehiclePassed, map[string]any{"vehicle": v})
	assert.Equal(t, PointsStandard*2, stats.Score)
	assert.Equal(t, PointsStandard*2, e.Response.Points)
}

func TestLevelAdvancesOncePerThreshold(t *testing.T) {
	p, stats := testPipeline()
	for i := 0; i < VehiclesPerLevel-1; i++ {
		v := NewVehicle(ClassStandard, 0, 370, DirRight, 0, NewRand(1))
		p.Emit(EventVehiclePassed, map[string]any{"vehicle": v})
	}
	assert.Equal(t, 1, stats.Level)

	v := NewVehicle(ClassStandard, 0, 370, DirRight, 0, NewRand(1))
	p.Emit(EventVehiclePassed, map[string]any{"vehicle": v})
	assert.Equal(t, 2, stats.Level, "level up exactly at the threshold")

	p.Emit(EventVehiclePassed, map[string]any{"vehicle": v})
	assert.Equal(t, 2, stats.Level, "one level per threshold, not per tick")
}

func TestPowerUpHandler(t *testing.T) {
	t.Run("slow_time", func(t *testing.T) {
		p, stats := testPipeline()
		p.Emit(EventPowerUp, map[string]any{"type": "slow_time"})
		assert.Equal(t, SlowTimeScale, stats.TimeScale)
		assert.Equal(t, SlowTimeDuration, stats.PowerUpTime)
	})
	t.Run("extra_life", func(t *testing.T) {
		p, stats := testPipeline()
		p.Emit(EventPowerUp, map[string]any{"type": "extra_life"})
		assert.Equal(t, InitialLives+1, stats.Lives)
	})
	t.Run("score_multiplier", func(t *testing.T) {
		p, stats := testPipeline()
		p.Emit(EventPowerUp, map[string]any{"type": "score_multiplier", "duration": 3.0})
		assert.Equal(t, ScoreMultiplier, stats.ScoreMul)
		assert.Equal(t, 3.0, stats.MultiplierTime)
	})
	t.Run("score_multiplier default duration", func(t *testing.T) {
		p, stats := testPipeline()
		p.Emit(EventPowerUp, map[string]any{"type": "score_multiplier"})
		assert.Equal(t, MultiplierDuration, stats.MultiplierTime)
	})
	t.Run("clear_traffic", func(t *testing.T) {
		p, _ := testPipeline()
		p.Emit(EventPowerUp, map[string]any{"type": "clear_traffic"})
		assert.True(t, p.ClearTraffic)
	})
}

func TestCongestionHandler(t *testing.T) {
	cases := []struct {
		level   string
		penalty int
		sev     Severity
	}{
		{"low", PenaltyCongestionLow, SeverityMedium},
		{"medium", PenaltyCongestionMedium, SeverityMedium},
		{"high", PenaltyCongestionHigh, SeverityHigh},
		{"critical", PenaltyCongestionCritical, SeverityHigh},
		{"unknown", PenaltyCongestionDefault, SeverityHigh},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			p, stats := testPipeline()
			stats.Score = 100
			e := p.Emit(EventCongestion, map[string]any{"level": tc.level})
			assert.Equal(t, 100-tc.penalty, stats.Score)
			assert.Equal(t, tc.sev, e.Response.Severity)
		})
	}
}

func TestPipelineIdempotence(t *testing.T) {
	p, stats := testPipeline()
	v := NewVehicle(ClassStandard, 0, 370, DirRight, 0, NewRand(1))
	e := &GameEvent{Type: EventVehiclePassed, Payload: map[string]any{"vehicle": v}}

	p.Process(e)
	require.Equal(t, PointsStandard, stats.Score)
	require.True(t, e.Handled)
	require.Len(t, p.Notifications, 1)

	// A handled event reaching the chain again is only logged.
	p.Process(e)
	assert.Equal(t, PointsStandard, stats.Score, "effects apply once")
	assert.Equal(t, 1, stats.VehiclesPassed)
	assert.Len(t, p.Notifications, 1, "no duplicate notification")
	assert.Len(t, p.RecentEvents(10), 2, "both passes are logged")
}

func TestEveryEventIsLogged(t *testing.T) {
	p, _ := testPipeline()
	p.Now = 12.5
	p.Emit(EventViolation, map[string]any{"type": "red_light"})

	entries := p.RecentEvents(1)
	require.Len(t, entries, 1)
	assert.Equal(t, 12.5, entries[0].Time)
	assert.Equal(t, EventViolation, entries[0].Type)
	assert.Equal(t, "red_light", entries[0].Subtype)
	assert.Equal(t, PenaltyRedLight, entries[0].Penalty)
}

func TestEventLogIsBounded(t *testing.T) {
	p, _ := testPipeline()
	for i := 0; i < EventLogSize+25; i++ {
		p.Emit(EventSmoothFlow, nil)
	}
	assert.Len(t, p.RecentEvents(EventLogSize*2), EventLogSize)
}

func TestNotificationLifecycle(t *testing.T) {
	p, _ := testPipeline()
	p.Emit(EventViolation, map[string]any{"type": "speeding"})
	require.Len(t, p.Notifications, 1)
	n := p.Notifications[0]
	assert.Contains(t, n.Message, "Speeding")
	assert.Contains(t, n.Message, fmt.Sprintf("-%d", PenaltySpeeding))
	assert.Equal(t, NotificationDuration, n.Duration)

	p.ExpireNotifications(NotificationDuration / 2)
	assert.Len(t, p.Notifications, 1)
	p.ExpireNotifications(NotificationDuration)
	assert.Empty(t, p.Notifications)
}

func TestStatsTimersRestoreDefaults(t *testing.T) {
	stats := NewGameStats()
	stats.TimeScale = SlowTimeScale
	stats.PowerUpTime = 1.0
	stats.ScoreMul = ScoreMultiplier
	stats.MultiplierTime = 0.5

	stats.TickTimers(0.6)
	assert.Equal(t, 1.0, stats.ScoreMul, "multiplier expires first")
	assert.Equal(t, SlowTimeScale, stats.TimeScale)

	stats.TickTimers(0.6)
	assert.Equal(t, 1.0, stats.TimeScale)
	assert.Equal(t, 0.0, stats.PowerUpTime)
}
