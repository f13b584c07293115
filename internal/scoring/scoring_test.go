package scoring_test

import (
	"testing"
	"time"

	"github.com/openlarder/mealmatch/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestUrgency(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		minutesToGo   int
		expectedScore int
	}{
		{"already expired", -30, 100},
		{"expiring this instant", 0, 100},
		{"exactly one hour", 60, 90},
		{"just over one hour", 61, 70},
		{"exactly three hours", 180, 70},
		{"exactly six hours", 360, 50},
		{"exactly twelve hours", 720, 30},
		{"exactly one day", 1440, 10},
		{"just over one day", 1441, 0},
		{"several days", 4320, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expiry := now.Add(time.Duration(tt.minutesToGo) * time.Minute)
			assert.Equal(t, tt.expectedScore, scoring.Urgency(expiry, now))
		})
	}
}

func TestFeasibility(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("equal travel and remaining time is infeasible", func(t *testing.T) {
		t.Parallel()
		// 20 km at 20 km/h is exactly 60 minutes of travel; the comparison
		// is strict, so 60 minutes of remaining time is not enough.
		verdict := scoring.Feasibility(20, now.Add(60*time.Minute), now)

		assert.Equal(t, 60, verdict.TravelTimeMinutes)
		assert.Equal(t, 60, verdict.TimeUntilExpiryMinutes)
		assert.False(t, verdict.IsFeasible)
	})

	t.Run("reachable pickup is feasible", func(t *testing.T) {
		t.Parallel()
		verdict := scoring.Feasibility(10, now.Add(60*time.Minute), now)

		assert.Equal(t, 30, verdict.TravelTimeMinutes)
		assert.True(t, verdict.IsFeasible)
	})

	t.Run("travel time rounds up", func(t *testing.T) {
		t.Parallel()
		// 10.1 km at 20 km/h is 30.3 minutes; ceil gives 31.
		verdict := scoring.Feasibility(10.1, now.Add(2*time.Hour), now)

		assert.Equal(t, 31, verdict.TravelTimeMinutes)
	})

	t.Run("expired food keeps negative remaining time", func(t *testing.T) {
		t.Parallel()
		verdict := scoring.Feasibility(1, now.Add(-10*time.Minute), now)

		assert.Equal(t, -10, verdict.TimeUntilExpiryMinutes)
		assert.False(t, verdict.IsFeasible)
	})

	t.Run("carries the input distance through", func(t *testing.T) {
		t.Parallel()
		verdict := scoring.Feasibility(7.25, now.Add(time.Hour), now)

		assert.InEpsilon(t, 7.25, verdict.DistanceKm, 1e-12)
	})
}
