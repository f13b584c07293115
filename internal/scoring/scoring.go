// Package scoring holds the pure per-donation scoring functions. Both take
// an explicit "now" so tests can pin the clock instead of racing it.
package scoring

import (
	"math"
	"time"

	"github.com/openlarder/mealmatch/internal/models"
)

// AverageSpeedKmh is the assumed pickup travel speed. It models a mix of
// urban cycling and driving rather than any particular vehicle.
const AverageSpeedKmh = 20.0

// minutesPerHour converts travel hours into minutes.
const minutesPerHour = 60

// Urgency maps time-to-expiry onto a 0-100 score, higher meaning more
// time-critical. This is a deliberately coarse step function, not a
// continuous decay: matching cares about broad bands ("expires within the
// hour" vs "fine until tomorrow"), and the bands double roughly with each
// step. Bucket upper bounds are inclusive, so exactly 60 minutes remaining
// scores 90.
func Urgency(expiry, now time.Time) int {
	minutesUntilExpiry := int(math.Floor(expiry.Sub(now).Minutes()))

	switch {
	case minutesUntilExpiry <= 0:
		return 100 // already expired
	case minutesUntilExpiry <= 60:
		return 90
	case minutesUntilExpiry <= 180:
		return 70
	case minutesUntilExpiry <= 360:
		return 50
	case minutesUntilExpiry <= 720:
		return 30
	case minutesUntilExpiry <= 1440:
		return 10
	default:
		return 0
	}
}

// Feasibility combines pickup distance and time-to-expiry into a verdict on
// whether the food can be reached before it expires. Travel time rounds up,
// time remaining rounds down, and the comparison is strict: equal times are
// infeasible since no buffer is assumed. A negative time remaining is valid
// input for already-expired food and keeps the verdict infeasible for any
// positive travel time.
func Feasibility(distanceKm float64, expiry, now time.Time) models.Feasibility {
	travelTimeMinutes := int(math.Ceil(distanceKm / AverageSpeedKmh * minutesPerHour))
	timeUntilExpiryMinutes := int(math.Floor(expiry.Sub(now).Minutes()))

	return models.Feasibility{
		DistanceKm:             distanceKm,
		TravelTimeMinutes:      travelTimeMinutes,
		TimeUntilExpiryMinutes: timeUntilExpiryMinutes,
		IsFeasible:             travelTimeMinutes < timeUntilExpiryMinutes,
	}
}
