package models

import "fmt"

// Strategy selects how the composite priority score is computed and how
// ranked donations are ordered.
type Strategy string

const (
	// StrategyBalanced weighs urgency at 60% and proximity at 40%, and
	// surfaces feasible pickups before infeasible ones. This is the default.
	StrategyBalanced Strategy = "balanced"
	// StrategyDistance ranks purely by proximity.
	StrategyDistance Strategy = "distance"
	// StrategyUrgency ranks purely by time-to-expiry.
	StrategyUrgency Strategy = "urgency"
)

// ParseStrategy maps a caller-supplied string onto a Strategy. An empty
// string selects the balanced default; anything else unknown is an error.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyBalanced, StrategyDistance, StrategyUrgency:
		return Strategy(s), nil
	case "":
		return StrategyBalanced, nil
	default:
		return "", fmt.Errorf("unknown matching strategy: %q", s)
	}
}

// Feasibility is the travel-time-vs-time-remaining verdict for one donation.
// Both time quantities are relative to "now" at evaluation time, so repeated
// evaluation of the same donation drifts as the clock advances.
type Feasibility struct {
	DistanceKm             float64 `json:"distanceKm"`             // DistanceKm is the great-circle pickup distance.
	TravelTimeMinutes      int     `json:"travelTimeMinutes"`      // TravelTimeMinutes is the estimated travel time, rounded up.
	TimeUntilExpiryMinutes int     `json:"timeUntilExpiryMinutes"` // TimeUntilExpiryMinutes may be negative for expired food.
	IsFeasible             bool    `json:"isFeasible"`             // IsFeasible holds iff travel time is strictly below time remaining.
}

// ScoredDonation is a Donation enriched with the per-candidate matching
// facts. It is constructed fresh per ranking call and never persisted.
//
// Invariant: a nil DistanceKm implies a nil PriorityScore — donations whose
// location could not be resolved are carried through unranked.
type ScoredDonation struct {
	Donation

	DistanceKm        *float64     `json:"distanceKm"`        // DistanceKm is nil when the pickup location is unresolved.
	UrgencyScore      int          `json:"urgencyScore"`      // UrgencyScore is always computed; it needs no location.
	PriorityScore     *float64     `json:"priorityScore"`     // PriorityScore is the strategy-dependent composite, nil when unranked.
	Feasibility       *Feasibility `json:"feasibility"`       // Feasibility is nil when the pickup location is unresolved.
	DonorLocation     *Coordinates `json:"donorLocation"`     // DonorLocation is the resolved pickup coordinate used for scoring.
	RecipientLocation Coordinates  `json:"recipientLocation"` // RecipientLocation is the coordinate the caller supplied.
}
