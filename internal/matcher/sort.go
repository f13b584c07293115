package matcher

import (
	"math"
	"sort"

	"github.com/openlarder/mealmatch/internal/models"
)

// sortScored sorts the ranked pool in place. Donations without a resolved
// location always form a tail block in their original input order; the
// sort is stable so the tail keeps the repository's newest-first order.
//
// Among scored donations the order depends on strategy:
//   - distance: priority descending, near-ties broken by urgency descending
//   - urgency: priority descending, near-ties broken by distance ascending
//   - balanced: feasible pickups before infeasible ones regardless of score,
//     then priority descending within each partition
func sortScored(scored []models.ScoredDonation, strategy models.Strategy) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := &scored[i], &scored[j]

		if a.PriorityScore == nil || b.PriorityScore == nil {
			// Ranked entries before the unranked tail.
			return a.PriorityScore != nil && b.PriorityScore == nil
		}

		switch strategy {
		case models.StrategyDistance:
			if math.Abs(*a.PriorityScore-*b.PriorityScore) < scoreTieEpsilon {
				return a.UrgencyScore > b.UrgencyScore
			}
			return *a.PriorityScore > *b.PriorityScore

		case models.StrategyUrgency:
			if math.Abs(*a.PriorityScore-*b.PriorityScore) < scoreTieEpsilon {
				return *a.DistanceKm < *b.DistanceKm
			}
			return *a.PriorityScore > *b.PriorityScore

		default: // balanced
			if a.Feasibility.IsFeasible != b.Feasibility.IsFeasible {
				return a.Feasibility.IsFeasible
			}
			return *a.PriorityScore > *b.PriorityScore
		}
	})
}
