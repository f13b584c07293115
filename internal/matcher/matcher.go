// Package matcher ranks available donations against a recipient location.
// It is the only part of the application with real algorithmic content:
// everything it consumes (repository, geocoding) is an injected collaborator.
package matcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/openlarder/mealmatch/internal/geo"
	"github.com/openlarder/mealmatch/internal/metrics"
	"github.com/openlarder/mealmatch/internal/models"
	"github.com/openlarder/mealmatch/internal/repository"
	"github.com/openlarder/mealmatch/internal/resolver"
	"github.com/openlarder/mealmatch/internal/scoring"
)

// distanceWeight converts raw kilometers into the bounded closeness score.
// The +0.1 in the divisor is a divide-by-zero guard for a co-located donor
// and recipient, not a calibration constant; changing it shifts relative
// ordering between implementations.
const (
	distanceWeight    = 40.0
	distanceZeroGuard = 0.1
	scoreTieEpsilon   = 0.01
	urgencyShare      = 0.6
	distanceShare     = 0.4
)

// ErrInvalidRecipient is returned when the caller-supplied recipient
// coordinate is out of range or not finite.
var ErrInvalidRecipient = errors.New("recipient coordinates are invalid")

// Service computes ranked donation matches for a recipient. Resolution of
// missing pickup coordinates fans out across a bounded worker pool; each
// donation is an independent unit of work, so one failed lookup never
// affects the others and the output is identical however the work is
// scheduled.
type Service struct {
	log        *slog.Logger         // Logger for logging service activities
	repo       repository.Interface // Interface for donation repository access
	resolver   *resolver.Resolver   // Resolver for donation pickup coordinates
	metrics    *metrics.Metrics     // Metrics for tracking matching performance
	numWorkers int                  // Number of concurrent workers for coordinate resolution
}

// NewService creates a new matching Service. numWorkers bounds the
// concurrent geocoding fan-out and must be at least 1.
func NewService(
	log *slog.Logger,
	repo repository.Interface,
	resolver *resolver.Resolver,
	metrics *metrics.Metrics,
	numWorkers int,
) *Service {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Service{
		log:        log,
		repo:       repo,
		resolver:   resolver,
		metrics:    metrics,
		numWorkers: numWorkers,
	}
}

// Rank pulls the available donation pool, resolves and scores every
// donation against the recipient, and returns a total order: scored
// donations first in strategy order, then the unresolved tail in input
// order. The only side effect is the resolver's opportunistic coordinate
// cache-write; everything else is a pure function of the pool, the
// recipient, the strategy and now.
func (s *Service) Rank(
	ctx context.Context,
	recipient models.Coordinates,
	strategy models.Strategy,
	now time.Time,
) ([]models.ScoredDonation, error) {
	if !recipient.Valid() {
		return nil, ErrInvalidRecipient
	}

	donations, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(donations) == 0 {
		s.log.InfoContext(ctx, "No available donations to rank")
		return []models.ScoredDonation{}, nil
	}

	s.log.InfoContext(ctx, "Ranking donation pool",
		"donations", len(donations), "strategy", strategy, "num_workers", s.numWorkers)

	startTime := time.Now()

	// Workers write to disjoint indices, which keeps the result order
	// deterministic without locking.
	scored := make([]models.ScoredDonation, len(donations))
	jobs := make(chan int, len(donations))
	var wgr sync.WaitGroup

	for i := 0; i < s.numWorkers; i++ {
		wgr.Add(1)
		go func() {
			defer wgr.Done()
			for idx := range jobs {
				scored[idx] = s.scoreDonation(ctx, donations[idx], recipient, strategy, now)
			}
		}()
	}

	for idx := range donations {
		jobs <- idx
	}
	close(jobs)
	wgr.Wait()

	sortScored(scored, strategy)

	s.metrics.RankSeconds.Observe(time.Since(startTime).Seconds())
	s.log.InfoContext(ctx, "Ranking finished",
		"scored", countScored(scored), "unranked", len(scored)-countScored(scored))

	return scored, nil
}

// Enrich annotates a single donation with distance, urgency and feasibility
// for a detail view. Unlike Rank, an unresolvable pickup location is a hard
// failure here: with no ranking context to fall back on, a nil result is
// more useful to the caller than an entry full of nil fields. No strategy
// priority score is computed on this path.
func (s *Service) Enrich(
	ctx context.Context,
	donationID int64,
	recipient models.Coordinates,
	now time.Time,
) (*models.ScoredDonation, error) {
	if !recipient.Valid() {
		return nil, ErrInvalidRecipient
	}

	donation, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	coords := s.resolver.Resolve(ctx, donation)
	if coords == nil {
		s.log.DebugContext(ctx, "Donation location unresolvable, nothing to enrich",
			"donation", donationID)
		return nil, nil
	}

	distance := geo.Distance(recipient, *coords)
	feasibility := scoring.Feasibility(distance, donation.ExpiresAt, now)

	return &models.ScoredDonation{
		Donation:          *donation,
		DistanceKm:        &distance,
		UrgencyScore:      scoring.Urgency(donation.ExpiresAt, now),
		Feasibility:       &feasibility,
		DonorLocation:     coords,
		RecipientLocation: recipient,
	}, nil
}

// scoreDonation runs the per-donation pipeline: resolve, measure, score.
// Urgency is always computed since it needs no location; everything else is
// left nil when the pickup coordinate cannot be resolved.
func (s *Service) scoreDonation(
	ctx context.Context,
	donation models.Donation,
	recipient models.Coordinates,
	strategy models.Strategy,
	now time.Time,
) models.ScoredDonation {
	result := models.ScoredDonation{
		Donation:          donation,
		UrgencyScore:      scoring.Urgency(donation.ExpiresAt, now),
		RecipientLocation: recipient,
	}

	coords := s.resolver.Resolve(ctx, &donation)
	if coords == nil {
		s.metrics.DonationsScored.WithLabelValues("unranked").Inc()
		return result
	}

	distance := geo.Distance(recipient, *coords)
	feasibility := scoring.Feasibility(distance, donation.ExpiresAt, now)
	priority := priorityScore(strategy, result.UrgencyScore, distance)

	result.DistanceKm = &distance
	result.Feasibility = &feasibility
	result.PriorityScore = &priority
	result.DonorLocation = coords

	s.metrics.DonationsScored.WithLabelValues("scored").Inc()
	return result
}

// priorityScore computes the strategy-dependent composite.
func priorityScore(strategy models.Strategy, urgencyScore int, distanceKm float64) float64 {
	distanceScore := distanceWeight / (distanceKm + distanceZeroGuard)

	switch strategy {
	case models.StrategyDistance:
		return distanceScore
	case models.StrategyUrgency:
		return float64(urgencyScore)
	default:
		return float64(urgencyScore)*urgencyShare + distanceScore*distanceShare
	}
}

func countScored(scored []models.ScoredDonation) int {
	n := 0
	for i := range scored {
		if scored[i].PriorityScore != nil {
			n++
		}
	}
	return n
}
