// Package resolver turns a donation record into a usable pickup coordinate,
// falling back to an external geocoding lookup when the record has none.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/openlarder/mealmatch/internal/geocoding"
	"github.com/openlarder/mealmatch/internal/metrics"
	"github.com/openlarder/mealmatch/internal/models"
)

// CoordinateWriter caches a resolved coordinate back onto a donation record.
// The write is an opportunistic optimization for future resolutions; the
// resolver swallows its failures.
type CoordinateWriter interface {
	UpdateCoordinates(ctx context.Context, donationID int64, coords models.Coordinates) error
}

// Resolver resolves donation pickup coordinates. A stored valid coordinate
// is returned as-is; otherwise a single geocoding lookup is attempted for
// records with a complete postal address, and the result is persisted
// through the writer.
type Resolver struct {
	provider     geocoding.Provider // Geocoding provider for external lookups
	providerName string             // Name of the provider for metrics labeling
	writer       CoordinateWriter   // Writer for the coordinate cache-back
	metrics      *metrics.Metrics   // Metrics for tracking lookup outcomes
	log          *slog.Logger       // Logger for logging resolver activities
	timeout      time.Duration      // Upper bound on a single geocoding lookup
}

// NewResolver creates a new Resolver. The timeout bounds each geocoding
// lookup; a lookup that exceeds it is treated the same as a failed one.
func NewResolver(
	provider geocoding.Provider,
	providerName string,
	writer CoordinateWriter,
	metrics *metrics.Metrics,
	log *slog.Logger,
	timeout time.Duration,
) *Resolver {
	return &Resolver{
		provider:     provider,
		providerName: providerName,
		writer:       writer,
		metrics:      metrics,
		log:          log,
		timeout:      timeout,
	}
}

// Resolve returns the donation's pickup coordinate, or nil when it cannot be
// determined. It never fails hard: malformed addresses, lookup errors and
// cache-write errors all degrade to a nil result or are logged and ignored.
func (r *Resolver) Resolve(ctx context.Context, donation *models.Donation) *models.Coordinates {
	if coords := donation.StoredCoordinates(); coords != nil {
		return coords
	}

	if !donation.HasCompleteAddress() {
		r.log.DebugContext(ctx, "Donation address incomplete, skipping geocoding",
			"donation", donation.ID)
		return nil
	}

	address := donation.PickupAddress()
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	startTime := time.Now()
	coords, err := r.provider.Geocode(lookupCtx, address)
	r.metrics.GeocodeSeconds.WithLabelValues(r.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		r.log.WarnContext(ctx, "Failed to geocode donation address",
			"donation", donation.ID, "address", address, "error", err)
		r.metrics.GeocodeLookups.WithLabelValues("failure").Inc()
		return nil
	}
	if coords == nil || !coords.Valid() {
		r.log.WarnContext(ctx, "Geocoding returned unusable coordinates",
			"donation", donation.ID, "address", address)
		r.metrics.GeocodeLookups.WithLabelValues("failure").Inc()
		return nil
	}

	r.metrics.GeocodeLookups.WithLabelValues("success").Inc()

	// Best-effort cache write: a persistence failure only costs a repeat
	// lookup on the next run, never the current resolution.
	if err = r.writer.UpdateCoordinates(ctx, donation.ID, *coords); err != nil {
		r.log.WarnContext(ctx, "Could not cache resolved coordinates",
			"donation", donation.ID, "error", err)
	} else {
		r.log.DebugContext(ctx, "Cached resolved coordinates",
			"donation", donation.ID, "lat", coords.Latitude, "lng", coords.Longitude)
	}

	return coords
}
