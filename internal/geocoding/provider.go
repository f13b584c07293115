package geocoding

import (
	"context"

	"github.com/openlarder/mealmatch/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
//
// Providers perform exactly one lookup attempt per call: the upstream APIs
// are rate-sensitive, so retrying is left to the caller's judgement.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}
