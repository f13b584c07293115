package models

import (
	"strings"
	"time"
)

// StatusAvailable is the lifecycle state in which a donation is eligible
// for matching. Donations are created and consumed by flows outside the
// matching engine; the engine only reads them.
const StatusAvailable = "available"

// Donation represents one donation record as seen by the matching engine.
// The pickup coordinate is nullable: records created without GPS data keep
// nil latitude/longitude until a geocoding lookup resolves the address.
type Donation struct {
	ID            int64     `json:"id"`                  // ID is the unique identifier for the donation.
	FoodName      string    `json:"foodName"`            // FoodName is the human-readable name of the donated food.
	Status        string    `json:"status"`              // Status is the donation lifecycle state.
	StreetAddress string    `json:"pickupStreetAddress"` // StreetAddress is the pickup street address.
	Area          string    `json:"pickupArea"`          // Area is an optional neighbourhood or locality.
	City          string    `json:"pickupCity"`          // City is the pickup city.
	State         string    `json:"pickupState"`         // State is an optional state or region.
	PinCode       string    `json:"pickupPinCode"`       // PinCode is the postal code of the pickup address.
	PickupLat     *float64  `json:"pickupLatitude"`      // PickupLat is the stored pickup latitude, if any.
	PickupLng     *float64  `json:"pickupLongitude"`     // PickupLng is the stored pickup longitude, if any.
	ExpiresAt     time.Time `json:"expiryDatetime"`      // ExpiresAt is the moment the food expires.
}

// StoredCoordinates returns the donation's stored pickup coordinate, or nil
// when either component is missing or the pair is out of range.
func (d *Donation) StoredCoordinates() *Coordinates {
	if d.PickupLat == nil || d.PickupLng == nil {
		return nil
	}

	coords := Coordinates{Latitude: *d.PickupLat, Longitude: *d.PickupLng}
	if !coords.Valid() {
		return nil
	}

	return &coords
}

// HasCompleteAddress reports whether the record carries enough of a postal
// address to attempt a geocoding lookup. Street, city and pin code are
// required; area and state only sharpen the query.
func (d *Donation) HasCompleteAddress() bool {
	return d.StreetAddress != "" && d.City != "" && d.PinCode != ""
}

// PickupAddress assembles the full pickup address for geocoding, with empty
// optional parts elided.
func (d *Donation) PickupAddress() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{d.StreetAddress, d.Area, d.City, d.State, d.PinCode} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
