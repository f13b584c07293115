package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/openlarder/mealmatch/internal/models"
)

// donationColumns is the column list shared by the donation queries.
const donationColumns = `
	donation_id, food_name, status,
	pickup_street_address, pickup_area, pickup_city, pickup_state, pickup_pin_code,
	pickup_latitude, pickup_longitude, expiry_datetime`

// ListAvailable retrieves every donation currently eligible for matching:
// records in the available lifecycle state, newest first. Records without
// stored coordinates are included; resolving them is the engine's job.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
//
// Returns:
// - A slice of models.Donation containing the eligible donations.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) ListAvailable(ctx context.Context) ([]models.Donation, error) {
	var donations []models.Donation
	query := `
		SELECT` + donationColumns + `
		FROM public.donations
		WHERE status = $1
		ORDER BY created_at DESC;
	`

	rows, err := r.db.Query(ctx, query, models.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to query available donations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var donation models.Donation
		if errScan := scanDonation(rows, &donation); errScan != nil {
			return nil, fmt.Errorf("failed to scan available donation: %w", errScan)
		}
		r.log.DebugContext(ctx, "Eligible donation received.",
			"ID", donation.ID, "food", donation.FoodName)
		donations = append(donations, donation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return donations, nil
}

// GetByID retrieves a single donation by its identifier. It returns
// ErrNotFound when no such record exists.
func (r *Repository) GetByID(ctx context.Context, donationID int64) (*models.Donation, error) {
	query := `
		SELECT` + donationColumns + `
		FROM public.donations
		WHERE donation_id = $1;
	`

	var donation models.Donation
	row := r.db.QueryRow(ctx, query, donationID)
	if err := scanDonation(row, &donation); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan donation %d: %w", donationID, err)
	}

	return &donation, nil
}

// UpdateCoordinates caches a resolved pickup coordinate onto a donation
// record, so future matching runs skip the geocoding lookup. It returns an
// error if the update fails.
func (r *Repository) UpdateCoordinates(ctx context.Context, donationID int64, coords models.Coordinates) error {
	query := `
		UPDATE donations
		SET
			pickup_latitude = $1,
			pickup_longitude = $2
		WHERE
			donation_id = $3;
	`

	_, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, donationID)
	if err != nil {
		return fmt.Errorf("failed to update donation coordinates: %w", err)
	}

	return nil
}

// scanDonation reads one donation row. pgx maps NULL pickup coordinates onto
// the nil pointer fields directly.
func scanDonation(row pgx.Row, donation *models.Donation) error {
	return row.Scan(
		&donation.ID,
		&donation.FoodName,
		&donation.Status,
		&donation.StreetAddress,
		&donation.Area,
		&donation.City,
		&donation.State,
		&donation.PinCode,
		&donation.PickupLat,
		&donation.PickupLng,
		&donation.ExpiresAt,
	)
}
