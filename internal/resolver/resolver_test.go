package resolver_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/openlarder/mealmatch/internal/metrics"
	"github.com/openlarder/mealmatch/internal/models"
	"github.com/openlarder/mealmatch/internal/resolver"
	"github.com/openlarder/mealmatch/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func newResolver(t *testing.T) (*resolver.Resolver, *mocks.Provider, *mocks.Interface) {
	t.Helper()

	mockProvider := mocks.NewProvider(t)
	mockRepo := mocks.NewInterface(t)
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	res := resolver.NewResolver(
		mockProvider, "nominatim", mockRepo, appMetrics, slog.Default(), 5*time.Second,
	)

	return res, mockProvider, mockRepo
}

func TestResolve(t *testing.T) {
	expiry := time.Now().Add(6 * time.Hour)
	address := "12 Harvest Lane, Springfield, 62704"

	t.Run("stored coordinates short-circuit the lookup", func(t *testing.T) {
		res, _, _ := newResolver(t)
		donation := models.Donation{
			ID:        1,
			PickupLat: floatPtr(50.45),
			PickupLng: floatPtr(30.52),
			ExpiresAt: expiry,
		}

		coords := res.Resolve(context.Background(), &donation)

		require.NotNil(t, coords)
		assert.InEpsilon(t, 50.45, coords.Latitude, 1e-12)
		assert.InEpsilon(t, 30.52, coords.Longitude, 1e-12)
	})

	t.Run("out-of-range stored coordinates fall back to geocoding", func(t *testing.T) {
		res, mockProvider, mockRepo := newResolver(t)
		donation := models.Donation{
			ID:            2,
			PickupLat:     floatPtr(123.4),
			PickupLng:     floatPtr(30.52),
			StreetAddress: "12 Harvest Lane",
			City:          "Springfield",
			PinCode:       "62704",
			ExpiresAt:     expiry,
		}
		resolved := &models.Coordinates{Latitude: 39.78, Longitude: -89.65}

		mockProvider.On("Geocode", mock.Anything, address).Return(resolved, nil).Once()
		mockRepo.On("UpdateCoordinates", mock.Anything, int64(2), *resolved).Return(nil).Once()

		coords := res.Resolve(context.Background(), &donation)

		require.NotNil(t, coords)
		assert.InEpsilon(t, 39.78, coords.Latitude, 1e-12)
	})

	t.Run("incomplete address degrades to nil without a lookup", func(t *testing.T) {
		res, _, _ := newResolver(t)
		donation := models.Donation{
			ID:            3,
			StreetAddress: "12 Harvest Lane",
			ExpiresAt:     expiry,
		}

		assert.Nil(t, res.Resolve(context.Background(), &donation))
	})

	t.Run("successful geocode is cached through the repository", func(t *testing.T) {
		res, mockProvider, mockRepo := newResolver(t)
		donation := models.Donation{
			ID:            4,
			StreetAddress: "12 Harvest Lane",
			City:          "Springfield",
			PinCode:       "62704",
			ExpiresAt:     expiry,
		}
		resolved := &models.Coordinates{Latitude: 39.78, Longitude: -89.65}

		mockProvider.On("Geocode", mock.Anything, address).Return(resolved, nil).Once()
		mockRepo.On("UpdateCoordinates", mock.Anything, int64(4), *resolved).Return(nil).Once()

		coords := res.Resolve(context.Background(), &donation)

		require.NotNil(t, coords)
		mockRepo.AssertExpectations(t)
	})

	t.Run("cache write failure does not abort resolution", func(t *testing.T) {
		res, mockProvider, mockRepo := newResolver(t)
		donation := models.Donation{
			ID:            5,
			StreetAddress: "12 Harvest Lane",
			City:          "Springfield",
			PinCode:       "62704",
			ExpiresAt:     expiry,
		}
		resolved := &models.Coordinates{Latitude: 39.78, Longitude: -89.65}

		mockProvider.On("Geocode", mock.Anything, address).Return(resolved, nil).Once()
		mockRepo.On("UpdateCoordinates", mock.Anything, int64(5), *resolved).Return(assert.AnError).Once()

		coords := res.Resolve(context.Background(), &donation)

		require.NotNil(t, coords)
		assert.InEpsilon(t, -89.65, coords.Longitude, 1e-12)
	})

	t.Run("lookup failure degrades to nil", func(t *testing.T) {
		res, mockProvider, _ := newResolver(t)
		donation := models.Donation{
			ID:            6,
			StreetAddress: "12 Harvest Lane",
			City:          "Springfield",
			PinCode:       "62704",
			ExpiresAt:     expiry,
		}

		mockProvider.On("Geocode", mock.Anything, address).Return(nil, assert.AnError).Once()

		assert.Nil(t, res.Resolve(context.Background(), &donation))
	})

	t.Run("unusable lookup result degrades to nil", func(t *testing.T) {
		res, mockProvider, _ := newResolver(t)
		donation := models.Donation{
			ID:            7,
			StreetAddress: "12 Harvest Lane",
			City:          "Springfield",
			PinCode:       "62704",
			ExpiresAt:     expiry,
		}

		mockProvider.On("Geocode", mock.Anything, address).
			Return(&models.Coordinates{Latitude: 200, Longitude: 0}, nil).Once()

		assert.Nil(t, res.Resolve(context.Background(), &donation))
	})
}
