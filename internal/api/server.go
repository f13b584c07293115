// Package api exposes the matching engine over HTTP. It is a thin surface:
// all decisions stay with the engine and its callers.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openlarder/mealmatch/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Matcher is the engine surface the API consumes.
type Matcher interface {
	Rank(ctx context.Context, recipient models.Coordinates, strategy models.Strategy, now time.Time) ([]models.ScoredDonation, error)
	Enrich(ctx context.Context, donationID int64, recipient models.Coordinates, now time.Time) (*models.ScoredDonation, error)
}

// Pinger is the health-check view of the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the matching engine into gin handlers.
type Server struct {
	log     *slog.Logger
	matcher Matcher
	db      Pinger
}

// NewServer creates an API server around the given matcher and database.
func NewServer(log *slog.Logger, matcher Matcher, db Pinger) *Server {
	return &Server{log: log, matcher: matcher, db: db}
}

// Router builds the gin engine with the API, health and metrics routes.
func (s *Server) Router(reg *prometheus.Registry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	v1.GET("/matches", s.handleMatches)
	v1.GET("/donations/:id/match", s.handleDonationMatch)

	router.GET("/healthz", s.handleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return router
}

// handleMatches serves GET /api/v1/matches?lat=&lng=&strategy=.
func (s *Server) handleMatches(c *gin.Context) {
	recipient, ok := parseRecipient(c)
	if !ok {
		return
	}

	strategy, err := models.ParseStrategy(c.Query("strategy"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := s.matcher.Rank(c.Request.Context(), recipient, strategy, time.Now())
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to rank donations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank donations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strategy": strategy,
		"count":    len(matches),
		"matches":  matches,
	})
}

// handleDonationMatch serves GET /api/v1/donations/:id/match?lat=&lng=.
// A donation whose pickup location cannot be resolved is a 404: there is no
// ranking context to degrade into on the single-donation path.
func (s *Server) handleDonationMatch(c *gin.Context) {
	donationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "donation id must be an integer"})
		return
	}

	recipient, ok := parseRecipient(c)
	if !ok {
		return
	}

	enriched, err := s.matcher.Enrich(c.Request.Context(), donationID, recipient, time.Now())
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to enrich donation",
			"donation", donationID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enrich donation"})
		return
	}
	if enriched == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found or location unresolvable"})
		return
	}

	c.JSON(http.StatusOK, enriched)
}

func (s *Server) handleHealthz(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		c.String(http.StatusServiceUnavailable, "DB ping failed")
		return
	}
	c.String(http.StatusOK, "OK")
}

// parseRecipient reads and validates the recipient coordinate from the
// query string, writing the error response itself on failure.
func parseRecipient(c *gin.Context) (models.Coordinates, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required numbers"})
		return models.Coordinates{}, false
	}

	recipient := models.Coordinates{Latitude: lat, Longitude: lng}
	if !recipient.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient coordinates are out of range"})
		return models.Coordinates{}, false
	}

	return recipient, true
}
