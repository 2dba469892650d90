package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/Vallabhkejgir/Location-Tracker/internal/geofence"
	"github.com/Vallabhkejgir/Location-Tracker/internal/tracking"
	"github.com/Vallabhkejgir/Location-Tracker/pkg/logger"
	"github.com/Vallabhkejgir/Location-Tracker/pkg/metrics"
)

// PlaceDirectory resolves place identifiers and free-text location names
// through the upstream place service.
type PlaceDirectory interface {
	Details(ctx context.Context, placeID string) (geofence.Coordinate, error)
	Autocomplete(ctx context.Context, input string) (json.RawMessage, error)
}

// AlertDispatcher places the out-of-band arrival call.
type AlertDispatcher interface {
	PlaceCall(ctx context.Context) error
}

type DestinationRequest struct {
	PlaceID string `json:"place_id" binding:"required"`
}

type LocationRequest struct {
	LocationName string `json:"location_name" binding:"required"`
}

// LocationTrackingRequest is a position report. Pointers so that 0.0 passes
// the required binding.
type LocationTrackingRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Timestamp string   `json:"timestamp"`
}

// TrackingHandler orchestrates destination/position state, the geofence check
// and the alert dispatch.
type TrackingHandler struct {
	tracker   *tracking.Tracker
	evaluator *geofence.Evaluator
	places    PlaceDirectory
	dialer    AlertDispatcher
}

func NewTrackingHandler(t *tracking.Tracker, e *geofence.Evaluator, p PlaceDirectory, d AlertDispatcher) *TrackingHandler {
	return &TrackingHandler{tracker: t, evaluator: e, places: p, dialer: d}
}

// Register wires the tracking routes; all of them require a session.
func (h *TrackingHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/set_destination", auth, h.SetDestination)
	rg.POST("/autocomplete_location", auth, h.Autocomplete)
	rg.POST("/track_location", auth, h.TrackLocation)
}

// SetDestination resolves the place and overwrites the destination slot.
// Lookup failures abort the request and leave prior state untouched.
func (h *TrackingHandler) SetDestination(c *gin.Context) {
	var req DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	coord, err := h.places.Details(c.Request.Context(), req.PlaceID)
	if err != nil {
		logger.Errorf("destination lookup failed for place %q: %v", req.PlaceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.tracker.SetDestination(coord); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":                  "success",
		"destination_coordinates": gin.H{"lat": coord.Lat, "lng": coord.Lng},
	})
}

// Autocomplete proxies the suggestion lookup; the upstream payload passes
// through unmodified.
func (h *TrackingHandler) Autocomplete(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw, err := h.places.Autocomplete(c.Request.Context(), req.LocationName)
	if err != nil {
		logger.Errorf("autocomplete failed for %q: %v", req.LocationName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// TrackLocation records a position update and fires the arrival call on the
// transition into the geofence. Dispatch failures never fail the request.
func (h *TrackingHandler) TrackLocation(c *gin.Context) {
	var req LocationTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Debugf("received location: lat %v, lng %v at %s", *req.Latitude, *req.Longitude, req.Timestamp)

	h.tracker.UpdatePosition(geofence.Coordinate{Lat: *req.Latitude, Lng: *req.Longitude})
	metrics.PositionUpdates.Inc()

	current, destination := h.tracker.Snapshot()
	arrived := h.evaluator.HasArrived(current, destination)
	if h.tracker.RecordArrival(arrived) {
		metrics.AlertsTriggered.Inc()
		if err := h.dialer.PlaceCall(c.Request.Context()); err != nil {
			// best effort: the tracking response succeeds regardless
			metrics.AlertDispatchFailures.Inc()
			logger.Errorf("arrival call dispatch failed: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "alert",
			"message": "You have arrived within 2 km of your destination! Calling you now...",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Location received",
		"data": gin.H{
			"latitude":  *req.Latitude,
			"longitude": *req.Longitude,
			"timestamp": req.Timestamp,
		},
	})
}
