package handlers

import (
	"io"
	"net/http"
	"time"

	spotRepo "bookmyspot/database/repository/spot"
	"bookmyspot/services/booking"
	"bookmyspot/services/events"
	"bookmyspot/utils"

	"github.com/gin-gonic/gin"
)

// SpotHandler serves the public listing surface and the per-spot change feed.
type SpotHandler struct {
	Spots    spotRepo.SpotRepository
	Bookings booking.BookingService
	Events   *events.Hub
}

func NewSpotHandler(spots spotRepo.SpotRepository, bookings booking.BookingService, hub *events.Hub) *SpotHandler {
	return &SpotHandler{Spots: spots, Bookings: bookings, Events: hub}
}

// ListSpots returns live listings, optionally filtered by ?city=.
func (h *SpotHandler) ListSpots(c *gin.Context) {
	spots, err := h.Spots.QueryApproved(c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": spots})
}

// GetSpot returns a single listing.
func (h *SpotHandler) GetSpot(c *gin.Context) {
	spot, err := h.Spots.GetByID(c.Param("spotID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// GetAvailability returns the spot's free slots on ?date=YYYY-MM-DD.
func (h *SpotHandler) GetAvailability(c *gin.Context) {
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected date=YYYY-MM-DD")
		return
	}

	slots, err := h.Bookings.GetAvailableSlots(c.Param("spotID"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": slots})
}

// WatchSpot streams spot change events over SSE until the client goes away.
func (h *SpotHandler) WatchSpot(c *gin.Context) {
	spotID := c.Param("spotID")
	if _, err := h.Spots.GetByID(spotID); err != nil {
		respondError(c, err)
		return
	}

	ch := make(chan events.Event, 16)
	unsubscribe := h.Events.OnChange(spotID, func(ev events.Event) {
		select {
		case ch <- ev:
		default: // slow consumer, drop
		}
	})
	defer unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-ch:
			c.SSEvent(ev.Kind, ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
