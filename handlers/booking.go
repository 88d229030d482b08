package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bookmyspot/models"
	"bookmyspot/services/booking"
	"bookmyspot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionTTL = 10 * time.Minute

// bookingSession carries the driver's in-progress selection between the
// availability query and the confirm call.
type bookingSession struct {
	UserID string                 `json:"userId"`
	SpotID string                 `json:"spotId"`
	Date   string                 `json:"date"`
	Slots  []models.AvailableSlot `json:"slots"`
}

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Cache   *redis.Client
}

func NewBookingHandler(service booking.BookingService, cache *redis.Client) *BookingHandler {
	return &BookingHandler{Service: service, Cache: cache}
}

// StartSession resolves availability for a spot/date and parks the result
// in a short-lived session the confirm step validates against.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		SpotID string `json:"spotId" binding:"required"`
		Date   string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	slots, err := h.Service.GetAvailableSlots(input.SpotID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	session := bookingSession{
		UserID: c.GetString("userID"),
		SpotID: input.SpotID,
		Date:   input.Date,
		Slots:  slots,
	}
	sessionID := uuid.New().String()
	data, err := json.Marshal(session)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create session", err.Error())
		return
	}
	ctx := context.Background()
	if err := h.Cache.Set(ctx, sessionID, data, sessionTTL).Err(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cache session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "slots": slots})
}

// ConfirmBooking reserves and pays for a window picked from a session.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		SessionID     string    `json:"sessionId" binding:"required"`
		Start         time.Time `json:"start" binding:"required"`
		End           time.Time `json:"end" binding:"required"`
		PaymentMethod string    `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := context.Background()
	data, err := h.Cache.Get(ctx, input.SessionID).Result()
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
		return
	}
	var session bookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to parse booking session", err.Error())
		return
	}
	if session.UserID != c.GetString("userID") {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "session belongs to another user")
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:        session.UserID,
		SpotID:        session.SpotID,
		Start:         input.Start,
		End:           input.End,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Del(ctx, input.SessionID)
	c.JSON(http.StatusCreated, b)
}

// ListMine returns the caller's bookings with derived display status.
func (h *BookingHandler) ListMine(c *gin.Context) {
	views, err := h.Service.ListUserBookings(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// ListForSpot returns a spot's bookings to its owner.
func (h *BookingHandler) ListForSpot(c *gin.Context) {
	views, err := h.Service.ListSpotBookings(c.GetString("userID"), c.Param("spotID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// Cancel cancels the caller's own booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.Service.CancelBooking(c.GetString("userID"), c.Param("bookingID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Complete lets the spot owner close out an active booking.
func (h *BookingHandler) Complete(c *gin.Context) {
	if err := h.Service.CompleteBooking(c.GetString("userID"), c.Param("bookingID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
