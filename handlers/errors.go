package handlers

import (
	"errors"
	"net/http"

	bookingRepo "bookmyspot/database/repository/booking"
	notificationRepo "bookmyspot/database/repository/notification"
	requestRepo "bookmyspot/database/repository/request"
	spotRepo "bookmyspot/database/repository/spot"
	userRepo "bookmyspot/database/repository/user"
	"bookmyspot/services/booking"
	"bookmyspot/services/workflow"
	"bookmyspot/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var bookingValidation *booking.ValidationError
	var workflowValidation *workflow.ValidationError

	switch {
	case errors.Is(err, spotRepo.ErrNotFound),
		errors.Is(err, bookingRepo.ErrNotFound),
		errors.Is(err, requestRepo.ErrNotFound),
		errors.Is(err, userRepo.ErrNotFound),
		errors.Is(err, notificationRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())

	case errors.Is(err, workflow.ErrUnauthorized),
		errors.Is(err, booking.ErrUnauthorized):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())

	case errors.Is(err, workflow.ErrInvalidState),
		errors.Is(err, booking.ErrNotCancellable):
		utils.JSONError(c, http.StatusConflict, "Invalid state", err.Error())

	case errors.Is(err, bookingRepo.ErrSlotConflict):
		utils.JSONError(c, http.StatusConflict, "Slot no longer available", err.Error())

	case errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, booking.ErrSpotNotBookable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Not bookable", err.Error())

	case errors.As(err, &bookingValidation),
		errors.As(err, &workflowValidation):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())

	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
