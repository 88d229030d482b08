package routes

import (
	userRepo "bookmyspot/database/repository/user"
	"bookmyspot/handlers"
	"bookmyspot/middleware"
	"bookmyspot/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Users         userRepo.UserRepository
	Auth          *handlers.AuthHandler
	Spots         *handlers.SpotHandler
	Bookings      *handlers.BookingHandler
	Requests      *handlers.RequestHandler
	Admin         *handlers.AdminHandler
	Notifications *handlers.NotificationHandler
}

// RegisterRoutes wires all endpoint groups onto the engine.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	authRequired := middleware.JWTAuthMiddleware(h.Users)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/signin", h.Auth.SignIn)
	}

	spots := r.Group("/api/spots")
	{
		spots.GET("", h.Spots.ListSpots)
		spots.GET("/:spotID", h.Spots.GetSpot)
		spots.GET("/:spotID/availability", h.Spots.GetAvailability)
		spots.GET("/:spotID/watch", h.Spots.WatchSpot)
		spots.GET("/:spotID/bookings", authRequired, middleware.RequireRole(models.RoleOwner), h.Bookings.ListForSpot)
	}

	booking := r.Group("/api/booking", authRequired)
	{
		booking.POST("/session", h.Bookings.StartSession)
		booking.POST("/confirm", h.Bookings.ConfirmBooking)
		booking.GET("/mine", h.Bookings.ListMine)
		booking.PUT("/:bookingID/cancel", h.Bookings.Cancel)
		booking.PUT("/:bookingID/complete", middleware.RequireRole(models.RoleOwner), h.Bookings.Complete)
	}

	requests := r.Group("/api/requests", authRequired, middleware.RequireRole(models.RoleOwner))
	{
		requests.POST("/spot", h.Requests.SubmitNewSpot)
		requests.POST("/spot/:spotID/edit", h.Requests.SubmitEdit)
		requests.POST("/spot/:spotID/availability", h.Requests.SubmitAvailability)
		requests.GET("/mine", h.Requests.ListMine)
	}

	admin := r.Group("/api/admin", authRequired, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/requests", h.Admin.ListPending)
		admin.PUT("/requests/:requestID/approve", h.Admin.Approve)
		admin.PUT("/requests/:requestID/reject", h.Admin.Reject)
		admin.DELETE("/spots/:spotID", h.Admin.DeleteSpot)
	}

	notifications := r.Group("/api/notifications", authRequired)
	{
		notifications.GET("", h.Notifications.ListMine)
		notifications.PUT("/:notificationID/read", h.Notifications.MarkRead)
	}
}
