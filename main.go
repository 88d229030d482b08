package main

import (
	"bookmyspot/config"
	"bookmyspot/cron"
	"bookmyspot/database"
	bookingRepoPkg "bookmyspot/database/repository/booking"
	notificationRepoPkg "bookmyspot/database/repository/notification"
	requestRepoPkg "bookmyspot/database/repository/request"
	spotRepoPkg "bookmyspot/database/repository/spot"
	userRepoPkg "bookmyspot/database/repository/user"
	"bookmyspot/handlers"
	"bookmyspot/middleware"
	"bookmyspot/routes"
	"bookmyspot/services/booking"
	"bookmyspot/services/events"
	"bookmyspot/services/notification"
	"bookmyspot/services/tasks"
	"bookmyspot/services/workflow"
	"bookmyspot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	spotRepo := spotRepoPkg.NewMongoSpotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	hub := events.NewHub()
	notifier := &notification.DefaultNotificationService{
		Repo:  notificationRepo,
		Users: userRepo,
		FCM:   utils.FCMClient,
	}
	paymentHandler := booking.NewStripePaymentHandler(logger)
	bookingService := &booking.DefaultBookingService{
		SpotRepo:       spotRepo,
		BookingRepo:    bookingRepo,
		PaymentHandler: paymentHandler,
		Notifier:       notifier,
		Reminders:      tasks.NewAsynqScheduler(),
		Events:         hub,
		Currency:       config.AppConfig.Currency,
	}
	cron.InitReminderWorker(notifier, bookingRepo)
	workflowEngine := &workflow.DefaultWorkflowEngine{
		SpotRepo:    spotRepo,
		RequestRepo: requestRepo,
		UserRepo:    userRepo,
		Notifier:    notifier,
		Events:      hub,
	}

	// handlers.
	routes.RegisterRoutes(router, routes.Handlers{
		Users:         userRepo,
		Auth:          handlers.NewAuthHandler(userRepo),
		Spots:         handlers.NewSpotHandler(spotRepo, bookingService, hub),
		Bookings:      handlers.NewBookingHandler(bookingService, utils.GetSessionCacheClient()),
		Requests:      handlers.NewRequestHandler(workflowEngine),
		Admin:         handlers.NewAdminHandler(workflowEngine, spotRepo),
		Notifications: handlers.NewNotificationHandler(notificationRepo),
	})

	addr := ":" + config.AppConfig.AppPort
	logger.Sugar().Infof("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.Sugar().Fatalf("server exited: %v", err)
	}
}
