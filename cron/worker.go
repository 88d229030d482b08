package cron

import (
	"context"
	"encoding/json"
	"time"

	"bookmyspot/config"
	"bookmyspot/models"
	"bookmyspot/services/notification"
	"bookmyspot/services/tasks"
	"bookmyspot/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// bookingLedger is the slice of the booking store the worker needs to
// decide whether a reminder is still due.
type bookingLedger interface {
	GetByID(id string) (*models.Booking, error)
}

// InitReminderWorker runs the asynq reminder worker in the background.
func InitReminderWorker(notifier notification.NotificationService, bookings bookingLedger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(notifier, bookings))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers a due reminder through the notification
// sink. Bookings that were cancelled or completed after the reminder was
// queued are skipped silently.
func handleReminderTask(notifier notification.NotificationService, bookings bookingLedger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder task carried an invalid payload", zap.Error(err))
			return err
		}

		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			logger.Warn("reminder skipped: booking lookup failed",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return nil
		}
		if b.Status != models.BookingActive {
			return nil
		}

		notifier.Notify(ctx, p.UserID, p.Title, p.Body,
			map[string]string{"booking_id": p.BookingID, "spot_id": p.SpotID})
		return nil
	}
}
