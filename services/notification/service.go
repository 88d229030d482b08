package notification

import (
	"context"
	"time"

	notificationRepo "bookmyspot/database/repository/notification"
	userRepo "bookmyspot/database/repository/user"
	"bookmyspot/models"
	"bookmyspot/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService persists a notification record and then
// attempts an FCM push. Both steps are best-effort.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Users userRepo.UserRepository
	FCM   *messaging.Client
}

// Notify emits a notification to userID. Failures are logged, never returned.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, title, message string, action map[string]string) {
	logger := utils.GetLogger()

	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Status:    models.NotificationUnread,
		Action:    action,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(n); err != nil {
		logger.Error("notification persist failed",
			zap.String("userID", userID), zap.Error(err))
	}

	if s.FCM == nil {
		return
	}

	u, err := s.Users.GetByID(userID)
	if err != nil {
		logger.Warn("notification push skipped: user lookup failed",
			zap.String("userID", userID), zap.Error(err))
		return
	}
	if u.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  message,
		},
		Data: action,
	}
	if _, err := s.FCM.Send(ctx, msg); err != nil {
		logger.Warn("notification push failed",
			zap.String("userID", userID), zap.Error(err))
	}
}
