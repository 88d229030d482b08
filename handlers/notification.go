package handlers

import (
	"net/http"

	notificationRepo "bookmyspot/database/repository/notification"

	"github.com/gin-gonic/gin"
)

// NotificationHandler lists and acknowledges a user's notifications.
type NotificationHandler struct {
	Repo notificationRepo.NotificationRepository
}

func NewNotificationHandler(repo notificationRepo.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

// ListMine returns the caller's notifications, newest first.
func (h *NotificationHandler) ListMine(c *gin.Context) {
	notifications, err := h.Repo.QueryByUser(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead acknowledges one of the caller's notifications.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Repo.MarkRead(c.Param("notificationID"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
