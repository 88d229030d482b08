package models

import "time"

// NotificationStatus marks whether the recipient has seen a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// ReminderPayload is the body of a queued reminder task, delivered
// shortly before a booking's start time.
type ReminderPayload struct {
	UserID    string `json:"user_id"`
	BookingID string `json:"booking_id"`
	SpotID    string `json:"spot_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// Notification is an emitted-only record: the workflow and booking engines
// write them, nothing in the core reads them back.
type Notification struct {
	ID        string             `bson:"id" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Status    NotificationStatus `bson:"status" json:"status"`
	Action    map[string]string  `bson:"action,omitempty" json:"action,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
