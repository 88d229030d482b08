package notification

import "context"

// NotificationService is the fire-and-forget sink the booking and workflow
// engines emit into. Implementations must never return delivery failures
// to the caller; they log and move on.
type NotificationService interface {
	Notify(ctx context.Context, userID, title, message string, action map[string]string)
}
