package models

import "time"

// NotificationType identifies the event that produced a notification.
type NotificationType string

const (
	NotificationComment  NotificationType = "comment"
	NotificationSolution NotificationType = "solution"
	NotificationHelper   NotificationType = "helper"
	NotificationUpvote   NotificationType = "upvote"
)

// Notification is an event addressed to a single user, published over the
// cache's pub/sub channels. RelatedID points at the problem or comment that
// triggered it.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Content   string           `json:"content"`
	Read      bool             `json:"read"`
	UserID    string           `json:"userId"`
	RelatedID string           `json:"relatedId"`
	CreatedAt time.Time        `json:"createdAt"`
}
