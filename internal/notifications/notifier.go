// Package notifications publishes per-user notification events over Redis
// pub/sub channels. Delivery is best-effort: a nil client or a failed publish
// never fails the operation that produced the event.
package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"milaan/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// UserChannel returns the pub/sub channel carrying a user's notifications.
func UserChannel(userID string) string {
	return "notifications:user:" + userID
}

// Notifier publishes notifications into Redis channels.
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier returns a notifier over rdb. rdb may be nil.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{
		rdb: rdb,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Notify publishes an event of the given type to userID's channel.
// relatedID points at the problem or comment that triggered it.
func (n *Notifier) Notify(ctx context.Context, userID string, typ models.NotificationType, content, relatedID string) {
	if n == nil || n.rdb == nil || userID == "" {
		return
	}
	notification := models.Notification{
		ID:        "notification_" + uuid.NewString(),
		Type:      typ,
		Content:   content,
		UserID:    userID,
		RelatedID: relatedID,
		CreatedAt: n.now(),
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		slog.Warn("notification marshal failed", "error", err)
		return
	}
	if err := n.rdb.Publish(ctx, UserChannel(userID), payload).Err(); err != nil {
		slog.Warn("notification publish failed", "user", userID, "error", err)
	}
}
