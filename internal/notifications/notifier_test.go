package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"milaan/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyPublishesToUserChannel(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, UserChannel("user_4"))
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx) // wait for the subscription confirmation
	require.NoError(t, err)

	n := NewNotifier(rdb)
	n.Notify(ctx, "user_4", models.NotificationComment, "John Helper commented on \"Need help\"", "comment_9")

	select {
	case msg := <-sub.Channel():
		var got models.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, models.NotificationComment, got.Type)
		assert.Equal(t, "user_4", got.UserID)
		assert.Equal(t, "comment_9", got.RelatedID)
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestNotifyIsBestEffort(t *testing.T) {
	t.Parallel()

	// None of these may panic or block.
	NewNotifier(nil).Notify(context.Background(), "user_1", models.NotificationUpvote, "x", "y")
	var n *Notifier
	n.Notify(context.Background(), "user_1", models.NotificationUpvote, "x", "y")
	NewNotifier(nil).Notify(context.Background(), "", models.NotificationUpvote, "x", "y")
}
