package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHub 记录推送调用，在线状态可控
type fakeHub struct {
	online map[uuid.UUID]bool
	sent   []uuid.UUID
}

func (h *fakeHub) SendNotification(userID uuid.UUID, notification interface{}) bool {
	h.sent = append(h.sent, userID)
	return true
}

func (h *fakeHub) IsUserOnline(userID uuid.UUID) bool {
	return h.online[userID]
}

// TestCreateNotification 通知落库，只有在线用户收到推送
func TestCreateNotification(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	hub := &fakeHub{online: map[uuid.UUID]bool{alice.ID: true}}
	svc.SetHubNotifier(hub)

	// alice 在线，收到推送
	n, err := svc.CreateNotification(alice.ID, "friend_request", "bob sent you a friend request", map[string]interface{}{
		"requester_id": bob.ID.String(),
	})
	require.NoError(t, err)
	assert.False(t, n.IsRead)
	assert.Contains(t, string(n.Metadata), bob.ID.String())
	assert.Equal(t, []uuid.UUID{alice.ID}, hub.sent)

	// bob 离线，只落库不推送
	_, err = svc.CreateNotification(bob.ID, "like", "alice liked your post", nil)
	require.NoError(t, err)
	assert.Len(t, hub.sent, 1)
}

// TestGetNotificationsAndMarkRead 分页读取与全部已读
func TestGetNotificationsAndMarkRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	alice := createTestUser(t, db, "alice")

	for i := 0; i < 3; i++ {
		_, err := svc.CreateNotification(alice.ID, "like", "someone liked your post", nil)
		require.NoError(t, err)
	}

	notifications, err := svc.GetNotifications(alice.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)

	notifications, err = svc.GetNotifications(alice.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)

	require.NoError(t, svc.MarkAllAsRead(alice.ID))
	notifications, err = svc.GetNotifications(alice.ID, 10, 0)
	require.NoError(t, err)
	for _, n := range notifications {
		assert.True(t, n.IsRead)
	}
}
