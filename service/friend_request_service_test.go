package service

import (
	"testing"

	"umastagram/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSendFriendRequest 同一有序对重复申请被拒，反向不受影响
func TestSendFriendRequest(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFriendRequestService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	// 首次申请成功
	fr, err := svc.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, fr.ID)
	assert.Equal(t, alice.ID, fr.RequesterID)
	assert.Equal(t, bob.ID, fr.TargetID)
	assert.False(t, fr.RequestedAt.IsZero())

	// 同一有序对重复申请
	_, err = svc.SendFriendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	// 反向 (bob -> alice) 是另一条记录
	_, err = svc.SendFriendRequest(bob.ID, alice.ID)
	assert.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.FriendRequest{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// TestDeleteFriendRequest 删除按有序对匹配，缺失时无报错返回 0
func TestDeleteFriendRequest(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFriendRequestService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// 方向不对删不掉
	removed, err := svc.DeleteFriendRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	removed, err = svc.DeleteFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// 再删一次是幂等的
	removed, err = svc.DeleteFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

// TestGetUserFriendRequests 按申请时间升序返回申请者信息
func TestGetUserFriendRequests(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFriendRequestService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := svc.SendFriendRequest(alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = svc.SendFriendRequest(bob.ID, carol.ID)
	require.NoError(t, err)

	names, err := svc.GetUserFriendRequests(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)

	// 没有申请时返回空列表
	names, err = svc.GetUserFriendRequests(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
}

// TestGetUserFriendRequestsDanglingRequester 申请者已不存在时整体报错
func TestGetUserFriendRequestsDanglingRequester(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFriendRequestService(db, userSvc)

	carol := createTestUser(t, db, "carol")

	// 直接插入一条申请者不存在的记录
	ghost := uuid.New()
	require.NoError(t, db.Create(&model.FriendRequest{
		RequesterID: ghost,
		TargetID:    carol.ID,
	}).Error)

	_, err := svc.GetUserFriendRequests(carol.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
