package service

import (
	"testing"
	"time"

	"umastagram/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveFollow 重复关注被拒，EstablishedAt 由服务端写入
func TestSaveFollow(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFollowService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	before := time.Now()
	follow, err := svc.SaveFollow(&model.Follow{UserID: alice.ID, FriendID: bob.ID})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, follow.ID)
	assert.False(t, follow.EstablishedAt.Before(before))

	// 调用方传入的时间被忽略
	stale := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.SaveFollow(&model.Follow{UserID: bob.ID, FriendID: alice.ID, EstablishedAt: stale})
	require.NoError(t, err)
	var reverse model.Follow
	require.NoError(t, db.Where("user_id = ? AND friend_id = ?", bob.ID, alice.ID).First(&reverse).Error)
	assert.True(t, reverse.EstablishedAt.After(stale))

	// 同一有序对重复关注
	_, err = svc.SaveFollow(&model.Follow{UserID: alice.ID, FriendID: bob.ID})
	assert.ErrorIs(t, err, ErrDuplicateFollow)
}

// TestDeleteFollow 保存后删除回到初始状态，重复删除幂等
func TestDeleteFollow(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFollowService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.SaveFollow(&model.Follow{UserID: alice.ID, FriendID: bob.ID})
	require.NoError(t, err)

	removed, err := svc.DeleteFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// 删除后可以重新关注
	_, err = svc.SaveFollow(&model.Follow{UserID: alice.ID, FriendID: bob.ID})
	assert.NoError(t, err)

	// 删除不存在的边不是错误
	removed, err = svc.DeleteFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

// TestGetUserFollowers 只取指向该用户的边，按建立时间升序
func TestGetUserFollowers(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFollowService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := svc.SaveFollow(&model.Follow{UserID: alice.ID, FriendID: carol.ID})
	require.NoError(t, err)
	_, err = svc.SaveFollow(&model.Follow{UserID: bob.ID, FriendID: carol.ID})
	require.NoError(t, err)
	// carol 关注 alice，不影响 carol 自己的关注者列表
	_, err = svc.SaveFollow(&model.Follow{UserID: carol.ID, FriendID: alice.ID})
	require.NoError(t, err)

	names, err := svc.GetUserFollowers(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)

	names, err = svc.GetUserFollowers(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
}

// TestGetUserFollowersDanglingFollower 关注者已不存在时整体报错
func TestGetUserFollowersDanglingFollower(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFollowService(db, userSvc)

	carol := createTestUser(t, db, "carol")

	require.NoError(t, db.Create(&model.Follow{
		UserID:        uuid.New(),
		FriendID:      carol.ID,
		EstablishedAt: time.Now(),
	}).Error)

	_, err := svc.GetUserFollowers(carol.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// TestAcceptFriendRequest 接受申请：建边删申请一步完成
func TestAcceptFriendRequest(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	frSvc := NewFriendRequestService(db, userSvc)
	svc := NewFollowService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := frSvc.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	follow, err := svc.AcceptFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, follow.UserID)
	assert.Equal(t, bob.ID, follow.FriendID)

	// 申请人出现在被申请人的关注者列表
	names, err := svc.GetUserFollowers(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names)

	// 申请已删除
	var count int64
	require.NoError(t, db.Model(&model.FriendRequest{}).
		Where("requester_id = ? AND target_id = ?", alice.ID, bob.ID).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// TestAcceptFriendRequestDuplicateFollow 关注边已存在时接受失败，申请原样保留
func TestAcceptFriendRequestDuplicateFollow(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	frSvc := NewFriendRequestService(db, userSvc)
	svc := NewFollowService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := frSvc.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.SaveFollow(&model.Follow{UserID: alice.ID, FriendID: bob.ID})
	require.NoError(t, err)

	_, err = svc.AcceptFriendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrDuplicateFollow)

	// 整体回滚，申请还在
	var count int64
	require.NoError(t, db.Model(&model.FriendRequest{}).
		Where("requester_id = ? AND target_id = ?", alice.ID, bob.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestAcceptFriendRequestWithoutRequest 没有待处理申请时接受仍建边
//
// 删除 0 行不是错误，与单独调用 SaveFollow 行为一致。
func TestAcceptFriendRequestWithoutRequest(t *testing.T) {
	db := setupTestDB(t)
	userSvc := NewUserService(db)
	svc := NewFollowService(db, userSvc)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	follow, err := svc.AcceptFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, follow.UserID)

	names, err := svc.GetUserFollowers(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names)
}
