package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestCreateUser 注册后密码以哈希存储，用户名/邮箱冲突被拒
func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	// 落库的是 bcrypt 哈希而不是明文
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))

	// 用户名冲突
	_, err = svc.CreateUser("alice", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// 邮箱冲突
	_, err = svc.CreateUser("alice2", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

// TestAuthenticate 密码校验
func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.CreateUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	user, err := svc.Authenticate("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// 密码错误和用户不存在给同一个错误，不泄露哪个环节错了
	_, err = svc.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestFindUser 按 ID / 用户名查找
func TestFindUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	alice := createTestUser(t, db, "alice")

	found, err := svc.FindUserByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	found, err = svc.FindUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = svc.FindUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// TestFindOrCreateOAuthUser 首次创建，再次登录复用同一账号
func TestFindOrCreateOAuthUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.FindOrCreateOAuthUser("gh-12345", "octo", "octo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "octo", user.Username)
	require.NotNil(t, user.GithubID)
	assert.Equal(t, "gh-12345", *user.GithubID)

	again, err := svc.FindOrCreateOAuthUser("gh-12345", "octo", "octo@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	// 第三方用户名撞了已有本地用户名时追加后缀
	createTestUser(t, db, "taken")
	other, err := svc.FindOrCreateOAuthUser("gh-67890", "taken", "taken2@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "taken", other.Username)
	assert.Contains(t, other.Username, "taken_")
}
