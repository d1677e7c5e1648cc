package service

import (
	"testing"

	"umastagram/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试一个独立的内存 SQLite 库
//
// 限制为单连接：内存库按连接隔离，连接池开多条会各自拿到空库。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.FriendRequest{},
		&model.Follow{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Uma{},
		&model.Horse{},
		&model.Notification{},
	)
	require.NoError(t, err)

	return db
}

// createTestUser 直接落库一个用户
func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
