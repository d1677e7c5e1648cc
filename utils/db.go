package utils

import (
	"context"
	"errors"
	"log"
	"time"

	"umastagram/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// CustomLogger 自定义 GORM 日志器：只打印慢查询和真实错误
type CustomLogger struct {
	SlowThreshold time.Duration // 慢查询阈值
}

func (l *CustomLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}

func (l *CustomLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	// 不打印 Info 日志
}

func (l *CustomLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	// 不打印 Warn 日志
}

func (l *CustomLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if msg != "record not found" {
		log.Printf("[GORM Error] "+msg, data...)
	}
}

func (l *CustomLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	// 只打印慢查询（超过阈值）或真实错误
	// record not found / 唯一键冲突属于业务分支，不算真实错误
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Printf("[GORM Error] %s [%v] [rows:%d] %s", err, elapsed, rows, sql)
	} else if elapsed >= l.SlowThreshold {
		log.Printf("[SLOW SQL] [%v] [rows:%d] %s", elapsed, rows, sql)
	}
}

// InitDB 初始化数据库连接
//
// TranslateError 开启后，数据库唯一索引冲突会被翻译成 gorm.ErrDuplicatedKey。
// 关注/好友申请的复合唯一键以数据库约束为准，应用层的存在性检查只是为了更友好的报错。
func InitDB(databaseURL string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger: &CustomLogger{
			SlowThreshold: 100 * time.Millisecond, // 慢查询阈值：100ms
		},
	})
	if err != nil {
		return err
	}

	// 获取底层的 sql.DB 以配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)

	log.Println("✅ Database connected")
	return nil
}

// MigrateDB 同步表结构（含复合唯一索引）
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
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
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}

// CloseDB 关闭数据库连接
func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
