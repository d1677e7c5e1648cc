package service

import (
	"errors"
	"fmt"

	"umastagram/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser 注册用户（密码存 bcrypt 哈希）
//
// username/email 先查重给友好报错，唯一索引兜底并发。
func (s *UserService) CreateUser(username, email, password string) (*model.User, error) {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}

	if err := s.db.Create(user).Error; err != nil {
		// username/email 唯一索引冲突
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate 校验用户名密码
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindUserByID 按 ID 查用户
func (s *UserService) FindUserByID(userID uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// FindUserByUsername 按用户名查用户
func (s *UserService) FindUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// FindOrCreateOAuthUser OAuth 登录后按 github_id 查找用户，不存在则创建
//
// 新用户的 username 直接用第三方用户名，冲突时追加短随机后缀。
func (s *UserService) FindOrCreateOAuthUser(githubID, githubUsername, email string) (*model.User, error) {
	var user model.User
	err := s.db.Where("github_id = ?", githubID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	username := githubUsername
	newUser := &model.User{
		GithubID:       &githubID,
		GithubUsername: &githubUsername,
		Username:       username,
		Email:          email,
		Password:       uuid.NewString(), // OAuth 用户没有本地密码，占位随机值
	}

	if err := s.db.Create(newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// username 被占用，追加后缀重试一次
			newUser.ID = uuid.Nil
			newUser.Username = fmt.Sprintf("%s_%s", username, uuid.NewString()[:8])
			if err := s.db.Create(newUser).Error; err != nil {
				return nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
			return newUser, nil
		}
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}

	return newUser, nil
}
