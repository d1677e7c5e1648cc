package service

import "errors"

// 业务错误哨兵，handler 层据此映射 HTTP 状态码。
// 其余错误（持久化失败等）一律用 %w 包装向上传递。
var (
	ErrDuplicateRequest   = errors.New("friend request already exists")
	ErrDuplicateFollow    = errors.New("follow already exists")
	ErrDuplicateLike      = errors.New("user already liked this post")
	ErrDuplicateUser      = errors.New("username or email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
