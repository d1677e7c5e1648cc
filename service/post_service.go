package service

import (
	"errors"
	"fmt"

	"umastagram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostService struct {
	db      *gorm.DB
	userSvc *UserService
}

func NewPostService(db *gorm.DB, userSvc *UserService) *PostService {
	return &PostService{db: db, userSvc: userSvc}
}

// CreatePost 发布帖子
func (s *PostService) CreatePost(userID uuid.UUID, text string, image *string) (*model.Post, error) {
	post := &model.Post{
		UserID: userID,
		Text:   text,
		Image:  image,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetAllPosts 获取全部帖子（新的在前）
func (s *PostService) GetAllPosts() ([]model.Post, error) {
	var posts []model.Post
	err := s.db.Order("posted_at DESC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	return posts, nil
}

// GetPostsByUser 获取指定用户的帖子
func (s *PostService) GetPostsByUser(userID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.Where("user_id = ?", userID).
		Order("posted_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	return posts, nil
}

// GetPostByID 按 ID 查帖子
func (s *PostService) GetPostByID(postID uuid.UUID) (*model.Post, error) {
	var post model.Post
	err := s.db.Where("id = ?", postID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	return &post, nil
}

// DeletePost 删除帖子，返回受影响行数
func (s *PostService) DeletePost(postID uuid.UUID) (int64, error) {
	result := s.db.Where("id = ?", postID).Delete(&model.Post{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete post: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// LikePost 点赞：建赞 + 帖子计数 +1，单事务完成
//
// 用户和帖子都必须存在；同一 (user, post) 重复点赞返回 ErrDuplicateLike，
// 唯一性由 (user_id, post_id) 复合唯一索引兜底。
func (s *PostService) LikePost(userID, postID uuid.UUID) (*model.Like, error) {
	if _, err := s.userSvc.FindUserByID(userID); err != nil {
		return nil, err
	}

	like := &model.Like{
		UserID: userID,
		PostID: postID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("failed to query post: %w", err)
		}

		var count int64
		if err := tx.Model(&model.Like{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check like: %w", err)
		}
		if count > 0 {
			return ErrDuplicateLike
		}

		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateLike
			}
			return fmt.Errorf("failed to create like: %w", err)
		}

		if err := tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment like count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return like, nil
}

// UnlikePost 取消点赞：删赞 + 帖子计数 -1，单事务完成
//
// 赞不存在时是幂等 no-op，返回受影响行数 0，计数不变。
func (s *PostService) UnlikePost(userID, postID uuid.UUID) (int64, error) {
	var removed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.Like{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete like: %w", result.Error)
		}
		removed = result.RowsAffected
		if removed == 0 {
			return nil
		}

		if err := tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
			return fmt.Errorf("failed to decrement like count: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// GetLikedPosts 获取用户点赞过的帖子（按点赞时间升序）
func (s *PostService) GetLikedPosts(userID uuid.UUID) ([]model.Post, error) {
	var likes []model.Like
	err := s.db.Where("user_id = ?", userID).
		Order("liked_at ASC").
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}

	posts := make([]model.Post, 0, len(likes))
	for _, like := range likes {
		var post model.Post
		if err := s.db.Where("id = ?", like.PostID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // 帖子已删，跳过
			}
			return nil, fmt.Errorf("failed to query post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateComment 发表评论（帖子必须存在）
func (s *PostService) CreateComment(postID, userID uuid.UUID, text string) (*model.Comment, error) {
	if _, err := s.GetPostByID(postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetCommentsByPost 获取帖子的评论（按时间升序）
func (s *PostService) GetCommentsByPost(postID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.Where("post_id = ?", postID).
		Order("commented_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	return comments, nil
}
