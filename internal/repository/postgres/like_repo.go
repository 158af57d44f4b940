package postgres

import (
	"context"
	"fmt"

	"github.com/cinematica/cinematica-api/internal/models"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, likeID int64) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Like{}, "like_id = ?", likeID).Error; err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (r *LikeRepository) GetForPost(ctx context.Context, postID int64, userID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}

func (r *LikeRepository) GetForReply(ctx context.Context, replyID int64, userID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("reply_id = ? AND user_id = ?", replyID, userID).
		First(&like).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}

func (r *LikeRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *LikeRepository) CountForReply(ctx context.Context, replyID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("reply_id = ?", replyID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *LikeRepository) IsPostLiked(ctx context.Context, postID int64, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check like status: %w", err)
	}
	return count > 0, nil
}

func (r *LikeRepository) IsReplyLiked(ctx context.Context, replyID int64, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("reply_id = ? AND user_id = ?", replyID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check like status: %w", err)
	}
	return count > 0, nil
}

func (r *LikeRepository) ListRefsByUser(ctx context.Context, userID string) ([]models.LikeRef, error) {
	var refs []models.LikeRef
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ?", userID).
		Order("like_id DESC").
		Select("post_id", "reply_id").
		Find(&refs).Error; err != nil {
		return nil, fmt.Errorf("failed to list likes by user: %w", err)
	}
	return refs, nil
}
