package postgres

import (
	"context"
	"fmt"

	"github.com/cinematica/cinematica-api/internal/models"
	"gorm.io/gorm"
)

type ReplyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

func (r *ReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}
	return nil
}

func (r *ReplyRepository) GetByID(ctx context.Context, id int64) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&reply, "reply_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}
	return &reply, nil
}

func (r *ReplyRepository) ListByPost(ctx context.Context, postID int64, offset, limit int) ([]*models.Reply, error) {
	var replies []*models.Reply
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return replies, nil
}

func (r *ReplyRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count replies: %w", err)
	}
	return count, nil
}

func (r *ReplyRepository) ListIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Where("user_id = ?", userID).
		Order("reply_id DESC").
		Pluck("reply_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list reply ids: %w", err)
	}
	return ids, nil
}

func (r *ReplyRepository) DeleteCascade(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reply_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Reply{}, "reply_id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	return nil
}
