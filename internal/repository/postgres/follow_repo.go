package postgres

import (
	"context"
	"fmt"

	"github.com/cinematica/cinematica-api/internal/models"
	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Create(ctx context.Context, follow *models.UserFollower) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		// surfaced unchanged so the service can map duplicate edges
		return err
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, userID, followerID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.UserFollower{}).Error; err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	var entries []models.FollowEntry
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.user_id", "users.user_name").
		Joins("JOIN user_followers ON user_followers.follower_id = users.user_id").
		Where("user_followers.user_id = ?", userID).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return entries, nil
}

func (r *FollowRepository) ListFollowing(ctx context.Context, followerID string) ([]models.FollowEntry, error) {
	var entries []models.FollowEntry
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.user_id", "users.user_name").
		Joins("JOIN user_followers ON user_followers.user_id = users.user_id").
		Where("user_followers.follower_id = ?", followerID).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return entries, nil
}

func (r *FollowRepository) ListFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.UserFollower{}).
		Where("follower_id = ?", followerID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list following ids: %w", err)
	}
	return ids, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserFollower{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (r *FollowRepository) CountFollowing(ctx context.Context, followerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserFollower{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}
