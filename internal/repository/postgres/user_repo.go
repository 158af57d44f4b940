package postgres

import (
	"context"
	"fmt"

	"github.com/cinematica/cinematica-api/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) AddMovie(ctx context.Context, userID string, movieID int64) error {
	entry := models.UserMovie{UserID: userID, MovieID: movieID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		// surfaced unchanged so the service can map duplicate entries
		return err
	}
	return nil
}

func (r *UserRepository) RemoveMovie(ctx context.Context, userID string, movieID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.UserMovie{}).Error; err != nil {
		return fmt.Errorf("failed to remove user movie: %w", err)
	}
	return nil
}

func (r *UserRepository) ListMovieIDs(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserMovie{}).
		Where("user_id = ?", userID).
		Pluck("movie_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list user movies: %w", err)
	}
	return ids, nil
}
