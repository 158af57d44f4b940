package interfaces

import (
	"context"

	"github.com/cinematica/cinematica-api/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	AddMovie(ctx context.Context, userID string, movieID int64) error
	RemoveMovie(ctx context.Context, userID string, movieID int64) error
	ListMovieIDs(ctx context.Context, userID string) ([]int64, error)
}
