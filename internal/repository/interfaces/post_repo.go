package interfaces

import (
	"context"

	"github.com/cinematica/cinematica-api/internal/models"
)

// PostRepository persists posts and their movie associations. Multi-row
// operations (create with selections, cascade delete) run inside a single
// database transaction.
type PostRepository interface {
	CreateWithMovies(ctx context.Context, post *models.Post, movieIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, offset, limit int) ([]*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*models.Post, error)
	ListByMovie(ctx context.Context, movieID int64, offset, limit int) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*models.Post, error)
	// DeleteCascade removes the post's likes, its replies' likes, its
	// replies, its movie selections and finally the post itself.
	DeleteCascade(ctx context.Context, id int64) error
}
