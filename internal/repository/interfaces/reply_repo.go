package interfaces

import (
	"context"

	"github.com/cinematica/cinematica-api/internal/models"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, id int64) (*models.Reply, error)
	ListByPost(ctx context.Context, postID int64, offset, limit int) ([]*models.Reply, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
	ListIDsByUser(ctx context.Context, userID string) ([]int64, error)
	// DeleteCascade removes the reply's likes and the reply in one
	// transaction.
	DeleteCascade(ctx context.Context, id int64) error
}
