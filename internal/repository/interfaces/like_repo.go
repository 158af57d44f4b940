package interfaces

import (
	"context"

	"github.com/cinematica/cinematica-api/internal/models"
)

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, likeID int64) error
	GetForPost(ctx context.Context, postID int64, userID string) (*models.Like, error)
	GetForReply(ctx context.Context, replyID int64, userID string) (*models.Like, error)
	CountForPost(ctx context.Context, postID int64) (int64, error)
	CountForReply(ctx context.Context, replyID int64) (int64, error)
	IsPostLiked(ctx context.Context, postID int64, userID string) (bool, error)
	IsReplyLiked(ctx context.Context, replyID int64, userID string) (bool, error)
	ListRefsByUser(ctx context.Context, userID string) ([]models.LikeRef, error)
}
