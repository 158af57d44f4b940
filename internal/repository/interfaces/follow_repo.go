package interfaces

import (
	"context"

	"github.com/cinematica/cinematica-api/internal/models"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *models.UserFollower) error
	Delete(ctx context.Context, userID, followerID string) error
	ListFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error)
	ListFollowing(ctx context.Context, followerID string) ([]models.FollowEntry, error)
	ListFollowingIDs(ctx context.Context, followerID string) ([]string, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, followerID string) (int64, error)
}
