package interfaces

import (
	"context"

	"github.com/cinematica/cinematica-api/internal/models"
)

// MovieRepository owns the write-once movie metadata cache tables.
type MovieRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	// GetDetails joins the cached movie with its genres, studios and cast.
	GetDetails(ctx context.Context, id int64) (*models.MovieDetails, error)
	// SaveDetails persists a freshly fetched movie and its child rows in one
	// transaction. People and studios are inserted only when absent by id.
	SaveDetails(ctx context.Context, movie *models.Movie, people []models.Person, cast []models.CastMember,
		genres []models.MovieGenre, studios []models.Studio, movieStudios []models.MovieStudio) error
	ListSimpleByPost(ctx context.Context, postID int64) ([]models.SimpleMovie, error)
	ListSimpleByIDs(ctx context.Context, ids []int64) ([]models.SimpleMovie, error)
}
