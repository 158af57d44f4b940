package postgres

import (
	"context"
	"fmt"

	"github.com/cinematica/cinematica-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, "movie_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return &movie, nil
}

func (r *MovieRepository) GetDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	movie, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, nil
	}

	var genres []string
	if err := r.db.WithContext(ctx).
		Model(&models.MovieGenre{}).
		Where("movie_id = ?", id).
		Pluck("genre", &genres).Error; err != nil {
		return nil, fmt.Errorf("failed to get movie genres: %w", err)
	}

	var studios []string
	if err := r.db.WithContext(ctx).
		Table("studios").
		Joins("JOIN movie_studios ON movie_studios.studio_id = studios.studio_id").
		Where("movie_studios.movie_id = ?", id).
		Pluck("studios.studio_name", &studios).Error; err != nil {
		return nil, fmt.Errorf("failed to get movie studios: %w", err)
	}

	var cast []models.CastCredit
	if err := r.db.WithContext(ctx).
		Table("cast_members").
		Select("cast_members.person_id", "people.person_name AS name", "cast_members.role").
		Joins("JOIN people ON people.person_id = cast_members.person_id").
		Where("cast_members.movie_id = ?", id).
		Find(&cast).Error; err != nil {
		return nil, fmt.Errorf("failed to get movie cast: %w", err)
	}

	return &models.MovieDetails{
		Movie:   *movie,
		Genres:  genres,
		Studios: studios,
		Cast:    cast,
	}, nil
}

func (r *MovieRepository) SaveDetails(ctx context.Context, movie *models.Movie, people []models.Person, cast []models.CastMember,
	genres []models.MovieGenre, studios []models.Studio, movieStudios []models.MovieStudio) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movie).Error; err != nil {
			return err
		}
		for i := range people {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&people[i]).Error; err != nil {
				return err
			}
		}
		for i := range studios {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&studios[i]).Error; err != nil {
				return err
			}
		}
		if len(cast) > 0 {
			if err := tx.Create(&cast).Error; err != nil {
				return err
			}
		}
		if len(genres) > 0 {
			if err := tx.Create(&genres).Error; err != nil {
				return err
			}
		}
		if len(movieStudios) > 0 {
			if err := tx.Create(&movieStudios).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save movie details: %w", err)
	}
	return nil
}

func (r *MovieRepository) ListSimpleByPost(ctx context.Context, postID int64) ([]models.SimpleMovie, error) {
	var movies []models.Movie
	if err := r.db.WithContext(ctx).
		Joins("JOIN movie_selections ON movie_selections.movie_id = movies.movie_id").
		Where("movie_selections.post_id = ?", postID).
		Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies for post: %w", err)
	}
	return toSimpleMovies(movies), nil
}

func (r *MovieRepository) ListSimpleByIDs(ctx context.Context, ids []int64) ([]models.SimpleMovie, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var movies []models.Movie
	if err := r.db.WithContext(ctx).
		Where("movie_id IN ?", ids).
		Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return toSimpleMovies(movies), nil
}

func toSimpleMovies(movies []models.Movie) []models.SimpleMovie {
	simple := make([]models.SimpleMovie, 0, len(movies))
	for _, m := range movies {
		year := ""
		if m.ReleaseDate != nil {
			year = m.ReleaseDate.Format("2006")
		}
		simple = append(simple, models.SimpleMovie{
			MovieID:     m.MovieID,
			Title:       m.Title,
			ReleaseYear: year,
			Poster:      m.Poster,
		})
	}
	return simple
}
