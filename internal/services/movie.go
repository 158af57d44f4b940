package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/internal/repository/interfaces"
	"github.com/cinematica/cinematica-api/internal/storage"
	"github.com/cinematica/cinematica-api/internal/tmdb"
	"github.com/cinematica/cinematica-api/pkg/cache"
	"github.com/cinematica/cinematica-api/pkg/logger"
)

// MetadataClient is satisfied by tmdb.Client.
type MetadataClient interface {
	SearchMovies(ctx context.Context, term string) ([]tmdb.SearchMovie, error)
	GetMovie(ctx context.Context, id int64) (*tmdb.MovieDetails, error)
	ImageURL(path string) string
}

// MovieService serves movie metadata cache-through: the relational cache is
// authoritative once populated, the upstream is consulted only on a miss.
type MovieService struct {
	movieRepo     interfaces.MovieRepository
	metadata      MetadataClient
	files         storage.FileStorage
	searchCache   *cache.RedisClient
	searchTTL     time.Duration
	serveLocation string
	logger        *logger.Logger
}

func NewMovieService(
	movieRepo interfaces.MovieRepository,
	metadata MetadataClient,
	files storage.FileStorage,
	searchCache *cache.RedisClient,
	searchTTL time.Duration,
	serveLocation string,
	logger *logger.Logger,
) *MovieService {
	return &MovieService{
		movieRepo:     movieRepo,
		metadata:      metadata,
		files:         files,
		searchCache:   searchCache,
		searchTTL:     searchTTL,
		serveLocation: serveLocation,
		logger:        logger,
	}
}

// GetMovie returns the full detail view for a TMDb id. A cache hit never
// touches the upstream; a miss fetches, persists and returns in one pass.
func (s *MovieService) GetMovie(ctx context.Context, movieID int64) (*models.MovieDetails, error) {
	cached, err := s.movieRepo.GetDetails(ctx, movieID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load movie", err)
	}
	if cached != nil {
		s.rewriteImageURLs(cached)
		return cached, nil
	}

	fetched, err := s.metadata.GetMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "movie not found")
		}
		return nil, apperrors.Wrap(apperrors.KindUpstreamUnavailable, "movie database unavailable", err)
	}

	details, err := s.cacheMovie(ctx, fetched)
	if err != nil {
		return nil, err
	}
	s.rewriteImageURLs(details)
	return details, nil
}

// SearchMovies queries the upstream by title. Results are cached briefly in
// redis; an unavailable upstream degrades to an empty result, never an error.
func (s *MovieService) SearchMovies(ctx context.Context, term string) ([]models.SimpleMovie, error) {
	key := searchKey(term)

	if s.searchCache != nil {
		var cached []models.SimpleMovie
		if err := s.searchCache.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.WithError(err).Warn("Search cache read failed")
		}
	}

	results, err := s.metadata.SearchMovies(ctx, term)
	if err != nil {
		s.logger.WithError(err).Warn("Movie search upstream failed")
		return []models.SimpleMovie{}, nil
	}

	movies := make([]models.SimpleMovie, 0, len(results))
	for _, r := range results {
		m := models.SimpleMovie{
			MovieID:     r.ID,
			Title:       r.Title,
			ReleaseYear: releaseYear(r.ReleaseDate),
		}
		if full := s.metadata.ImageURL(r.PosterPath); full != "" {
			poster := full
			m.Poster = &poster
		}
		movies = append(movies, m)
	}

	if s.searchCache != nil {
		if err := s.searchCache.SetJSON(ctx, key, movies, s.searchTTL); err != nil {
			s.logger.WithError(err).Warn("Search cache write failed")
		}
	}
	return movies, nil
}

// cacheMovie maps the upstream payload onto the cache tables and persists the
// whole graph in one transaction. Poster and banner downloads are best-effort;
// a failed download leaves the column null rather than failing the request.
func (s *MovieService) cacheMovie(ctx context.Context, fetched *tmdb.MovieDetails) (*models.MovieDetails, error) {
	movie := &models.Movie{
		MovieID:     fetched.ID,
		Title:       fetched.Title,
		Language:    fetched.OriginalLanguage,
		RunningTime: fmt.Sprintf("%d min", fetched.Runtime),
		Overview:    fetched.Overview,
	}

	if fetched.ReleaseDate != "" {
		if released, err := time.Parse("2006-01-02", fetched.ReleaseDate); err == nil {
			movie.ReleaseDate = &released
		}
	}
	if director := fetched.Director(); director != "" {
		movie.Director = &director
	}
	movie.Poster = s.downloadImage(ctx, fetched.PosterPath)
	movie.Banner = s.downloadImage(ctx, fetched.BackdropPath)

	people := make([]models.Person, 0, len(fetched.Credits.Cast))
	castMembers := make([]models.CastMember, 0, len(fetched.Credits.Cast))
	seen := make(map[int64]bool, len(fetched.Credits.Cast))
	for _, c := range fetched.Credits.Cast {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		people = append(people, models.Person{PersonID: c.ID, PersonName: c.Name})
		castMembers = append(castMembers, models.CastMember{
			MovieID:  fetched.ID,
			PersonID: c.ID,
			Role:     c.Character,
		})
	}

	genreNames := fetched.GenreNames()
	genres := make([]models.MovieGenre, 0, len(genreNames))
	for _, name := range genreNames {
		genres = append(genres, models.MovieGenre{MovieID: fetched.ID, Genre: name})
	}

	studioNames := fetched.Studios()
	studios := make([]models.Studio, 0, len(studioNames))
	movieStudios := make([]models.MovieStudio, 0, len(studioNames))
	studioList := make([]string, 0, len(studioNames))
	for id, name := range studioNames {
		studios = append(studios, models.Studio{StudioID: id, StudioName: name})
		movieStudios = append(movieStudios, models.MovieStudio{MovieID: fetched.ID, StudioID: id})
		studioList = append(studioList, name)
	}

	if err := s.movieRepo.SaveDetails(ctx, movie, people, castMembers, genres, studios, movieStudios); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to cache movie", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"movie_id": fetched.ID,
		"title":    fetched.Title,
	}).Info("Movie cached")

	castCredits := make([]models.CastCredit, 0, len(castMembers))
	for i, cm := range castMembers {
		castCredits = append(castCredits, models.CastCredit{
			PersonID: cm.PersonID,
			Name:     people[i].PersonName,
			Role:     cm.Role,
		})
	}

	return &models.MovieDetails{
		Movie:   *movie,
		Genres:  genreNames,
		Studios: studioList,
		Cast:    castCredits,
	}, nil
}

func (s *MovieService) downloadImage(ctx context.Context, path string) *string {
	url := s.metadata.ImageURL(path)
	if url == "" {
		return nil
	}
	fileName, err := s.files.Download(ctx, url, storage.MovieFiles)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to download movie image")
		return nil
	}
	return &fileName
}

func (s *MovieService) rewriteImageURLs(details *models.MovieDetails) {
	details.Movie.Poster = serveURL(s.serveLocation, storage.MovieFiles, details.Movie.Poster)
	details.Movie.Banner = serveURL(s.serveLocation, storage.MovieFiles, details.Movie.Banner)
}

func searchKey(term string) string {
	return "tmdb:search:" + strings.ToLower(strings.TrimSpace(term))
}

func releaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(releaseDate[:4]); err != nil {
		return ""
	}
	return releaseDate[:4]
}
