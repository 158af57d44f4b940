package services

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/internal/tmdb"
	"github.com/cinematica/cinematica-api/pkg/queue"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreateWithMovies(ctx context.Context, post *models.Post, movieIDs []int64) error {
	args := m.Called(ctx, post, movieIDs)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, offset, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, authorIDs, offset, limit)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByMovie(ctx context.Context, movieID int64, offset, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, movieID, offset, limit)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) DeleteCascade(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) GetByID(ctx context.Context, id int64) (*models.Reply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) ListByPost(ctx context.Context, postID int64, offset, limit int) ([]*models.Reply, error) {
	args := m.Called(ctx, postID, offset, limit)
	return args.Get(0).([]*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReplyRepository) ListIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockReplyRepository) DeleteCascade(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(ctx context.Context, likeID int64) error {
	args := m.Called(ctx, likeID)
	return args.Error(0)
}

func (m *MockLikeRepository) GetForPost(ctx context.Context, postID int64, userID string) (*models.Like, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) GetForReply(ctx context.Context, replyID int64, userID string) (*models.Like, error) {
	args := m.Called(ctx, replyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) CountForReply(ctx context.Context, replyID int64) (int64, error) {
	args := m.Called(ctx, replyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) IsPostLiked(ctx context.Context, postID int64, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) IsReplyLiked(ctx context.Context, replyID int64, userID string) (bool, error) {
	args := m.Called(ctx, replyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ListRefsByUser(ctx context.Context, userID string) ([]models.LikeRef, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.LikeRef), args.Error(1)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *models.UserFollower) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, userID, followerID string) error {
	args := m.Called(ctx, userID, followerID)
	return args.Error(0)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FollowEntry), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, followerID string) ([]models.FollowEntry, error) {
	args := m.Called(ctx, followerID)
	return args.Get(0).([]models.FollowEntry), args.Error(1)
}

func (m *MockFollowRepository) ListFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	args := m.Called(ctx, followerID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, followerID string) (int64, error) {
	args := m.Called(ctx, followerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddMovie(ctx context.Context, userID string, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveMovie(ctx context.Context, userID string, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockUserRepository) ListMovieIDs(ctx context.Context, userID string) ([]int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int64), args.Error(1)
}

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MovieDetails), args.Error(1)
}

func (m *MockMovieRepository) SaveDetails(ctx context.Context, movie *models.Movie, people []models.Person, cast []models.CastMember,
	genres []models.MovieGenre, studios []models.Studio, movieStudios []models.MovieStudio) error {
	args := m.Called(ctx, movie, people, cast, genres, studios, movieStudios)
	return args.Error(0)
}

func (m *MockMovieRepository) ListSimpleByPost(ctx context.Context, postID int64) ([]models.SimpleMovie, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.SimpleMovie), args.Error(1)
}

func (m *MockMovieRepository) ListSimpleByIDs(ctx context.Context, ids []int64) ([]models.SimpleMovie, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.SimpleMovie), args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, file *multipart.FileHeader, subpath string) (string, error) {
	args := m.Called(ctx, file, subpath)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Download(ctx context.Context, url, subpath string) (string, error) {
	args := m.Called(ctx, url, subpath)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, key string, event queue.Event) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}

type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) SearchMovies(ctx context.Context, term string) ([]tmdb.SearchMovie, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tmdb.SearchMovie), args.Error(1)
}

func (m *MockMetadataClient) GetMovie(ctx context.Context, id int64) (*tmdb.MovieDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.MovieDetails), args.Error(1)
}

func (m *MockMetadataClient) ImageURL(path string) string {
	args := m.Called(path)
	return args.String(0)
}
