package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/identity"
	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/pkg/logger"
)

type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) GetAccountBySub(ctx context.Context, sub string) (*identity.Account, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func newUserServiceForTest(
	userRepo *MockUserRepository,
	followRepo *MockFollowRepository,
	accounts AccountResolver,
) *UserService {
	return NewUserService(
		userRepo, followRepo, new(MockReplyRepository), new(MockLikeRepository), new(MockMovieRepository),
		accounts, new(MockFileStorage), nil, "http://cdn.test/", logger.NewLogger(),
	)
}

func TestGetUserMergesIdentityAndCounts(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	accounts := new(MockAccountResolver)

	pic := "me.png"
	userRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{
		UserID:         "u1",
		UserName:       "stale-name",
		ProfilePicture: &pic,
	}, nil)
	accounts.On("GetAccountBySub", mock.Anything, "u1").Return(&identity.Account{
		UserID:   "u1",
		Username: "alice",
	}, nil)
	followRepo.On("CountFollowers", mock.Anything, "u1").Return(int64(12), nil)
	followRepo.On("CountFollowing", mock.Anything, "u1").Return(int64(4), nil)

	svc := newUserServiceForTest(userRepo, followRepo, accounts)

	profile, err := svc.GetUser(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Equal(t, "alice", profile.UserName)
	assert.Equal(t, int64(12), profile.FollowerCount)
	assert.Equal(t, "http://cdn.test/users/me.png", *profile.ProfilePicture)
}

func TestGetUserFallsBackToCachedNameWhenIdentityDown(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	accounts := new(MockAccountResolver)

	userRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{UserID: "u1", UserName: "alice"}, nil)
	accounts.On("GetAccountBySub", mock.Anything, "u1").Return(nil, errors.New("throttled"))
	followRepo.On("CountFollowers", mock.Anything, "u1").Return(int64(0), nil)
	followRepo.On("CountFollowing", mock.Anything, "u1").Return(int64(0), nil)

	svc := newUserServiceForTest(userRepo, followRepo, accounts)

	profile, err := svc.GetUser(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Equal(t, "alice", profile.UserName)
}

func TestFollowDuplicateEdgeIsConflict(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)

	userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&models.User{UserID: "u"}, nil)
	followRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.UserFollower")).Return(gorm.ErrDuplicatedKey)

	svc := newUserServiceForTest(userRepo, followRepo, nil)

	err := svc.Follow(context.Background(), "u1", "u2")

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAddMovieDuplicateIsConflict(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{UserID: "u1"}, nil)
	userRepo.On("AddMovie", mock.Anything, "u1", int64(42)).Return(gorm.ErrDuplicatedKey)

	svc := newUserServiceForTest(userRepo, new(MockFollowRepository), nil)

	err := svc.AddMovie(context.Background(), "u1", 42)

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestGetUserMoviesPrefixesPosters(t *testing.T) {
	userRepo := new(MockUserRepository)
	movieRepo := new(MockMovieRepository)

	poster := "p.jpg"
	userRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{UserID: "u1"}, nil)
	userRepo.On("ListMovieIDs", mock.Anything, "u1").Return([]int64{42}, nil)
	movieRepo.On("ListSimpleByIDs", mock.Anything, []int64{42}).Return([]models.SimpleMovie{
		{MovieID: 42, Title: "Heat", ReleaseYear: "1995", Poster: &poster},
	}, nil)

	svc := NewUserService(
		userRepo, new(MockFollowRepository), new(MockReplyRepository), new(MockLikeRepository), movieRepo,
		nil, new(MockFileStorage), nil, "http://cdn.test/", logger.NewLogger(),
	)

	movies, err := svc.GetUserMovies(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Equal(t, "http://cdn.test/movies/p.jpg", *movies[0].Poster)
}
