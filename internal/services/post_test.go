package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/pkg/logger"
)

func newPostServiceForTest(
	postRepo *MockPostRepository,
	replyRepo *MockReplyRepository,
	likeRepo *MockLikeRepository,
	followRepo *MockFollowRepository,
	movieRepo *MockMovieRepository,
	userRepo *MockUserRepository,
) *PostService {
	return NewPostService(
		postRepo, replyRepo, likeRepo, followRepo, movieRepo, userRepo,
		new(MockFileStorage), nil, "http://cdn.test/", logger.NewLogger(),
	)
}

func testPost(id int64, userID string) *models.Post {
	image := "pic.jpg"
	return &models.Post{
		PostID:    id,
		UserID:    userID,
		Body:      "great movie",
		Image:     &image,
		CreatedAt: time.Now(),
		User:      models.User{UserID: userID, UserName: "alice"},
	}
}

func TestGetPostWithoutViewer(t *testing.T) {
	postRepo := new(MockPostRepository)
	replyRepo := new(MockReplyRepository)
	likeRepo := new(MockLikeRepository)
	movieRepo := new(MockMovieRepository)

	post := testPost(1, "u1")
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(post, nil)
	replyRepo.On("CountByPost", mock.Anything, int64(1)).Return(int64(3), nil)
	likeRepo.On("CountForPost", mock.Anything, int64(1)).Return(int64(7), nil)
	movieRepo.On("ListSimpleByPost", mock.Anything, int64(1)).Return([]models.SimpleMovie{
		{MovieID: 42, Title: "Heat", ReleaseYear: "1995"},
	}, nil)

	svc := newPostServiceForTest(postRepo, replyRepo, likeRepo, new(MockFollowRepository), movieRepo, new(MockUserRepository))

	details, err := svc.GetPost(context.Background(), 1, "")

	assert.NoError(t, err)
	assert.False(t, details.YouLike)
	assert.Equal(t, int64(7), details.LikesCount)
	assert.Equal(t, int64(3), details.CommentsCount)
	assert.Len(t, details.Movies, 1)
	assert.Equal(t, int64(42), details.Movies[0].MovieID)
	// the viewer-less path must never consult the like table for the viewer
	likeRepo.AssertNotCalled(t, "IsPostLiked", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPostRewritesImageURLs(t *testing.T) {
	postRepo := new(MockPostRepository)
	replyRepo := new(MockReplyRepository)
	likeRepo := new(MockLikeRepository)
	movieRepo := new(MockMovieRepository)

	post := testPost(1, "u1")
	profile := "me.png"
	post.User.ProfilePicture = &profile

	postRepo.On("GetByID", mock.Anything, int64(1)).Return(post, nil)
	replyRepo.On("CountByPost", mock.Anything, int64(1)).Return(int64(0), nil)
	likeRepo.On("CountForPost", mock.Anything, int64(1)).Return(int64(0), nil)
	movieRepo.On("ListSimpleByPost", mock.Anything, int64(1)).Return([]models.SimpleMovie{}, nil)

	svc := newPostServiceForTest(postRepo, replyRepo, likeRepo, new(MockFollowRepository), movieRepo, new(MockUserRepository))

	details, err := svc.GetPost(context.Background(), 1, "")

	assert.NoError(t, err)
	assert.Equal(t, "http://cdn.test/posts/pic.jpg", *details.Post.Image)
	assert.Equal(t, "http://cdn.test/users/me.png", *details.ProfilePicture)
	// the stored row keeps the bare filename
	assert.Equal(t, "pic.jpg", *post.Image)
}

func TestGetPostNotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	svc := newPostServiceForTest(postRepo, new(MockReplyRepository), new(MockLikeRepository), new(MockFollowRepository), new(MockMovieRepository), new(MockUserRepository))

	_, err := svc.GetPost(context.Background(), 99, "u1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestListPostsPageTwoOffset(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("List", mock.Anything, 10, 10).Return([]*models.Post{}, nil)

	svc := newPostServiceForTest(postRepo, new(MockReplyRepository), new(MockLikeRepository), new(MockFollowRepository), new(MockMovieRepository), new(MockUserRepository))

	posts, err := svc.ListPosts(context.Background(), 2, "")

	assert.NoError(t, err)
	assert.Empty(t, posts)
	postRepo.AssertExpectations(t)
}

func TestTogglePostLikeTwiceRestoresState(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)

	post := testPost(1, "u1")
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(post, nil)

	// first toggle: no like yet, one is created
	likeRepo.On("GetForPost", mock.Anything, int64(1), "u2").Return(nil, nil).Once()
	likeRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Like")).Return(nil).Once()

	// second toggle: the like exists and is removed
	postID := int64(1)
	likeRepo.On("GetForPost", mock.Anything, int64(1), "u2").Return(&models.Like{LikeID: 5, UserID: "u2", PostID: &postID}, nil).Once()
	likeRepo.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

	svc := newPostServiceForTest(postRepo, new(MockReplyRepository), likeRepo, new(MockFollowRepository), new(MockMovieRepository), new(MockUserRepository))

	liked, err := svc.TogglePostLike(context.Background(), 1, "u2")
	assert.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.TogglePostLike(context.Background(), 1, "u2")
	assert.NoError(t, err)
	assert.False(t, liked)

	likeRepo.AssertExpectations(t)
}

func TestDeletePostRejectsNonAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(testPost(1, "u1"), nil)

	svc := newPostServiceForTest(postRepo, new(MockReplyRepository), new(MockLikeRepository), new(MockFollowRepository), new(MockMovieRepository), new(MockUserRepository))

	err := svc.DeletePost(context.Background(), 1, "u2")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	postRepo.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
}

func TestDeletePostCascades(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, int64(1)).Return(testPost(1, "u1"), nil)
	postRepo.On("DeleteCascade", mock.Anything, int64(1)).Return(nil)

	svc := newPostServiceForTest(postRepo, new(MockReplyRepository), new(MockLikeRepository), new(MockFollowRepository), new(MockMovieRepository), new(MockUserRepository))

	err := svc.DeletePost(context.Background(), 1, "u1")

	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
}

func TestListFollowingPostsUsesFollowedAuthors(t *testing.T) {
	postRepo := new(MockPostRepository)
	followRepo := new(MockFollowRepository)

	followRepo.On("ListFollowingIDs", mock.Anything, "u1").Return([]string{"u2", "u3"}, nil)
	postRepo.On("ListByAuthors", mock.Anything, []string{"u2", "u3"}, 0, 10).Return([]*models.Post{}, nil)

	svc := newPostServiceForTest(postRepo, new(MockReplyRepository), new(MockLikeRepository), followRepo, new(MockMovieRepository), new(MockUserRepository))

	posts, err := svc.ListFollowingPosts(context.Background(), "u1", 1)

	assert.NoError(t, err)
	assert.Empty(t, posts)
	postRepo.AssertExpectations(t)
	followRepo.AssertExpectations(t)
}
