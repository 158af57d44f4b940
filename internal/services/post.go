package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/internal/repository/interfaces"
	"github.com/cinematica/cinematica-api/internal/storage"
	"github.com/cinematica/cinematica-api/pkg/logger"
	"github.com/cinematica/cinematica-api/pkg/queue"
)

// PostService assembles the denormalized post views and owns every post
// mutation. All multi-row writes happen inside repository transactions.
type PostService struct {
	postRepo      interfaces.PostRepository
	replyRepo     interfaces.ReplyRepository
	likeRepo      interfaces.LikeRepository
	followRepo    interfaces.FollowRepository
	movieRepo     interfaces.MovieRepository
	userRepo      interfaces.UserRepository
	files         storage.FileStorage
	producer      EventPublisher
	serveLocation string
	logger        *logger.Logger
}

func NewPostService(
	postRepo interfaces.PostRepository,
	replyRepo interfaces.ReplyRepository,
	likeRepo interfaces.LikeRepository,
	followRepo interfaces.FollowRepository,
	movieRepo interfaces.MovieRepository,
	userRepo interfaces.UserRepository,
	files storage.FileStorage,
	producer EventPublisher,
	serveLocation string,
	logger *logger.Logger,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		replyRepo:     replyRepo,
		likeRepo:      likeRepo,
		followRepo:    followRepo,
		movieRepo:     movieRepo,
		userRepo:      userRepo,
		files:         files,
		producer:      producer,
		serveLocation: serveLocation,
		logger:        logger,
	}
}

type CreatePostRequest struct {
	UserID    string  `form:"user_id" binding:"required"`
	Body      string  `form:"body" binding:"required,max=2000"`
	IsSpoiler bool    `form:"is_spoiler"`
	MovieIDs  []int64 `form:"movie_ids"`
}

// GetPost returns the aggregated view of one post. With no viewer the
// you-like flag is always false.
func (s *PostService) GetPost(ctx context.Context, postID int64, viewerID string) (*models.PostDetails, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load post", err)
	}
	if post == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "post not found")
	}
	return s.buildPostDetails(ctx, post, viewerID)
}

func (s *PostService) ListPosts(ctx context.Context, page int, viewerID string) ([]*models.PostDetails, error) {
	posts, err := s.postRepo.List(ctx, pageOffset(page), PageSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list posts", err)
	}
	return s.buildPostDetailsList(ctx, posts, viewerID)
}

// ListFollowingPosts pages through posts authored by users the follower
// follows.
func (s *PostService) ListFollowingPosts(ctx context.Context, followerID string, page int) ([]*models.PostDetails, error) {
	followingIDs, err := s.followRepo.ListFollowingIDs(ctx, followerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load following", err)
	}

	posts, err := s.postRepo.ListByAuthors(ctx, followingIDs, pageOffset(page), PageSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list posts", err)
	}
	return s.buildPostDetailsList(ctx, posts, followerID)
}

func (s *PostService) ListPostsByMovie(ctx context.Context, movieID int64, page int, viewerID string) ([]*models.PostDetails, error) {
	posts, err := s.postRepo.ListByMovie(ctx, movieID, pageOffset(page), PageSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list posts", err)
	}
	return s.buildPostDetailsList(ctx, posts, viewerID)
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID string, page int, viewerID string) ([]*models.PostDetails, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID, pageOffset(page), PageSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list posts", err)
	}
	return s.buildPostDetailsList(ctx, posts, viewerID)
}

// CreatePost persists the post and its movie selections in one transaction.
// The image, when present, is uploaded first and only its generated filename
// is stored on the row.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest, image *multipart.FileHeader) (*models.PostDetails, error) {
	author, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	if author == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}

	post := &models.Post{
		UserID:    req.UserID,
		Body:      req.Body,
		IsSpoiler: req.IsSpoiler,
		CreatedAt: time.Now().UTC(),
	}

	if image != nil {
		fileName, err := s.files.Upload(ctx, image, storage.PostFiles)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to store image", err)
		}
		post.Image = &fileName
	}

	if err := s.postRepo.CreateWithMovies(ctx, post, req.MovieIDs); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create post", err)
	}

	s.publish(ctx, post.UserID, queue.Event{
		Type:      queue.EventPostCreated,
		Timestamp: post.CreatedAt,
		Data:      queue.PostEventData{PostID: post.PostID, UserID: post.UserID},
	})

	s.logger.WithFields(map[string]interface{}{
		"post_id": post.PostID,
		"user_id": post.UserID,
	}).Info("Post created")

	post.User = *author
	return s.buildPostDetails(ctx, post, req.UserID)
}

// DeletePost removes the post and every row referencing it. Only the author
// may delete; the cascade runs in a single transaction so no orphans survive
// a partial failure.
func (s *PostService) DeletePost(ctx context.Context, postID int64, callerID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to load post", err)
	}
	if post == nil {
		return apperrors.New(apperrors.KindNotFound, "post not found")
	}
	if post.UserID != callerID {
		return apperrors.New(apperrors.KindUnauthorized, "only the author can delete a post")
	}

	if err := s.postRepo.DeleteCascade(ctx, postID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete post", err)
	}

	s.publish(ctx, callerID, queue.Event{
		Type:      queue.EventPostDeleted,
		Timestamp: time.Now().UTC(),
		Data:      queue.PostEventData{PostID: postID, UserID: callerID},
	})
	return nil
}

// TogglePostLike flips the (post, user) like state and reports the new one.
// Two calls in a row always restore the original state.
func (s *PostService) TogglePostLike(ctx context.Context, postID int64, userID string) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindInternal, "failed to load post", err)
	}
	if post == nil {
		return false, apperrors.New(apperrors.KindNotFound, "post not found")
	}

	existing, err := s.likeRepo.GetForPost(ctx, postID, userID)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindInternal, "failed to check like status", err)
	}

	liked := false
	if existing != nil {
		if err := s.likeRepo.Delete(ctx, existing.LikeID); err != nil {
			return false, apperrors.Wrap(apperrors.KindInternal, "failed to remove like", err)
		}
	} else {
		like := &models.Like{UserID: userID, PostID: &postID}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			return false, apperrors.Wrap(apperrors.KindInternal, "failed to create like", err)
		}
		liked = true
	}

	s.publish(ctx, userID, queue.Event{
		Type:      queue.EventLikeToggled,
		Timestamp: time.Now().UTC(),
		Data:      queue.LikeEventData{UserID: userID, PostID: &postID, Liked: liked},
	})
	return liked, nil
}

func (s *PostService) buildPostDetailsList(ctx context.Context, posts []*models.Post, viewerID string) ([]*models.PostDetails, error) {
	details := make([]*models.PostDetails, 0, len(posts))
	for _, post := range posts {
		d, err := s.buildPostDetails(ctx, post, viewerID)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *PostService) buildPostDetails(ctx context.Context, post *models.Post, viewerID string) (*models.PostDetails, error) {
	commentsCount, err := s.replyRepo.CountByPost(ctx, post.PostID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to count replies", err)
	}

	likesCount, err := s.likeRepo.CountForPost(ctx, post.PostID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to count likes", err)
	}

	youLike := false
	if viewerID != "" {
		youLike, err = s.likeRepo.IsPostLiked(ctx, post.PostID, viewerID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to check like status", err)
		}
	}

	movies, err := s.movieRepo.ListSimpleByPost(ctx, post.PostID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load movies", err)
	}
	if movies == nil {
		movies = []models.SimpleMovie{}
	}

	shown := *post
	shown.Image = serveURL(s.serveLocation, storage.PostFiles, post.Image)

	return &models.PostDetails{
		Post:           shown,
		UserName:       post.User.UserName,
		ProfilePicture: serveURL(s.serveLocation, storage.UserFiles, post.User.ProfilePicture),
		LikesCount:     likesCount,
		CommentsCount:  commentsCount,
		YouLike:        youLike,
		Movies:         movies,
	}, nil
}

func (s *PostService) publish(ctx context.Context, key string, event queue.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, key, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish engagement event")
	}
}

// serveURL rewrites a stored filename into a fully qualified URL under the
// configured serve location. Nil stays nil.
func serveURL(serveLocation, subpath string, fileName *string) *string {
	if fileName == nil {
		return nil
	}
	full := serveLocation + subpath + "/" + *fileName
	return &full
}
