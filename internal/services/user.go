package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/identity"
	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/internal/repository/interfaces"
	"github.com/cinematica/cinematica-api/internal/storage"
	"github.com/cinematica/cinematica-api/pkg/logger"
	"github.com/cinematica/cinematica-api/pkg/queue"
)

// AccountResolver is satisfied by identity.Client.
type AccountResolver interface {
	GetAccountBySub(ctx context.Context, sub string) (*identity.Account, error)
}

// UserService owns profiles, the follow graph and per-user activity listings.
// Display names live in the identity provider; everything else is local.
type UserService struct {
	userRepo      interfaces.UserRepository
	followRepo    interfaces.FollowRepository
	replyRepo     interfaces.ReplyRepository
	likeRepo      interfaces.LikeRepository
	movieRepo     interfaces.MovieRepository
	accounts      AccountResolver
	files         storage.FileStorage
	producer      EventPublisher
	serveLocation string
	logger        *logger.Logger
}

func NewUserService(
	userRepo interfaces.UserRepository,
	followRepo interfaces.FollowRepository,
	replyRepo interfaces.ReplyRepository,
	likeRepo interfaces.LikeRepository,
	movieRepo interfaces.MovieRepository,
	accounts AccountResolver,
	files storage.FileStorage,
	producer EventPublisher,
	serveLocation string,
	logger *logger.Logger,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		followRepo:    followRepo,
		replyRepo:     replyRepo,
		likeRepo:      likeRepo,
		movieRepo:     movieRepo,
		accounts:      accounts,
		files:         files,
		producer:      producer,
		serveLocation: serveLocation,
		logger:        logger,
	}
}

// GetUser assembles the profile view. The identity provider is the source of
// truth for the display name; when it is unreachable the locally cached name
// is served instead of failing the whole profile.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}

	userName := user.UserName
	if s.accounts != nil {
		account, err := s.accounts.GetAccountBySub(ctx, userID)
		if err != nil {
			s.logger.WithError(err).Warn("Identity provider lookup failed, serving cached name")
		} else {
			userName = account.Username
		}
	}

	followerCount, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to count followers", err)
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to count following", err)
	}

	return &models.UserProfile{
		UserID:         user.UserID,
		UserName:       userName,
		ProfilePicture: serveURL(s.serveLocation, storage.UserFiles, user.ProfilePicture),
		CoverPicture:   serveURL(s.serveLocation, storage.UserFiles, user.CoverPicture),
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

// Follow adds a follow edge. Following the same user twice is a conflict,
// not a silent no-op.
func (s *UserService) Follow(ctx context.Context, userID, followerID string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, followerID); err != nil {
		return err
	}

	err := s.followRepo.Create(ctx, &models.UserFollower{UserID: userID, FollowerID: followerID})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.KindConflict, "already following this user")
		}
		return apperrors.Wrap(apperrors.KindInternal, "failed to follow user", err)
	}

	s.publish(ctx, followerID, queue.Event{
		Type:      queue.EventUserFollowed,
		Timestamp: time.Now().UTC(),
		Data:      queue.FollowEventData{UserID: userID, FollowerID: followerID, Followed: true},
	})
	return nil
}

func (s *UserService) Unfollow(ctx context.Context, userID, followerID string) error {
	if err := s.followRepo.Delete(ctx, userID, followerID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to unfollow user", err)
	}
	return nil
}

func (s *UserService) GetFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	followers, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list followers", err)
	}
	if followers == nil {
		followers = []models.FollowEntry{}
	}
	return followers, nil
}

func (s *UserService) GetFollowing(ctx context.Context, followerID string) ([]models.FollowEntry, error) {
	if err := s.requireUser(ctx, followerID); err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowing(ctx, followerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list following", err)
	}
	if following == nil {
		following = []models.FollowEntry{}
	}
	return following, nil
}

// AddMovie adds a movie to the user's favorites. Adding the same movie twice
// is a conflict.
func (s *UserService) AddMovie(ctx context.Context, userID string, movieID int64) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.AddMovie(ctx, userID, movieID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.KindConflict, "movie already in list")
		}
		return apperrors.Wrap(apperrors.KindInternal, "failed to add movie", err)
	}
	return nil
}

func (s *UserService) RemoveMovie(ctx context.Context, userID string, movieID int64) error {
	if err := s.userRepo.RemoveMovie(ctx, userID, movieID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove movie", err)
	}
	return nil
}

// GetUserMovies returns the user's favorite movies as trimmed references.
// Only movies already present in the metadata cache can be listed.
func (s *UserService) GetUserMovies(ctx context.Context, userID string) ([]models.SimpleMovie, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.userRepo.ListMovieIDs(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list movies", err)
	}
	if len(ids) == 0 {
		return []models.SimpleMovie{}, nil
	}

	movies, err := s.movieRepo.ListSimpleByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load movies", err)
	}
	for i := range movies {
		movies[i].Poster = serveURL(s.serveLocation, storage.MovieFiles, movies[i].Poster)
	}
	return movies, nil
}

// GetUserReplies lists the ids of every reply the user has written.
func (s *UserService) GetUserReplies(ctx context.Context, userID string) ([]int64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.replyRepo.ListIDsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list replies", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// GetUserLikes lists the targets of every like the user has placed.
func (s *UserService) GetUserLikes(ctx context.Context, userID string) ([]models.LikeRef, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	refs, err := s.likeRepo.ListRefsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list likes", err)
	}
	if refs == nil {
		refs = []models.LikeRef{}
	}
	return refs, nil
}

// SetProfilePicture stores the upload and points the profile at the new file.
// The previous file is left in place; storage is append-only.
func (s *UserService) SetProfilePicture(ctx context.Context, userID string, file *multipart.FileHeader) (*string, error) {
	return s.setPicture(ctx, userID, file, func(u *models.User, name string) {
		u.ProfilePicture = &name
	})
}

func (s *UserService) SetCoverPicture(ctx context.Context, userID string, file *multipart.FileHeader) (*string, error) {
	return s.setPicture(ctx, userID, file, func(u *models.User, name string) {
		u.CoverPicture = &name
	})
}

func (s *UserService) setPicture(ctx context.Context, userID string, file *multipart.FileHeader, assign func(*models.User, string)) (*string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}

	fileName, err := s.files.Upload(ctx, file, storage.UserFiles)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to store image", err)
	}

	assign(user, fileName)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update user", err)
	}
	return serveURL(s.serveLocation, storage.UserFiles, &fileName), nil
}

func (s *UserService) requireUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	if user == nil {
		return apperrors.New(apperrors.KindNotFound, "user not found")
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, key string, event queue.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, key, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish engagement event")
	}
}
