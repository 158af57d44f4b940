package services

import (
	"context"
	"time"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/internal/repository/interfaces"
	"github.com/cinematica/cinematica-api/internal/storage"
	"github.com/cinematica/cinematica-api/pkg/logger"
	"github.com/cinematica/cinematica-api/pkg/queue"
)

type ReplyService struct {
	replyRepo     interfaces.ReplyRepository
	postRepo      interfaces.PostRepository
	likeRepo      interfaces.LikeRepository
	userRepo      interfaces.UserRepository
	producer      EventPublisher
	serveLocation string
	logger        *logger.Logger
}

func NewReplyService(
	replyRepo interfaces.ReplyRepository,
	postRepo interfaces.PostRepository,
	likeRepo interfaces.LikeRepository,
	userRepo interfaces.UserRepository,
	producer EventPublisher,
	serveLocation string,
	logger *logger.Logger,
) *ReplyService {
	return &ReplyService{
		replyRepo:     replyRepo,
		postRepo:      postRepo,
		likeRepo:      likeRepo,
		userRepo:      userRepo,
		producer:      producer,
		serveLocation: serveLocation,
		logger:        logger,
	}
}

type CreateReplyRequest struct {
	UserID string `json:"user_id" binding:"required"`
	PostID int64  `json:"post_id" binding:"required"`
	Body   string `json:"body" binding:"required,max=2000"`
}

func (s *ReplyService) GetReply(ctx context.Context, replyID int64, viewerID string) (*models.ReplyDetails, error) {
	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load reply", err)
	}
	if reply == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "reply not found")
	}
	return s.buildReplyDetails(ctx, reply, viewerID)
}

// ListReplies pages through a post's replies, newest first.
func (s *ReplyService) ListReplies(ctx context.Context, postID int64, page int, viewerID string) ([]*models.ReplyDetails, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load post", err)
	}
	if post == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "post not found")
	}

	replies, err := s.replyRepo.ListByPost(ctx, postID, pageOffset(page), PageSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list replies", err)
	}

	details := make([]*models.ReplyDetails, 0, len(replies))
	for _, reply := range replies {
		d, err := s.buildReplyDetails(ctx, reply, viewerID)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *ReplyService) CreateReply(ctx context.Context, req *CreateReplyRequest) (*models.ReplyDetails, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load post", err)
	}
	if post == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "post not found")
	}

	author, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	if author == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}

	reply := &models.Reply{
		PostID:    req.PostID,
		UserID:    req.UserID,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create reply", err)
	}

	s.publish(ctx, req.UserID, queue.Event{
		Type:      queue.EventReplyCreated,
		Timestamp: reply.CreatedAt,
		Data:      queue.PostEventData{PostID: req.PostID, UserID: req.UserID},
	})

	reply.User = *author
	return s.buildReplyDetails(ctx, reply, req.UserID)
}

// DeleteReply removes the reply and its likes. Only the author may delete.
func (s *ReplyService) DeleteReply(ctx context.Context, replyID int64, callerID string) error {
	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to load reply", err)
	}
	if reply == nil {
		return apperrors.New(apperrors.KindNotFound, "reply not found")
	}
	if reply.UserID != callerID {
		return apperrors.New(apperrors.KindUnauthorized, "only the author can delete a reply")
	}

	if err := s.replyRepo.DeleteCascade(ctx, replyID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete reply", err)
	}

	s.publish(ctx, callerID, queue.Event{
		Type:      queue.EventReplyDeleted,
		Timestamp: time.Now().UTC(),
		Data:      queue.PostEventData{PostID: reply.PostID, UserID: callerID},
	})
	return nil
}

func (s *ReplyService) ToggleReplyLike(ctx context.Context, replyID int64, userID string) (bool, error) {
	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindInternal, "failed to load reply", err)
	}
	if reply == nil {
		return false, apperrors.New(apperrors.KindNotFound, "reply not found")
	}

	existing, err := s.likeRepo.GetForReply(ctx, replyID, userID)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindInternal, "failed to check like status", err)
	}

	liked := false
	if existing != nil {
		if err := s.likeRepo.Delete(ctx, existing.LikeID); err != nil {
			return false, apperrors.Wrap(apperrors.KindInternal, "failed to remove like", err)
		}
	} else {
		like := &models.Like{UserID: userID, ReplyID: &replyID}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			return false, apperrors.Wrap(apperrors.KindInternal, "failed to create like", err)
		}
		liked = true
	}

	s.publish(ctx, userID, queue.Event{
		Type:      queue.EventLikeToggled,
		Timestamp: time.Now().UTC(),
		Data:      queue.LikeEventData{UserID: userID, ReplyID: &replyID, Liked: liked},
	})
	return liked, nil
}

func (s *ReplyService) buildReplyDetails(ctx context.Context, reply *models.Reply, viewerID string) (*models.ReplyDetails, error) {
	likesCount, err := s.likeRepo.CountForReply(ctx, reply.ReplyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to count likes", err)
	}

	youLike := false
	if viewerID != "" {
		youLike, err = s.likeRepo.IsReplyLiked(ctx, reply.ReplyID, viewerID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to check like status", err)
		}
	}

	return &models.ReplyDetails{
		Reply:          *reply,
		UserName:       reply.User.UserName,
		ProfilePicture: serveURL(s.serveLocation, storage.UserFiles, reply.User.ProfilePicture),
		LikesCount:     likesCount,
		YouLike:        youLike,
	}, nil
}

func (s *ReplyService) publish(ctx context.Context, key string, event queue.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, key, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish engagement event")
	}
}
