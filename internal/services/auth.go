package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/identity"
	"github.com/cinematica/cinematica-api/internal/models"
	"github.com/cinematica/cinematica-api/internal/repository/interfaces"
	"github.com/cinematica/cinematica-api/pkg/logger"
)

// IdentityProvider is satisfied by identity.Client.
type IdentityProvider interface {
	Register(ctx context.Context, username, password, email string) error
	ConfirmRegistration(ctx context.Context, username, code string) (*identity.Account, error)
	Login(ctx context.Context, username, password string) (*identity.AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*identity.AuthResult, error)
	ResendConfirmationCode(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, password, code string) error
}

// AuthService proxies account operations to the identity provider. The only
// local side effect is creating the user row once registration is confirmed.
type AuthService struct {
	provider IdentityProvider
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewAuthService(provider IdentityProvider, userRepo interfaces.UserRepository, logger *logger.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		userRepo: userRepo,
		logger:   logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
}

type ConfirmRequest struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Code     string `json:"code" binding:"required"`
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) error {
	return s.provider.Register(ctx, req.Username, req.Password, req.Email)
}

// ConfirmRegistration confirms the code upstream and materializes the local
// user row keyed by the account's subject.
func (s *AuthService) ConfirmRegistration(ctx context.Context, req *ConfirmRequest) error {
	account, err := s.provider.ConfirmRegistration(ctx, req.Username, req.Code)
	if err != nil {
		return err
	}

	user := &models.User{
		UserID:   account.UserID,
		UserName: account.Username,
	}
	// A retried confirmation may find the row already there.
	if err := s.userRepo.Create(ctx, user); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.KindInternal, "failed to create user", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  account.UserID,
		"username": account.Username,
	}).Info("User registered")
	return nil
}

// Login authenticates upstream. A confirmed account without a local row gets
// one on first login, covering accounts confirmed out of band.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*identity.AuthResult, error) {
	result, err := s.provider.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, result.UserID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load user", err)
	}
	if user == nil {
		user = &models.User{UserID: result.UserID, UserName: req.Username}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create user", err)
		}
	}
	return result, nil
}

func (s *AuthService) RefreshAccessToken(ctx context.Context, req *RefreshRequest) (*identity.AuthResult, error) {
	return s.provider.RefreshAccessToken(ctx, req.RefreshToken)
}

func (s *AuthService) ResendConfirmationCode(ctx context.Context, req *EmailRequest) error {
	return s.provider.ResendConfirmationCode(ctx, req.Email)
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, req *EmailRequest) error {
	return s.provider.RequestPasswordReset(ctx, req.Email)
}

func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	return s.provider.ResetPassword(ctx, req.Email, req.Password, req.Code)
}
