package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/services"
)

// AuthHandler proxies account operations to the identity provider.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.Register(c.Request.Context(), &req); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "confirmation code sent"})
}

// ConfirmRegistration handles POST /auth/confirm-registration
func (h *AuthHandler) ConfirmRegistration(c *gin.Context) {
	var req services.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.ConfirmRegistration(c.Request.Context(), &req); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration confirmed"})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RefreshAccessToken handles POST /auth/refresh-access-token
func (h *AuthHandler) RefreshAccessToken(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authService.RefreshAccessToken(c.Request.Context(), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ResendConfirmationCode handles POST /auth/resend-confirmation-code
func (h *AuthHandler) ResendConfirmationCode(c *gin.Context) {
	var req services.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.ResendConfirmationCode(c.Request.Context(), &req); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "confirmation code sent"})
}

// RequestPasswordReset handles POST /auth/request-password-reset
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req services.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), &req); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset code sent"})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}
