package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/middleware"
	"github.com/cinematica/cinematica-api/internal/services"
)

type ReplyHandler struct {
	replyService *services.ReplyService
}

func NewReplyHandler(replyService *services.ReplyService) *ReplyHandler {
	return &ReplyHandler{replyService: replyService}
}

// GetReply handles GET /replies/:replyId?userId=
func (h *ReplyHandler) GetReply(c *gin.Context) {
	replyID, ok := paramInt64(c, "replyId")
	if !ok {
		return
	}

	details, err := h.replyService.GetReply(c.Request.Context(), replyID, c.Query("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateReply handles POST /replies
func (h *ReplyHandler) CreateReply(c *gin.Context) {
	var req services.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !requireTokenSub(c, req.UserID) {
		return
	}

	details, err := h.replyService.CreateReply(c.Request.Context(), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

// DeleteReply handles DELETE /replies/:replyId
func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	replyID, ok := paramInt64(c, "replyId")
	if !ok {
		return
	}

	if err := h.replyService.DeleteReply(c.Request.Context(), replyID, middleware.GetUserID(c)); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleReplyLike handles PUT /replies/like/:userId/:replyId
func (h *ReplyHandler) ToggleReplyLike(c *gin.Context) {
	userID := c.Param("userId")
	if !requireTokenSub(c, userID) {
		return
	}
	replyID, ok := paramInt64(c, "replyId")
	if !ok {
		return
	}

	if _, err := h.replyService.ToggleReplyLike(c.Request.Context(), replyID, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
