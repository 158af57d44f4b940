package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/middleware"
	"github.com/cinematica/cinematica-api/internal/services"
)

type PostHandler struct {
	postService  *services.PostService
	replyService *services.ReplyService
}

func NewPostHandler(postService *services.PostService, replyService *services.ReplyService) *PostHandler {
	return &PostHandler{
		postService:  postService,
		replyService: replyService,
	}
}

// GetPost handles GET /posts/:postId?userId=
// The optional userId query names the viewer for the you-like flag.
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := paramInt64(c, "postId")
	if !ok {
		return
	}

	details, err := h.postService.GetPost(c.Request.Context(), postID, c.Query("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListPosts handles GET /posts/all/:page?userId=
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, ok := paramPage(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), page, c.Query("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListFollowingPosts handles GET /posts/following/:userId/:page
func (h *PostHandler) ListFollowingPosts(c *gin.Context) {
	userID := c.Param("userId")
	if !requireTokenSub(c, userID) {
		return
	}
	page, ok := paramPage(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListFollowingPosts(c.Request.Context(), userID, page)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListPostsByMovie handles GET /posts/search/:movieId/:page?userId=
func (h *PostHandler) ListPostsByMovie(c *gin.Context) {
	movieID, ok := paramInt64(c, "movieId")
	if !ok {
		return
	}
	page, ok := paramPage(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListPostsByMovie(c.Request.Context(), movieID, page, c.Query("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListReplies handles GET /posts/:postId/replies/:page?userId=
func (h *PostHandler) ListReplies(c *gin.Context) {
	postID, ok := paramInt64(c, "postId")
	if !ok {
		return
	}
	page, ok := paramPage(c)
	if !ok {
		return
	}

	replies, err := h.replyService.ListReplies(c.Request.Context(), postID, page, c.Query("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

// CreatePost handles POST /posts as a multipart form. The image part is
// optional.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req services.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !requireTokenSub(c, req.UserID) {
		return
	}

	image, err := c.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		badRequest(c, err)
		return
	}

	details, err := h.postService.CreatePost(c.Request.Context(), &req, image)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

// DeletePost handles DELETE /posts/:postId. The caller is the authenticated
// token subject.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := paramInt64(c, "postId")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), postID, middleware.GetUserID(c)); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TogglePostLike handles PUT /posts/like/:userId/:postId
func (h *PostHandler) TogglePostLike(c *gin.Context) {
	userID := c.Param("userId")
	if !requireTokenSub(c, userID) {
		return
	}
	postID, ok := paramInt64(c, "postId")
	if !ok {
		return
	}

	if _, err := h.postService.TogglePostLike(c.Request.Context(), postID, userID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
