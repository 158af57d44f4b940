package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	postService *services.PostService
}

func NewUserHandler(userService *services.UserService, postService *services.PostService) *UserHandler {
	return &UserHandler{
		userService: userService,
		postService: postService,
	}
}

type followRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	FollowerID string `json:"follower_id" binding:"required"`
}

type userMovieRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	MovieID int64  `json:"movie_id" binding:"required"`
}

// GetUser handles GET /users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.userService.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Follow handles POST /users/follow. The token subject must be the follower.
func (h *UserHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !requireTokenSub(c, req.FollowerID) {
		return
	}

	if err := h.userService.Follow(c.Request.Context(), req.UserID, req.FollowerID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unfollow handles POST /users/unfollow
func (h *UserHandler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !requireTokenSub(c, req.FollowerID) {
		return
	}

	if err := h.userService.Unfollow(c.Request.Context(), req.UserID, req.FollowerID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFollowers handles GET /users/followers/:userId
func (h *UserHandler) GetFollowers(c *gin.Context) {
	followers, err := h.userService.GetFollowers(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

// GetFollowing handles GET /users/following/:userId
func (h *UserHandler) GetFollowing(c *gin.Context) {
	following, err := h.userService.GetFollowing(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, following)
}

// AddMovie handles POST /users/add-movie
func (h *UserHandler) AddMovie(c *gin.Context) {
	var req userMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !requireTokenSub(c, req.UserID) {
		return
	}

	if err := h.userService.AddMovie(c.Request.Context(), req.UserID, req.MovieID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveMovie handles POST /users/remove-movie
func (h *UserHandler) RemoveMovie(c *gin.Context) {
	var req userMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !requireTokenSub(c, req.UserID) {
		return
	}

	if err := h.userService.RemoveMovie(c.Request.Context(), req.UserID, req.MovieID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetUserMovies handles GET /users/movies/:userId
func (h *UserHandler) GetUserMovies(c *gin.Context) {
	movies, err := h.userService.GetUserMovies(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetUserPosts handles GET /users/posts/:userId/:page?viewerId=
func (h *UserHandler) GetUserPosts(c *gin.Context) {
	page, ok := paramPage(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListPostsByUser(c.Request.Context(), c.Param("userId"), page, c.Query("viewerId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetUserReplies handles GET /users/replies/:userId
func (h *UserHandler) GetUserReplies(c *gin.Context) {
	ids, err := h.userService.GetUserReplies(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// GetUserLikes handles GET /users/likes/:userId
func (h *UserHandler) GetUserLikes(c *gin.Context) {
	refs, err := h.userService.GetUserLikes(c.Request.Context(), c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// SetProfilePicture handles POST /users/set-profile-picture as multipart with
// a user_id field and an image part.
func (h *UserHandler) SetProfilePicture(c *gin.Context) {
	h.setPicture(c, h.userService.SetProfilePicture)
}

// SetCoverPicture handles POST /users/set-cover-picture
func (h *UserHandler) SetCoverPicture(c *gin.Context) {
	h.setPicture(c, h.userService.SetCoverPicture)
}

func (h *UserHandler) setPicture(c *gin.Context, set func(context.Context, string, *multipart.FileHeader) (*string, error)) {
	userID := c.PostForm("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Code:    apperrors.KindValidationFailed.String(),
			Message: "user_id is required",
		})
		return
	}
	if !requireTokenSub(c, userID) {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, err)
		return
	}

	url, err := set(c.Request.Context(), userID, file)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
