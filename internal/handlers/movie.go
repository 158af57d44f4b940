package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/services"
)

type MovieHandler struct {
	movieService *services.MovieService
}

func NewMovieHandler(movieService *services.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// GetMovie handles GET /movies/:movieId
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movieID, ok := paramInt64(c, "movieId")
	if !ok {
		return
	}

	details, err := h.movieService.GetMovie(c.Request.Context(), movieID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// SearchMovies handles GET /movies/search/:term
func (h *MovieHandler) SearchMovies(c *gin.Context) {
	movies, err := h.movieService.SearchMovies(c.Request.Context(), c.Param("term"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}
