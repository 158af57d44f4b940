package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cinematica/cinematica-api/internal/middleware"
)

// SetupRoutes wires every endpoint onto the router. Reads are public; every
// mutation and the personalized feed require a verified bearer token, then the
// per-request token-subject check inside the handler.
func SetupRoutes(
	router *gin.Engine,
	auth *middleware.Authenticator,
	authHandler *AuthHandler,
	postHandler *PostHandler,
	replyHandler *ReplyHandler,
	userHandler *UserHandler,
	movieHandler *MovieHandler,
) {
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/confirm-registration", authHandler.ConfirmRegistration)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-access-token", authHandler.RefreshAccessToken)
		authRoutes.POST("/resend-confirmation-code", authHandler.ResendConfirmationCode)
		authRoutes.POST("/request-password-reset", authHandler.RequestPasswordReset)
		authRoutes.POST("/reset-password", authHandler.ResetPassword)
	}

	posts := router.Group("/posts")
	{
		posts.GET("/:postId", postHandler.GetPost)
		posts.GET("/:postId/replies/:page", postHandler.ListReplies)
		posts.GET("/all/:page", postHandler.ListPosts)
		posts.GET("/search/:movieId/:page", postHandler.ListPostsByMovie)

		protected := posts.Group("", auth.RequireAuth())
		{
			protected.GET("/following/:userId/:page", postHandler.ListFollowingPosts)
			protected.POST("", postHandler.CreatePost)
			protected.DELETE("/:postId", postHandler.DeletePost)
			protected.PUT("/like/:userId/:postId", postHandler.TogglePostLike)
		}
	}

	replies := router.Group("/replies")
	{
		replies.GET("/:replyId", replyHandler.GetReply)

		protected := replies.Group("", auth.RequireAuth())
		{
			protected.POST("", replyHandler.CreateReply)
			protected.DELETE("/:replyId", replyHandler.DeleteReply)
			protected.PUT("/like/:userId/:replyId", replyHandler.ToggleReplyLike)
		}
	}

	users := router.Group("/users")
	{
		users.GET("/:userId", userHandler.GetUser)
		users.GET("/followers/:userId", userHandler.GetFollowers)
		users.GET("/following/:userId", userHandler.GetFollowing)
		users.GET("/movies/:userId", userHandler.GetUserMovies)
		users.GET("/posts/:userId/:page", userHandler.GetUserPosts)
		users.GET("/replies/:userId", userHandler.GetUserReplies)
		users.GET("/likes/:userId", userHandler.GetUserLikes)

		protected := users.Group("", auth.RequireAuth())
		{
			protected.POST("/follow", userHandler.Follow)
			protected.POST("/unfollow", userHandler.Unfollow)
			protected.POST("/add-movie", userHandler.AddMovie)
			protected.POST("/remove-movie", userHandler.RemoveMovie)
			protected.POST("/set-profile-picture", userHandler.SetProfilePicture)
			protected.POST("/set-cover-picture", userHandler.SetCoverPicture)
		}
	}

	movies := router.Group("/movies")
	{
		movies.GET("/:movieId", movieHandler.GetMovie)
		movies.GET("/search/:term", movieHandler.SearchMovies)
	}
}
