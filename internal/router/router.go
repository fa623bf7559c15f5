package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/rapidocine/internal/handler"
	"github.com/user/rapidocine/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ==================== 认证 ====================
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	// ==================== 用户 ====================
	users := api.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/me", middleware.RequireAuth(h.Config.AppSecret), h.CurrentUser)
		users.PUT("/me", middleware.RequireAuth(h.Config.AppSecret), h.UpdateUser)
		users.DELETE("/me", middleware.RequireAuth(h.Config.AppSecret), h.DeleteUser)
		users.GET("/username/:username", h.GetUserByUsername)
		users.GET("/:id", h.GetUser)
	}

	// ==================== 电影 ====================
	movies := api.Group("/movies")
	movies.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		movies.GET("", h.ListMovies)
		movies.GET("/search", h.SearchMovies)
		movies.GET("/suggest", h.SuggestMovies)
		movies.GET("/imdb/:imdb_id", h.GetMovieByIMDbID)
		movies.GET("/imdb/:imdb_id/rating", h.MovieExternalRating)
		movies.GET("/:id", h.GetMovie)
	}

	moviesAuth := api.Group("/movies")
	moviesAuth.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		moviesAuth.POST("", h.CreateMovie)
		moviesAuth.POST("/import", h.ImportMovie)
		moviesAuth.PUT("/:id", h.UpdateMovie)
		moviesAuth.DELETE("/:id", h.DeleteMovie)
	}

	// ==================== 评分 ====================
	ratings := api.Group("/ratings")
	{
		ratings.GET("", h.ListRatings)
		ratings.GET("/movie/:movie_id", h.ListMovieRatings)
		ratings.GET("/movie/:movie_id/average", h.MovieAverageRating)
		ratings.GET("/:id", h.GetRating)
	}

	ratingsAuth := api.Group("/ratings")
	ratingsAuth.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		ratingsAuth.POST("", h.RateMovie)
		ratingsAuth.GET("/me", h.ListMyRatings)
		ratingsAuth.GET("/me/top", h.TopRatedByUser)
		ratingsAuth.PUT("/:id", h.UpdateRating)
		ratingsAuth.DELETE("/:id", h.DeleteRating)
	}

	// ==================== 评论 ====================
	comments := api.Group("/comments")
	{
		comments.GET("", h.ListComments)
		comments.GET("/movie/:movie_id", h.ListMovieComments)
	}

	commentsAuth := api.Group("/comments")
	commentsAuth.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		commentsAuth.POST("", h.CreateComment)
		commentsAuth.GET("/me", h.ListMyComments)
		commentsAuth.PUT("/:id", h.UpdateComment)
		commentsAuth.DELETE("/:id", h.DeleteComment)
	}

	// ==================== 待看清单（全部需要登录）====================
	watchlist := api.Group("/watchlist")
	watchlist.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		watchlist.POST("", h.AddToWatchlist)
		watchlist.GET("", h.ListMyWatchlist)
		watchlist.GET("/movie/:movie_id", h.ListMovieWatchlist)
		watchlist.GET("/:id", h.GetWatchlistItem)
		watchlist.PUT("/:id", h.UpdateWatchlistItem)
		watchlist.DELETE("/:id", h.RemoveFromWatchlist)
	}
}
