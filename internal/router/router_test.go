package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/user/rapidocine/internal/config"
	"github.com/user/rapidocine/internal/handler"
	"github.com/user/rapidocine/internal/repository"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewHandler(&repository.Repositories{}, config.Load())
	RegisterRoutes(r, h)

	type route struct{ method, path string }
	registered := map[route]bool{}
	for _, ri := range r.Routes() {
		registered[route{ri.Method, ri.Path}] = true
	}

	want := []route{
		{"GET", "/health"},
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/login"},
		{"POST", "/api/auth/logout"},
		{"GET", "/api/users"},
		{"GET", "/api/users/me"},
		{"GET", "/api/users/username/:username"},
		{"GET", "/api/users/:id"},
		{"GET", "/api/movies"},
		{"GET", "/api/movies/search"},
		{"GET", "/api/movies/suggest"},
		{"GET", "/api/movies/imdb/:imdb_id"},
		{"GET", "/api/movies/imdb/:imdb_id/rating"},
		{"GET", "/api/movies/:id"},
		{"POST", "/api/movies"},
		{"POST", "/api/movies/import"},
		{"PUT", "/api/movies/:id"},
		{"DELETE", "/api/movies/:id"},
		{"GET", "/api/ratings"},
		{"GET", "/api/ratings/movie/:movie_id"},
		{"GET", "/api/ratings/movie/:movie_id/average"},
		{"GET", "/api/ratings/:id"},
		{"POST", "/api/ratings"},
		{"GET", "/api/ratings/me"},
		{"GET", "/api/ratings/me/top"},
		{"PUT", "/api/ratings/:id"},
		{"DELETE", "/api/ratings/:id"},
		{"GET", "/api/comments"},
		{"GET", "/api/comments/movie/:movie_id"},
		{"POST", "/api/comments"},
		{"GET", "/api/comments/me"},
		{"PUT", "/api/comments/:id"},
		{"DELETE", "/api/comments/:id"},
		{"POST", "/api/watchlist"},
		{"GET", "/api/watchlist"},
		{"GET", "/api/watchlist/movie/:movie_id"},
		{"GET", "/api/watchlist/:id"},
		{"PUT", "/api/watchlist/:id"},
		{"DELETE", "/api/watchlist/:id"},
	}
	for _, w := range want {
		assert.True(t, registered[w], "缺少路由 %s %s", w.method, w.path)
	}
}
