package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// newTestFetcher 组装指向两个假服务器的完整抓取管线
func newTestFetcher(t *testing.T, omdbHandler, tmdbHandler http.HandlerFunc) *MovieFetcher {
	t.Helper()

	omdbSrv := httptest.NewServer(omdbHandler)
	t.Cleanup(omdbSrv.Close)
	tmdbSrv := httptest.NewServer(tmdbHandler)
	t.Cleanup(tmdbSrv.Close)

	omdb := NewOMDbService("omdb-key")
	omdb.baseURL = omdbSrv.URL

	tmdb := NewTMDbService("tmdb-key")
	tmdb.baseURL = tmdbSrv.URL
	tmdb.limiter = rate.NewLimiter(rate.Inf, 1)

	return NewMovieFetcher(omdb, tmdb)
}

func TestPipelineFullEnhancement(t *testing.T) {
	f := newTestFetcher(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(matrixJSON))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"movie_results": [
					{"id": 603, "backdrop_path": "/bd.jpg", "poster_path": "/ps.jpg", "vote_average": 8.2, "vote_count": 26000}
				]
			}`))
		},
	)

	movie, err := f.FetchByIMDbID(context.Background(), "tt0133093")
	require.NoError(t, err)

	// OMDb 字段
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, 1999, movie.Year)
	assert.Equal(t, 8.7, movie.Rating)
	assert.Equal(t, 2018732, movie.VoteCount)
	// TMDb 叠加字段
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/bd.jpg", movie.BackdropURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/ps.jpg", movie.PosterURL)
	assert.Equal(t, 8.2, movie.TMDbRating)
}

func TestPipelineEnhancementFailureDegrades(t *testing.T) {
	f := newTestFetcher(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(matrixJSON))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	)

	// 增强失败不影响主记录：保留 OMDb 海报，无背景图
	movie, err := f.FetchByIMDbID(context.Background(), "tt0133093")
	require.NoError(t, err)

	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, "https://m.media-amazon.com/images/M/matrix.jpg", movie.PosterURL)
	assert.Empty(t, movie.BackdropURL)
	assert.Equal(t, 0.0, movie.TMDbRating)
}

func TestPipelinePrimaryFailureNoRecord(t *testing.T) {
	tmdbCalled := false
	f := newTestFetcher(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			tmdbCalled = true
		},
	)

	// 主抓取失败：无记录，也不会触发增强
	movie, err := f.FetchByIMDbID(context.Background(), "tt9999999")
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.False(t, tmdbCalled)
}

func TestPipelineFetchByTitle(t *testing.T) {
	f := newTestFetcher(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "The Matrix", r.URL.Query().Get("t"))
			w.Write([]byte(matrixJSON))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"movie_results": []}`))
		},
	)

	movie, err := f.FetchByTitle(context.Background(), "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, "tt0133093", movie.IMDbID)
}
