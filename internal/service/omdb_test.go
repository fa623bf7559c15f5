package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixJSON = `{
	"Response": "True",
	"Title": "The Matrix",
	"Year": "1999",
	"Released": "31 Mar 1999",
	"Runtime": "136 min",
	"Genre": "Action, Sci-Fi",
	"Director": "Lana Wachowski, Lilly Wachowski",
	"Actors": "Keanu Reeves, Laurence Fishburne",
	"Plot": "A computer hacker learns the true nature of his reality.",
	"Language": "English",
	"Country": "United States",
	"Awards": "Won 4 Oscars.",
	"Poster": "https://m.media-amazon.com/images/M/matrix.jpg",
	"imdbRating": "8.7",
	"imdbVotes": "2,018,732",
	"imdbID": "tt0133093"
}`

// newTestOMDb 返回指向假 OMDb 服务器的客户端
func newTestOMDb(t *testing.T, handler http.HandlerFunc) *OMDbService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewOMDbService("test-key")
	s.baseURL = srv.URL
	return s
}

func TestFetchByIMDbID(t *testing.T) {
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt0133093", r.URL.Query().Get("i"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "full", r.URL.Query().Get("plot"))
		w.Write([]byte(matrixJSON))
	})

	movie, err := s.FetchByIMDbID(context.Background(), "tt0133093")
	require.NoError(t, err)
	require.NotNil(t, movie)

	assert.Equal(t, "tt0133093", movie.IMDbID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, 1999, movie.Year)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, movie.Genres)
	assert.Equal(t, 8.7, movie.Rating)
	assert.Equal(t, 2018732, movie.VoteCount)
	assert.Equal(t, 136, movie.Runtime)
	assert.Equal(t, "https://m.media-amazon.com/images/M/matrix.jpg", movie.PosterURL)
	// OMDb 永远不提供背景图
	assert.Empty(t, movie.BackdropURL)
}

func TestFetchByIMDbIDNotFound(t *testing.T) {
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	})

	movie, err := s.FetchByIMDbID(context.Background(), "tt9999999")
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestFetchByIMDbIDServerError(t *testing.T) {
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	movie, err := s.FetchByIMDbID(context.Background(), "tt0133093")
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestFetchByIMDbIDEmptyInput(t *testing.T) {
	s := NewOMDbService("test-key")

	movie, err := s.FetchByIMDbID(context.Background(), "  ")
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestFetchByTitle(t *testing.T) {
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "The Matrix", r.URL.Query().Get("t"))
		w.Write([]byte(matrixJSON))
	})

	movie, err := s.FetchByTitle(context.Background(), "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, "tt0133093", movie.IMDbID)
}

func TestTransformDefaults(t *testing.T) {
	// 各字段缺失或为 N/A 时统一落到零值
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Response": "True",
			"Title": "Obscure Film",
			"Year": "N/A",
			"Runtime": "N/A",
			"Genre": "",
			"Poster": "N/A",
			"imdbRating": "N/A",
			"imdbVotes": "N/A",
			"imdbID": "tt0000001"
		}`))
	})

	movie, err := s.FetchByIMDbID(context.Background(), "tt0000001")
	require.NoError(t, err)

	assert.Equal(t, 0, movie.Year)
	assert.Equal(t, 0, movie.Runtime)
	assert.Equal(t, 0.0, movie.Rating)
	assert.Equal(t, 0, movie.VoteCount)
	assert.Empty(t, movie.PosterURL)
	assert.Empty(t, movie.Genres)
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1999", 1999},
		{"1999–2001", 1999}, // 剧集年份区间只取起始年
		{"N/A", 0},
		{"", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseYear(tc.in), "parseYear(%q)", tc.in)
	}
}

func TestParseVotes(t *testing.T) {
	assert.Equal(t, 2018732, parseVotes("2,018,732"))
	assert.Equal(t, 42, parseVotes("42"))
	assert.Equal(t, 0, parseVotes("N/A"))
	assert.Equal(t, 0, parseVotes(""))
}

func TestParseRuntime(t *testing.T) {
	assert.Equal(t, 142, parseRuntime("142 min"))
	assert.Equal(t, 0, parseRuntime("N/A"))
	assert.Equal(t, 0, parseRuntime(""))
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Sci-Fi"}, splitGenres("Action, Sci-Fi"))
	assert.Equal(t, []string{"Drama"}, splitGenres("Drama"))
	assert.Empty(t, splitGenres(""))
	// 顺序保持原样
	assert.Equal(t, []string{"Crime", "Drama", "Thriller"}, splitGenres("Crime,  Drama , Thriller"))
}

func TestSearch(t *testing.T) {
	var calls int32
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "matrix", r.URL.Query().Get("s"))
		w.Write([]byte(`{
			"Response": "True",
			"Search": [
				{"Title": "The Matrix", "Year": "1999", "imdbID": "tt0133093", "Poster": "https://img/matrix.jpg"},
				{"Title": "The Matrix Reloaded", "Year": "2003", "imdbID": "tt0234215", "Poster": "N/A"}
			]
		}`))
	})

	results, err := s.Search(context.Background(), "matrix")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "tt0133093", results[0].IMDbID)
	// "N/A" 海报规范化为空串
	assert.Empty(t, results[1].PosterURL)

	// 第二次查询命中缓存，不发请求
	results2, err := s.Search(context.Background(), "matrix")
	require.NoError(t, err)
	assert.Equal(t, results, results2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearchNoResults(t *testing.T) {
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})

	results, err := s.Search(context.Background(), "zzzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetOrFetchRatingCaches(t *testing.T) {
	var calls int32
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"Response":"True","imdbRating":"8.7"}`))
	})

	rating, ok := s.GetOrFetchRating(context.Background(), "tt0133093")
	assert.True(t, ok)
	assert.Equal(t, 8.7, rating)

	// 命中缓存，不再发请求
	rating, ok = s.GetOrFetchRating(context.Background(), "tt0133093")
	assert.True(t, ok)
	assert.Equal(t, 8.7, rating)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrFetchRatingMissingCached(t *testing.T) {
	var calls int32
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"Response":"True","imdbRating":"N/A"}`))
	})

	// 响应正常但无评分：缓存"无评分"标记，后续查询不再出网
	rating, ok := s.GetOrFetchRating(context.Background(), "tt0000001")
	assert.False(t, ok)
	assert.Equal(t, 0.0, rating)

	rating, ok = s.GetOrFetchRating(context.Background(), "tt0000001")
	assert.False(t, ok)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrFetchRatingFailureNotCached(t *testing.T) {
	var calls int32
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	// 传输失败不写缓存，每次都重试
	_, ok := s.GetOrFetchRating(context.Background(), "tt0133093")
	assert.False(t, ok)
	_, ok = s.GetOrFetchRating(context.Background(), "tt0133093")
	assert.False(t, ok)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetOrFetchRatingUnparseableNotCached(t *testing.T) {
	var calls int32
	s := newTestOMDb(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"Response":"True","imdbRating":"garbage"}`))
	})

	_, ok := s.GetOrFetchRating(context.Background(), "tt0133093")
	assert.False(t, ok)
	_, ok = s.GetOrFetchRating(context.Background(), "tt0133093")
	assert.False(t, ok)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
