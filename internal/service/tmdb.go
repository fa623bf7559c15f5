package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/utils"
	"golang.org/x/time/rate"
)

const (
	tmdbBaseURL  = "https://api.themoviedb.org/3"
	tmdbImageURL = "https://image.tmdb.org/t/p/"

	// TMDb 图片模板的固定规格：背景图取高清，海报取中等
	tmdbBackdropSize = "w1280"
	tmdbPosterSize   = "w500"
)

// TMDbService TMDb 补充数据源客户端
//
// 只负责在 OMDb 记录上叠加高清图片和补充评分，属于尽力而为的增强：
// 任何失败都只记日志，绝不动已有记录，也绝不向调用方抛错。
type TMDbService struct {
	apiKey   string
	baseURL  string
	imageURL string
	client   *utils.HTTPClient
	// 限速器代替早期实现里请求前固定睡 300ms 的做法：
	// 稳态速率一致，但并发增强在限速器上排队而不是各自阻塞
	limiter *rate.Limiter
}

// NewTMDbService 创建 TMDb 客户端（apiKey 为空时所有增强都跳过）
func NewTMDbService(apiKey string) *TMDbService {
	return &TMDbService{
		apiKey:   apiKey,
		baseURL:  tmdbBaseURL,
		imageURL: tmdbImageURL,
		client:   utils.NewHTTPClient(10 * time.Second),
		limiter:  rate.NewLimiter(rate.Every(300*time.Millisecond), 1),
	}
}

// tmdbFindResponse TMDb find-by-external-id 响应
type tmdbFindResponse struct {
	MovieResults []struct {
		ID           int     `json:"id"`
		BackdropPath string  `json:"backdrop_path"`
		PosterPath   string  `json:"poster_path"`
		VoteAverage  float64 `json:"vote_average"`
		VoteCount    int     `json:"vote_count"`
	} `json:"movie_results"`
}

// Enhance 按 IMDb ID 把 TMDb 的图片与评分叠加到已有记录上
//
// 取返回列表的第一条（即 TMDb 自己的相关度排序），忽略其余。
// BackdropURL 只在这里写入；海报在 TMDb 有图时覆盖 OMDb 的。
// 无匹配、响应损坏、非 200、上下文取消：记日志后原样返回。
func (s *TMDbService) Enhance(ctx context.Context, movie *model.ExternalMovie) {
	if movie == nil {
		return
	}
	if s.apiKey == "" {
		log.Printf("[TMDb] 未配置 API Key，跳过增强 (IMDbID: %s)", movie.IMDbID)
		return
	}

	if err := s.limiter.Wait(ctx); err != nil {
		log.Printf("[TMDb] 等待限速时上下文取消 (IMDbID: %s): %v", movie.IMDbID, err)
		return
	}

	reqURL := fmt.Sprintf("%s/find/%s?api_key=%s&external_source=imdb_id",
		s.baseURL, url.PathEscape(movie.IMDbID), url.QueryEscape(s.apiKey))

	var result tmdbFindResponse
	if err := s.client.GetJSON(ctx, reqURL, &result); err != nil {
		log.Printf("[TMDb] 查询失败 (IMDbID: %s): %v", movie.IMDbID, err)
		return
	}

	if len(result.MovieResults) == 0 {
		log.Printf("[TMDb] 无匹配结果 (IMDbID: %s)", movie.IMDbID)
		return
	}

	first := result.MovieResults[0]
	if first.BackdropPath != "" {
		movie.BackdropURL = s.imageURL + tmdbBackdropSize + first.BackdropPath
	}
	if first.PosterPath != "" {
		// TMDb 的海报质量更高，存在时直接替换 OMDb 的
		movie.PosterURL = s.imageURL + tmdbPosterSize + first.PosterPath
	}
	movie.TMDbRating = first.VoteAverage
	movie.TMDbVotes = first.VoteCount
}
