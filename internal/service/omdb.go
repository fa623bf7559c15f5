package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/utils"
)

// 抓取结果的典型错误。调用方可以据此区分“片库里没有这部电影”
// 和“数据源暂时不可用”，两者默认都按“无记录”降级处理。
var (
	// ErrMovieNotFound 主数据源明确表示没有这条记录
	ErrMovieNotFound = errors.New("movie not found")
	// ErrProviderUnavailable 传输层失败（超时、连接失败、非 200 状态码）
	ErrProviderUnavailable = errors.New("provider unavailable")
)

const omdbBaseURL = "http://www.omdbapi.com/"

// OMDbService OMDb 主数据源客户端
//
// 评分缓存归本实例独占：首次成功查询后按 IMDb ID 记住评分，
// 进程存活期间不再重复请求。失败的查询不会写入缓存，
// 所以瞬时故障只会导致重试，不会被永久记成“无评分”。
// 两个并发未命中会各自请求一次并先后写入（值对同一 ID 是确定的，
// 后写覆盖无害），这里刻意不做去重。
type OMDbService struct {
	apiKey      string
	baseURL     string
	client      *utils.HTTPClient
	ratings     *gocache.Cache
	searchCache *utils.SearchCache[[]model.MovieSummary]
}

// NewOMDbService 创建 OMDb 客户端
func NewOMDbService(apiKey string) *OMDbService {
	return &OMDbService{
		apiKey:      apiKey,
		baseURL:     omdbBaseURL,
		client:      utils.NewHTTPClient(10 * time.Second),
		ratings:     utils.NewRatingCache(),
		searchCache: utils.NewSearchCache[[]model.MovieSummary](1000, 1*time.Hour),
	}
}

// omdbMovieResponse OMDb 单片查询响应（字段均为原始字符串）
type omdbMovieResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
	IMDbID     string `json:"imdbID"`
}

// omdbSearchResponse OMDb 关键词搜索响应
type omdbSearchResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Search   []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		IMDbID string `json:"imdbID"`
		Poster string `json:"Poster"`
	} `json:"Search"`
}

// FetchByIMDbID 按 IMDb ID 抓取完整元数据
func (s *OMDbService) FetchByIMDbID(ctx context.Context, imdbID string) (*model.ExternalMovie, error) {
	if strings.TrimSpace(imdbID) == "" {
		return nil, ErrMovieNotFound
	}
	params := url.Values{}
	params.Set("i", imdbID)
	return s.fetch(ctx, params)
}

// FetchByTitle 按标题抓取完整元数据
func (s *OMDbService) FetchByTitle(ctx context.Context, title string) (*model.ExternalMovie, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrMovieNotFound
	}
	params := url.Values{}
	params.Set("t", title)
	return s.fetch(ctx, params)
}

func (s *OMDbService) fetch(ctx context.Context, params url.Values) (*model.ExternalMovie, error) {
	params.Set("apikey", s.apiKey)
	params.Set("plot", "full")

	var raw omdbMovieResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+params.Encode(), &raw); err != nil {
		log.Printf("[OMDb] 请求失败 (%v): %v", queryLabel(params), err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// Response 为 "False" 是正常分支：片库里没有这部电影
	if raw.Response != "True" {
		log.Printf("[OMDb] 未找到电影 (%v): %s", queryLabel(params), raw.Error)
		return nil, ErrMovieNotFound
	}

	return transformOMDb(&raw), nil
}

// Search 按关键词搜索电影（结果走 LRU 缓存）
func (s *OMDbService) Search(ctx context.Context, query string) ([]model.MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if cached, ok := s.searchCache.Get(query); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("apikey", s.apiKey)
	params.Set("s", query)
	params.Set("type", "movie")

	var raw omdbSearchResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+params.Encode(), &raw); err != nil {
		log.Printf("[OMDb] 搜索失败 (%s): %v", query, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// 无结果同样是正常分支，返回空列表
	if raw.Response != "True" {
		return []model.MovieSummary{}, nil
	}

	results := make([]model.MovieSummary, 0, len(raw.Search))
	for _, item := range raw.Search {
		poster := item.Poster
		if poster == "N/A" {
			poster = ""
		}
		results = append(results, model.MovieSummary{
			IMDbID:    item.IMDbID,
			Title:     item.Title,
			Year:      item.Year,
			PosterURL: poster,
		})
	}

	s.searchCache.Set(query, results)
	return results, nil
}

// ratingEntry 评分缓存条目。Has 为 false 表示数据源确认过“无评分”。
type ratingEntry struct {
	Value float64
	Has   bool
}

// GetOrFetchRating 查询单部电影的 IMDb 评分（带进程级缓存）
//
// 命中缓存直接返回，不发任何网络请求；未命中时只向 OMDb 要评分字段，
// 成功解析后才写缓存。返回 (0, false) 表示暂无评分或本次查询失败。
func (s *OMDbService) GetOrFetchRating(ctx context.Context, imdbID string) (float64, bool) {
	if strings.TrimSpace(imdbID) == "" {
		return 0, false
	}

	if cached, ok := s.ratings.Get(imdbID); ok {
		entry := cached.(ratingEntry)
		return entry.Value, entry.Has
	}

	params := url.Values{}
	params.Set("apikey", s.apiKey)
	params.Set("i", imdbID)

	var raw struct {
		Response   string `json:"Response"`
		Error      string `json:"Error"`
		IMDbRating string `json:"imdbRating"`
	}
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+params.Encode(), &raw); err != nil {
		// 失败不写缓存，下次照常重试
		log.Printf("[OMDb] 评分查询失败 (%s): %v", imdbID, err)
		return 0, false
	}
	if raw.Response != "True" {
		log.Printf("[OMDb] 评分查询无结果 (%s): %s", imdbID, raw.Error)
		return 0, false
	}

	if raw.IMDbRating == "" || raw.IMDbRating == "N/A" {
		// 查询成功但确实没有评分，缓存“无评分”标记
		s.ratings.Set(imdbID, ratingEntry{}, gocache.NoExpiration)
		return 0, false
	}

	value, err := strconv.ParseFloat(raw.IMDbRating, 64)
	if err != nil {
		// 字段损坏按失败处理，不缓存
		log.Printf("[OMDb] 评分字段无法解析 (%s): %q", imdbID, raw.IMDbRating)
		return 0, false
	}

	s.ratings.Set(imdbID, ratingEntry{Value: value, Has: true}, gocache.NoExpiration)
	return value, true
}

// transformOMDb 把 OMDb 原始响应规范化为内部记录
//
// 各字段的缺省策略在全仓库内唯一：评分缺失/无法解析一律取 0.0，
// 票数与时长取 0，年份取 0（表示未知，由调用方决定如何兜底）。
func transformOMDb(raw *omdbMovieResponse) *model.ExternalMovie {
	return &model.ExternalMovie{
		IMDbID:    raw.IMDbID,
		Title:     raw.Title,
		Year:      parseYear(raw.Year),
		Plot:      raw.Plot,
		Genres:    splitGenres(raw.Genre),
		PosterURL: normalizePoster(raw.Poster),
		Rating:    parseRating(raw.IMDbRating),
		VoteCount: parseVotes(raw.IMDbVotes),
		Runtime:   parseRuntime(raw.Runtime),
		Released:  raw.Released,
		Director:  raw.Director,
		Actors:    raw.Actors,
		Country:   raw.Country,
		Language:  raw.Language,
		Awards:    raw.Awards,
	}
}

// parseRating "8.7" -> 8.7，无法解析取 0.0
func parseRating(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// parseVotes "2,018,732" -> 2018732，无法解析取 0
func parseVotes(s string) int {
	v, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return v
}

// parseRuntime "142 min" -> 142，无法解析取 0
func parseRuntime(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return v
}

// parseYear 取年份字段前四位（"1999" 或 "1999–2001" 都只看前四位），失败取 0
func parseYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	v, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return v
}

// normalizePoster OMDb 用字面量 "N/A" 表示无海报
func normalizePoster(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}

// splitGenres "Action, Sci-Fi" -> ["Action","Sci-Fi"]，保持顺序、丢弃空项
func splitGenres(s string) []string {
	parts := strings.Split(s, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// queryLabel 日志用：从查询参数里挑出有意义的那个
func queryLabel(params url.Values) string {
	if id := params.Get("i"); id != "" {
		return id
	}
	return params.Get("t")
}
