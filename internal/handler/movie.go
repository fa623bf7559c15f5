package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/user/rapidocine/internal/middleware"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/service"
	"github.com/user/rapidocine/internal/utils"
)

// createMovieRequest 手动创建电影请求
type createMovieRequest struct {
	IMDbID   string   `json:"imdb_id" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Year     int      `json:"year"`
	Poster   string   `json:"poster_url"`
	Plot     string   `json:"plot"`
	Genres   []string `json:"genres"`
	Runtime  int      `json:"runtime"`
	Director string   `json:"director"`
}

// updateMovieRequest 更新电影请求（字段均可选）
type updateMovieRequest struct {
	Title  *string   `json:"title"`
	Year   *int      `json:"year"`
	Poster *string   `json:"poster_url"`
	Plot   *string   `json:"plot"`
	Genres *[]string `json:"genres"`
}

// importMovieRequest 导入电影请求
type importMovieRequest struct {
	IMDbID string `json:"imdb_id" binding:"required,imdbid"`
}

// ListMovies 获取电影列表，支持 year/genre 筛选
func (h *Handler) ListMovies(c *gin.Context) {
	// 筛选参数互斥，year 优先
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			utils.BadRequest(c, "无效的年份")
			return
		}
		movies, err := h.Repos.Movie.FilterByYear(year)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		utils.Success(c, movies)
		return
	}

	if genre := c.Query("genre"); genre != "" {
		movies, err := h.Repos.Movie.FilterByGenre(genre)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		utils.Success(c, movies)
		return
	}

	limit, offset := pagination(c)
	movies, err := h.Repos.Movie.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

// SearchMovies 按标题搜索本地库
func (h *Handler) SearchMovies(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		utils.BadRequest(c, "请输入搜索关键词")
		return
	}

	movies, err := h.Repos.Movie.SearchByTitle(title)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, movies)
}

// SuggestMovies 外部搜索建议（查 OMDb，不落库）
func (h *Handler) SuggestMovies(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.BadRequest(c, "请输入搜索关键词")
		return
	}

	results, err := h.Fetcher.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrProviderUnavailable) {
			utils.Error(c, 503, "外部数据源暂不可用")
			return
		}
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, results)
}

// GetMovie 根据 ID 获取电影详情（附平均分）
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	avg, _ := h.Repos.Rating.AverageByMovie(movie.ID)
	count, _ := h.Repos.Rating.CountByMovie(movie.ID)

	data := gin.H{
		"movie":          movie,
		"average_rating": avg,
		"rating_count":   count,
	}

	// 已登录时附带本人评分
	if userID := middleware.GetUserIDPtr(c); userID != nil {
		if mine, err := h.Repos.Rating.FindByUserAndMovie(*userID, movie.ID); err == nil && mine != nil {
			data["user_rating"] = mine.Score
		}
	}

	utils.Success(c, data)
}

// GetMovieByIMDbID 根据 IMDb ID 获取电影
func (h *Handler) GetMovieByIMDbID(c *gin.Context) {
	imdbID := c.Param("imdb_id")

	movie, err := h.Repos.Movie.FindByIMDbID(imdbID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}
	utils.Success(c, movie)
}

// CreateMovie 手动创建电影
func (h *Handler) CreateMovie(c *gin.Context) {
	var req createMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	existing, _ := h.Repos.Movie.FindByIMDbID(req.IMDbID)
	if existing != nil {
		utils.BadRequest(c, "该电影已存在")
		return
	}

	movie := &model.Movie{
		IMDbID:    req.IMDbID,
		Title:     req.Title,
		Year:      req.Year,
		PosterURL: req.Poster,
		Plot:      req.Plot,
		Genres:    pq.StringArray(req.Genres),
		Runtime:   req.Runtime,
		Director:  req.Director,
	}
	if err := h.Repos.Movie.Create(movie); err != nil {
		utils.InternalServerError(c, "创建失败")
		return
	}
	utils.Created(c, movie)
}

// ImportMovie 通过抓取管线导入电影
func (h *Handler) ImportMovie(c *gin.Context) {
	var req importMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	movie, err := h.Catalog.ImportByIMDbID(c.Request.Context(), req.IMDbID)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			utils.NotFound(c, "未找到该 IMDb ID 对应的电影")
			return
		}
		if errors.Is(err, service.ErrProviderUnavailable) {
			utils.Error(c, 503, "外部数据源暂不可用")
			return
		}
		utils.InternalServerError(c, "导入失败")
		return
	}
	utils.Created(c, movie)
}

// UpdateMovie 更新电影字段
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	var req updateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Year != nil {
		fields["year"] = *req.Year
	}
	if req.Poster != nil {
		fields["poster_url"] = *req.Poster
	}
	if req.Plot != nil {
		fields["plot"] = *req.Plot
	}
	if req.Genres != nil {
		fields["genres"] = pq.StringArray(*req.Genres)
	}
	if len(fields) == 0 {
		utils.BadRequest(c, "没有需要更新的字段")
		return
	}

	if err := h.Repos.Movie.Update(id, fields); err != nil {
		utils.InternalServerError(c, "更新失败")
		return
	}

	movie, _ = h.Repos.Movie.FindByID(id)
	utils.Success(c, movie)
}

// DeleteMovie 删除电影
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	if err := h.Repos.Movie.Delete(id); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}
	utils.Success(c, nil)
}

// MovieExternalRating 查询电影的 IMDb 评分（走进程级缓存）
func (h *Handler) MovieExternalRating(c *gin.Context) {
	imdbID := c.Param("imdb_id")

	rating, ok := h.Fetcher.GetOrFetchRating(c.Request.Context(), imdbID)
	utils.Success(c, gin.H{
		"imdb_id": imdbID,
		"rating":  rating,
		"found":   ok,
	})
}

// TopRatedByUser 当前用户的最高评价榜单
func (h *Handler) TopRatedByUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	results, err := h.Repos.Movie.TopRatedByUser(userID, limit)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, results)
}
