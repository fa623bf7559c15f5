package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/rapidocine/internal/middleware"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/utils"
)

// rateRequest 评分请求
type rateRequest struct {
	MovieID int `json:"movie_id" binding:"required"`
	Score   int `json:"score" binding:"required,min=1,max=5"`
}

// updateRatingRequest 更新评分请求
type updateRatingRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

// RateMovie 给电影评分（同一用户同一电影重复评分时覆盖）
func (h *Handler) RateMovie(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评分应为 1-5 的整数: "+err.Error())
		return
	}

	movie, err := h.Repos.Movie.FindByID(req.MovieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "电影不存在")
		return
	}

	rating := &model.Rating{
		UserID:  userID,
		MovieID: req.MovieID,
		Score:   req.Score,
	}
	if err := h.Repos.Rating.Upsert(rating); err != nil {
		utils.InternalServerError(c, "评分失败")
		return
	}

	saved, _ := h.Repos.Rating.FindByUserAndMovie(userID, req.MovieID)
	if saved == nil {
		saved = rating
	}
	utils.Created(c, saved)
}

// ListRatings 分页获取评分列表
func (h *Handler) ListRatings(c *gin.Context) {
	limit, offset := pagination(c)

	ratings, err := h.Repos.Rating.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, ratings)
}

// GetRating 根据 ID 获取单条评分
func (h *Handler) GetRating(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评分 ID")
		return
	}

	rating, err := h.Repos.Rating.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rating == nil {
		utils.NotFound(c, "评分不存在")
		return
	}
	utils.Success(c, rating)
}

// ListMyRatings 当前用户的全部评分
func (h *Handler) ListMyRatings(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ratings, err := h.Repos.Rating.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, ratings)
}

// ListMovieRatings 某电影的全部评分
func (h *Handler) ListMovieRatings(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	ratings, err := h.Repos.Rating.ListByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, ratings)
}

// MovieAverageRating 某电影的平均分
func (h *Handler) MovieAverageRating(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	avg, err := h.Repos.Rating.AverageByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	count, _ := h.Repos.Rating.CountByMovie(movieID)

	utils.Success(c, gin.H{
		"movie_id":       movieID,
		"average_rating": avg,
		"rating_count":   count,
	})
}

// UpdateRating 更新自己的评分
func (h *Handler) UpdateRating(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评分 ID")
		return
	}

	rating, err := h.Repos.Rating.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rating == nil {
		utils.NotFound(c, "评分不存在")
		return
	}
	if rating.UserID != userID {
		utils.Error(c, 403, "只能修改自己的评分")
		return
	}

	var req updateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评分应为 1-5 的整数: "+err.Error())
		return
	}

	if err := h.Repos.Rating.UpdateScore(id, req.Score); err != nil {
		utils.InternalServerError(c, "更新失败")
		return
	}

	rating, _ = h.Repos.Rating.FindByID(id)
	utils.Success(c, rating)
}

// DeleteRating 删除自己的评分
func (h *Handler) DeleteRating(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评分 ID")
		return
	}

	rating, err := h.Repos.Rating.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if rating == nil {
		utils.NotFound(c, "评分不存在")
		return
	}
	if rating.UserID != userID {
		utils.Error(c, 403, "只能删除自己的评分")
		return
	}

	if err := h.Repos.Rating.Delete(id); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}
	utils.Success(c, nil)
}
