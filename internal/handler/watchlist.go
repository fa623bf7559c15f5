package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/rapidocine/internal/middleware"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/utils"
)

// watchlistRequest 添加待看条目请求
type watchlistRequest struct {
	MovieID int    `json:"movie_id" binding:"required"`
	Status  string `json:"status" binding:"omitempty,oneof=TO_WATCH WATCHING WATCHED"`
}

// updateWatchlistRequest 更新待看条目请求
type updateWatchlistRequest struct {
	Status string `json:"status" binding:"required,oneof=TO_WATCH WATCHING WATCHED"`
}

// AddToWatchlist 加入待看清单（重复添加时覆盖状态）
func (h *Handler) AddToWatchlist(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
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

	status := req.Status
	if status == "" {
		status = model.WatchStatusToWatch
	}

	item := &model.WatchlistItem{
		UserID:  userID,
		MovieID: req.MovieID,
		Status:  status,
	}
	if err := h.Repos.Watchlist.Upsert(item); err != nil {
		utils.InternalServerError(c, "添加失败")
		return
	}

	saved, _ := h.Repos.Watchlist.FindByUserAndMovie(userID, req.MovieID)
	if saved == nil {
		saved = item
	}
	utils.Created(c, saved)
}

// ListMyWatchlist 当前用户的待看清单（可按状态筛选，total 为不分状态的总数）
func (h *Handler) ListMyWatchlist(c *gin.Context) {
	userID := middleware.GetUserID(c)
	status := c.Query("status")

	if status != "" && status != model.WatchStatusToWatch &&
		status != model.WatchStatusWatching && status != model.WatchStatusWatched {
		utils.BadRequest(c, "无效的状态")
		return
	}

	items, err := h.Repos.Watchlist.ListByUser(userID, status)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	total, err := h.Repos.Watchlist.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"items": items,
		"total": total,
	})
}

// ListMovieWatchlist 把某电影加入待看清单的全部条目
func (h *Handler) ListMovieWatchlist(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	items, err := h.Repos.Watchlist.ListByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, items)
}

// GetWatchlistItem 获取单个待看条目
func (h *Handler) GetWatchlistItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的条目 ID")
		return
	}

	item, err := h.Repos.Watchlist.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if item == nil {
		utils.NotFound(c, "条目不存在")
		return
	}
	if item.UserID != userID {
		utils.Error(c, 403, "只能查看自己的待看清单")
		return
	}
	utils.Success(c, item)
}

// UpdateWatchlistItem 更新待看条目状态
func (h *Handler) UpdateWatchlistItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的条目 ID")
		return
	}

	item, err := h.Repos.Watchlist.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if item == nil {
		utils.NotFound(c, "条目不存在")
		return
	}
	if item.UserID != userID {
		utils.Error(c, 403, "只能修改自己的待看清单")
		return
	}

	var req updateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.Repos.Watchlist.UpdateStatus(id, req.Status); err != nil {
		utils.InternalServerError(c, "更新失败")
		return
	}

	item, _ = h.Repos.Watchlist.FindByID(id)
	utils.Success(c, item)
}

// RemoveFromWatchlist 从待看清单移除
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的条目 ID")
		return
	}

	item, err := h.Repos.Watchlist.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if item == nil {
		utils.NotFound(c, "条目不存在")
		return
	}
	if item.UserID != userID {
		utils.Error(c, 403, "只能修改自己的待看清单")
		return
	}

	if err := h.Repos.Watchlist.Delete(id); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}
	utils.Success(c, nil)
}
