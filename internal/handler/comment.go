package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/rapidocine/internal/middleware"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/utils"
)

// commentRequest 发表评论请求
type commentRequest struct {
	MovieID int    `json:"movie_id" binding:"required"`
	Content string `json:"content" binding:"required,max=2000"`
}

// updateCommentRequest 更新评论请求
type updateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CreateComment 发表评论
func (h *Handler) CreateComment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		utils.BadRequest(c, "评论内容不能为空")
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

	comment := &model.Comment{
		UserID:  userID,
		MovieID: req.MovieID,
		Content: content,
	}
	if err := h.Repos.Comment.Create(comment); err != nil {
		utils.InternalServerError(c, "评论失败")
		return
	}
	utils.Created(c, comment)
}

// ListComments 分页获取评论列表
func (h *Handler) ListComments(c *gin.Context) {
	limit, offset := pagination(c)

	comments, err := h.Repos.Comment.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, comments)
}

// ListMyComments 当前用户的全部评论
func (h *Handler) ListMyComments(c *gin.Context) {
	userID := middleware.GetUserID(c)

	comments, err := h.Repos.Comment.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, comments)
}

// ListMovieComments 某电影的全部评论
func (h *Handler) ListMovieComments(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movie_id"))
	if err != nil {
		utils.BadRequest(c, "无效的电影 ID")
		return
	}

	comments, err := h.Repos.Comment.ListByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, comments)
}

// UpdateComment 更新自己的评论
func (h *Handler) UpdateComment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if comment.UserID != userID {
		utils.Error(c, 403, "只能修改自己的评论")
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.Repos.Comment.UpdateContent(id, strings.TrimSpace(req.Content)); err != nil {
		utils.InternalServerError(c, "更新失败")
		return
	}

	comment, _ = h.Repos.Comment.FindByID(id)
	utils.Success(c, comment)
}

// DeleteComment 删除自己的评论
func (h *Handler) DeleteComment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}
	if comment.UserID != userID {
		utils.Error(c, 403, "只能删除自己的评论")
		return
	}

	if err := h.Repos.Comment.Delete(id); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}
	utils.Success(c, nil)
}
