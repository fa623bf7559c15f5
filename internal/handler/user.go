package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/rapidocine/internal/middleware"
	"github.com/user/rapidocine/internal/model"
	"github.com/user/rapidocine/internal/utils"
)

// registerRequest 注册请求
type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=20"`
	Password string `json:"password" binding:"required,min=6"`
}

// loginRequest 登录请求
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// updateUserRequest 更新用户请求（字段均可选）
type updateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=2,max=20"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// Register 注册新用户
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 检查邮箱是否已存在
	existing, _ := h.Repos.User.FindByEmail(req.Email)
	if existing != nil {
		utils.BadRequest(c, "该邮箱已被注册")
		return
	}

	// 检查用户名是否已存在
	existing, _ = h.Repos.User.FindByUsername(req.Username)
	if existing != nil {
		utils.BadRequest(c, "该用户名已被使用")
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Username, req.Password)
	if err != nil {
		utils.InternalServerError(c, "注册失败，请重试")
		return
	}

	utils.Created(c, user)
}

// Login 登录，签发 JWT 并写入 Session
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 查找用户
	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil || user == nil {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 验证密码
	if !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 生成 JWT
	token, err := h.generateToken(user)
	if err != nil {
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}

	// 设置 Cookie (JWT)
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	// 保存 UserInfo 到 Session
	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	session.Save()

	utils.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	// 清理 Session
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	utils.Success(c, nil)
}

// generateToken 生成 JWT
func (h *Handler) generateToken(user *model.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.Config.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Config.AppSecret))
}

// CurrentUser 获取当前登录用户
func (h *Handler) CurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, user)
}

// ListUsers 分页获取用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)

	users, err := h.Repos.User.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, users)
}

// GetUser 根据 ID 获取用户
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	user, err := h.Repos.User.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}
	utils.Success(c, user)
}

// GetUserByUsername 根据用户名获取用户
func (h *Handler) GetUserByUsername(c *gin.Context) {
	username := c.Param("username")

	user, err := h.Repos.User.FindByUsername(username)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}
	utils.Success(c, user)
}

// UpdateUser 更新当前用户资料
func (h *Handler) UpdateUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		existing, _ := h.Repos.User.FindByUsername(username)
		if existing != nil && existing.ID != userID {
			utils.BadRequest(c, "该用户名已被使用")
			return
		}
		if err := h.Repos.User.UpdateUsername(userID, username); err != nil {
			utils.InternalServerError(c, "用户名更新失败")
			return
		}
	}

	if req.Email != nil {
		existing, _ := h.Repos.User.FindByEmail(*req.Email)
		if existing != nil && existing.ID != userID {
			utils.BadRequest(c, "该邮箱已被其他账号使用")
			return
		}
		if err := h.Repos.User.UpdateEmail(userID, *req.Email); err != nil {
			utils.InternalServerError(c, "邮箱更新失败")
			return
		}
	}

	if req.Password != nil {
		if err := h.Repos.User.UpdatePassword(userID, *req.Password); err != nil {
			utils.InternalServerError(c, "密码更新失败")
			return
		}
	}

	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, user)
}

// DeleteUser 注销当前账号
func (h *Handler) DeleteUser(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Repos.User.Delete(userID); err != nil {
		utils.InternalServerError(c, "注销失败")
		return
	}

	// 账号已不存在，同步清理登录态
	c.SetCookie("token", "", -1, "/", "", false, true)
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	utils.Success(c, nil)
}

// pagination 解析 skip/limit 查询参数
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
