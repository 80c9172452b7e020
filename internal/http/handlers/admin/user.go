package admin

import (
	"strings"

	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest 后台创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Role     int    `json:"role"`
}

// UpdateUserRequest 后台更新用户请求，nil 字段保持不变
type UpdateUserRequest struct {
	Nickname *string `json:"nickname"`
	Email    *string `json:"email"`
	Role     *int    `json:"role"`
	Status   *int    `json:"status"`
	Password *string `json:"password"`
}

var userErrorOverrides = []handlershared.ErrorRule{
	handlershared.NotFoundAs("error.user_not_found"),
}

// ListMarketers 全部投放员
func (h *Handler) ListMarketers(c *gin.Context) {
	users, err := h.UserService.ListMarketers()
	if err != nil {
		handlershared.RespondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, users)
}

// ListUsers 后台用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := handlershared.PageQuery(c)
	users, total, err := h.UserService.AdminList(service.UserListQuery{
		Page:    page,
		Limit:   limit,
		Keyword: strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		handlershared.RespondServiceError(c, err, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, limit, total))
}

// CreateUser 后台创建用户
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !handlershared.BindJSON(c, &req) {
		return
	}
	user, err := h.UserService.AdminCreate(service.AdminCreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err, "error.save_failed")
		return
	}
	response.Success(c, user)
}

// UpdateUser 后台修改用户
func (h *Handler) UpdateUser(c *gin.Context) {
	actorID, ok := handlershared.CurrentUserID(c)
	if !ok {
		return
	}
	targetID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !handlershared.BindJSON(c, &req) {
		return
	}
	user, err := h.UserService.AdminUpdate(c.Request.Context(), actorID, targetID, service.AdminUpdateUserInput{
		Nickname: req.Nickname,
		Email:    req.Email,
		Role:     req.Role,
		Status:   req.Status,
		Password: req.Password,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err, "error.save_failed", userErrorOverrides...)
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	actorID, ok := handlershared.CurrentUserID(c)
	if !ok {
		return
	}
	targetID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.UserService.Delete(c.Request.Context(), actorID, targetID); err != nil {
		handlershared.RespondServiceError(c, err, "error.delete_failed", userErrorOverrides...)
		return
	}
	response.Success(c, nil)
}
