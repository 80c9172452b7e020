package shared

import (
	"strconv"
	"strings"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 读取鉴权中间件写入的用户 ID。
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return userID, true
}

// CurrentActor 读取当前登录用户及其角色。
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	role, ok := c.Value(constants.ContextKeyUserRole).(int)
	if !ok {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: role}, true
}

// ParseIDParam 解析路径中的数字 ID。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalUintQuery 解析可选的数字查询参数，缺省返回 0。
func ParseOptionalUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(value), true
}

// BindJSON 绑定请求体，失败时直接返回 400。
func BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		RequestLog(c).Debugw("bind_json_failed", "path", c.FullPath(), "error", err)
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return false
	}
	return true
}
