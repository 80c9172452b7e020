package public

import (
	"strings"

	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationRequest 创建通知请求，user_id 仅管理员可指定
type NotificationRequest struct {
	UserID  uint   `json:"user_id"`
	Type    string `json:"type"`
	Content string `json:"content" binding:"required"`
}

// NotificationUpdateRequest 更新通知请求
type NotificationUpdateRequest struct {
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

var notificationErrorOverrides = []handlershared.ErrorRule{
	handlershared.NotFoundAs("error.notification_not_found"),
}

// CreateNotification 创建通知
func (h *Handler) CreateNotification(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req NotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	notification, err := h.NotificationService.Create(actor, service.NotificationInput{
		UserID:  req.UserID,
		Type:    strings.TrimSpace(req.Type),
		Content: req.Content,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	response.Success(c, notification)
}

// GetNotification 通知详情
func (h *Handler) GetNotification(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	notification, err := h.NotificationService.Get(userID, id)
	if err != nil {
		respondServiceError(c, err, "error.query_failed", notificationErrorOverrides...)
		return
	}
	response.Success(c, notification)
}

// UpdateNotification 更新内容或已读状态
func (h *Handler) UpdateNotification(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req NotificationUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	notification, err := h.NotificationService.Update(userID, id, service.NotificationUpdateInput{
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed", notificationErrorOverrides...)
		return
	}
	response.Success(c, notification)
}

// DeleteNotification 删除通知
func (h *Handler) DeleteNotification(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.NotificationService.Delete(userID, id); err != nil {
		respondServiceError(c, err, "error.delete_failed", notificationErrorOverrides...)
		return
	}
	response.Success(c, nil)
}

// ListNotifications 当前用户的通知
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, limit := handlershared.PageQuery(c)
	notifications, total, err := h.NotificationService.List(userID, service.NotificationListQuery{
		Page:   page,
		Limit:  limit,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	successWithPage(c, notifications, page, limit, total)
}

// MarkAllNotificationsRead 全部标记已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	updated, err := h.NotificationService.MarkAllRead(userID)
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	response.Success(c, gin.H{"updated": updated})
}

// GetUnreadCount 未读数量
func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	count, err := h.NotificationService.UnreadCount(userID)
	if err != nil {
		respondServiceError(c, err, "error.query_failed")
		return
	}
	response.Success(c, gin.H{"count": count})
}
