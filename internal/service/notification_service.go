package service

import (
	"errors"
	"strings"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/queue"
	"github.com/blog-console/internal/repository"
)

// NotificationService 站内通知
type NotificationService struct {
	repo  repository.NotificationRepository
	queue *queue.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository, queueClient *queue.Client) *NotificationService {
	return &NotificationService{repo: repo, queue: queueClient}
}

// NotificationInput 创建通知
type NotificationInput struct {
	UserID  uint
	Type    string `validate:"omitempty,oneof=system comment reply recharge"`
	Content string `validate:"required,max=2000"`
}

// NotificationUpdateInput 更新通知
type NotificationUpdateInput struct {
	Content *string `validate:"omitempty,min=1,max=2000"`
	Status  *string `validate:"omitempty,oneof=unread read"`
}

// NotificationListQuery 通知列表
type NotificationListQuery struct {
	Page   int
	Limit  int
	Status string `validate:"omitempty,oneof=unread read"`
}

// Create 为自己创建通知，管理员可指定接收人
func (s *NotificationService) Create(actor Actor, input NotificationInput) (*models.Notification, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := ValidateDTO(input); err != nil {
		return nil, err
	}
	target := actor.UserID
	if input.UserID != 0 && actor.AtLeast(constants.RoleAdmin) {
		target = input.UserID
	}
	if input.Type == "" {
		input.Type = constants.NotificationTypeSystem
	}
	notification := &models.Notification{
		UserID:  target,
		Type:    input.Type,
		Content: input.Content,
		Status:  constants.NotificationStatusUnread,
	}
	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Get 获取自己的通知，他人的通知按不存在处理
func (s *NotificationService) Get(userID, id uint) (*models.Notification, error) {
	notification, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if notification == nil || notification.UserID != userID {
		return nil, ErrNotFound
	}
	return notification, nil
}

// Update 更新内容或已读状态
func (s *NotificationService) Update(userID, id uint, input NotificationUpdateInput) (*models.Notification, error) {
	if err := ValidateDTO(input); err != nil {
		return nil, err
	}
	notification, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if input.Content != nil {
		notification.Content = strings.TrimSpace(*input.Content)
	}
	if input.Status != nil {
		notification.Status = *input.Status
	}
	if err := s.repo.Update(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Delete 删除自己的通知
func (s *NotificationService) Delete(userID, id uint) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// List 当前用户的通知，新的在前
func (s *NotificationService) List(userID uint, query NotificationListQuery) ([]models.Notification, int64, error) {
	if err := ValidateDTO(query); err != nil {
		return nil, 0, err
	}
	return s.repo.List(repository.NotificationListFilter{
		Page:   query.Page,
		Limit:  query.Limit,
		UserID: userID,
		Status: query.Status,
	})
}

// MarkAllRead 全部标记为已读
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

// UnreadCount 未读数量
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

// Deliver 投递系统通知，优先走队列，队列不可用时直接落库
func (s *NotificationService) Deliver(userID uint, notificationType, content string) {
	if userID == 0 {
		return
	}
	payload := queue.NotificationCreatePayload{UserID: userID, Type: notificationType, Content: content}
	if s.queue != nil && s.queue.Enabled() {
		err := s.queue.EnqueueNotification(payload)
		if err == nil {
			return
		}
		logger.Warnw("notification_enqueue_failed", "user_id", userID, "type", notificationType, "error", err)
	}
	if err := s.HandleCreateTask(payload); err != nil {
		logger.Errorw("notification_create_failed", "user_id", userID, "type", notificationType, "error", err)
	}
}

// HandleCreateTask 队列消费端落库
func (s *NotificationService) HandleCreateTask(payload queue.NotificationCreatePayload) error {
	if payload.UserID == 0 || strings.TrimSpace(payload.Content) == "" {
		return errors.New("invalid notification payload")
	}
	notificationType := payload.Type
	if notificationType == "" {
		notificationType = constants.NotificationTypeSystem
	}
	return s.repo.Create(&models.Notification{
		UserID:  payload.UserID,
		Type:    notificationType,
		Content: payload.Content,
		Status:  constants.NotificationStatusUnread,
	})
}
