package queue

import (
	"encoding/json"
	"errors"

	"github.com/blog-console/internal/constants"

	"github.com/hibiken/asynq"
)

// ErrDisabled 队列未启用
var ErrDisabled = errors.New("queue disabled")

const (
	// TaskNotificationCreate 站内通知创建任务
	TaskNotificationCreate = constants.TaskNotificationCreate
	// TaskRevenueAggregateRefresh 收益聚合缓存预热任务
	TaskRevenueAggregateRefresh = constants.TaskRevenueAggregateRefresh
)

// NotificationCreatePayload 通知任务载荷
type NotificationCreatePayload struct {
	UserID  uint   `json:"user_id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// RevenueAggregateRefreshPayload 聚合预热任务载荷
type RevenueAggregateRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewNotificationCreateTask 创建通知任务
func NewNotificationCreateTask(payload NotificationCreatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationCreate, body), nil
}

// NewRevenueAggregateRefreshTask 创建聚合预热任务
func NewRevenueAggregateRefreshTask(payload RevenueAggregateRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRevenueAggregateRefresh, body), nil
}

// DecodeNotificationCreate 解析通知任务
func DecodeNotificationCreate(task *asynq.Task) (NotificationCreatePayload, error) {
	var payload NotificationCreatePayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// DecodeRevenueAggregateRefresh 解析聚合预热任务
func DecodeRevenueAggregateRefresh(task *asynq.Task) (RevenueAggregateRefreshPayload, error) {
	var payload RevenueAggregateRefreshPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
