package worker

import (
	"context"
	"fmt"

	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/provider"
	"github.com/blog-console/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationCreate, c.handleNotificationCreate)
	mux.HandleFunc(queue.TaskRevenueAggregateRefresh, c.handleRevenueAggregateRefresh)
}

func (c *Consumer) handleNotificationCreate(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_create_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeNotificationCreate(task)
	if err != nil {
		logger.Warnw("worker_notification_create_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_notification_create_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_notification_create_skip_service_nil", "user_id", payload.UserID)
		return nil
	}
	if err := c.NotificationService.HandleCreateTask(payload); err != nil {
		logger.Warnw("worker_notification_create_failed", "user_id", payload.UserID, "type", payload.Type, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleRevenueAggregateRefresh(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	payload, err := queue.DecodeRevenueAggregateRefresh(task)
	if err != nil {
		logger.Warnw("worker_revenue_refresh_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if c.RevenueService == nil {
		return nil
	}
	if err := c.RevenueService.RefreshAggregateCache(ctx); err != nil {
		logger.Warnw("worker_revenue_refresh_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Debugw("worker_revenue_refresh_done", "reason", payload.Reason)
	return nil
}
