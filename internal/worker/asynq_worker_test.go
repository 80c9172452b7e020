package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/provider"
	"github.com/blog-console/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) *Consumer {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	c, err := provider.NewContainerWithDB(&config.Config{
		JWT:   config.JWTConfig{SecretKey: "worker-test-secret", ExpireHours: 1},
		IDGen: config.IDGenConfig{MinLength: 10},
	}, db)
	if err != nil {
		t.Fatalf("init container failed: %v", err)
	}
	return NewConsumer(c)
}

func TestHandleNotificationCreate(t *testing.T) {
	consumer := setupWorkerTest(t)
	task, err := queue.NewNotificationCreateTask(queue.NotificationCreatePayload{UserID: 3, Type: "comment", Content: "new reply"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleNotificationCreate(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	unread, err := consumer.NotificationRepo.CountUnread(3)
	if err != nil {
		t.Fatalf("count unread failed: %v", err)
	}
	if unread != 1 {
		t.Fatalf("unread want 1 got %d", unread)
	}

	// user_id 缺失直接丢弃
	empty, _ := queue.NewNotificationCreateTask(queue.NotificationCreatePayload{Content: "orphan"})
	if err := consumer.handleNotificationCreate(context.Background(), empty); err != nil {
		t.Fatalf("empty user should be skipped, got %v", err)
	}
}

func TestHandleNotificationCreateBadPayload(t *testing.T) {
	consumer := setupWorkerTest(t)
	task := asynq.NewTask(queue.TaskNotificationCreate, []byte("{broken"))
	err := consumer.handleNotificationCreate(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("bad payload want SkipRetry got %v", err)
	}
}

func TestHandleRevenueRefreshWithoutCache(t *testing.T) {
	consumer := setupWorkerTest(t)
	task, err := queue.NewRevenueAggregateRefreshTask(queue.RevenueAggregateRefreshPayload{Reason: "create"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleRevenueAggregateRefresh(context.Background(), task); err != nil {
		t.Fatalf("refresh without cache should be noop, got %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{}, &Consumer{}); err == nil {
		t.Fatalf("disabled queue should fail")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should fail")
	}
}
