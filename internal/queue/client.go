package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 高优先级队列
	CriticalQueue = constants.QueueCritical
)

// Client 队列客户端封装，未启用时所有 Enqueue 直接返回 ErrDisabled
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	client := asynq.NewClient(buildRedisOpt(cfg))
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueNotification 推送站内通知创建任务
func (c *Client) EnqueueNotification(payload NotificationCreatePayload) error {
	task, err := NewNotificationCreateTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, asynq.Queue(CriticalQueue), asynq.MaxRetry(5))
}

// EnqueueRevenueAggregateRefresh 推送聚合缓存预热任务，短时间内重复写入只保留一个任务
func (c *Client) EnqueueRevenueAggregateRefresh(payload RevenueAggregateRefreshPayload) error {
	task, err := NewRevenueAggregateRefreshTask(payload)
	if err != nil {
		return err
	}
	err = c.enqueue(task,
		asynq.Queue(c.defaultQueue),
		asynq.ProcessIn(3*time.Second),
		asynq.Unique(10*time.Second),
		asynq.MaxRetry(1),
	)
	if err == asynq.ErrDuplicateTask {
		return nil
	}
	return err
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	_, err := c.client.Enqueue(task, opts...)
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 3, CriticalQueue: 6}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	return opt
}
