package scheduler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/logger"

	"github.com/robfig/cron/v3"
)

const (
	defaultAggregateRefreshSpec = "0 */5 * * * *"
	jobTimeout                  = 30 * time.Second
)

// AggregateRefresher 聚合缓存预热
type AggregateRefresher interface {
	RefreshAggregateCache(ctx context.Context) error
}

// Service 定时任务服务
type Service struct {
	name string
	cron *cron.Cron
	done chan struct{}
}

// NewService 注册全部定时任务
func NewService(cfg config.SchedulerConfig, refresher AggregateRefresher) (*Service, error) {
	if refresher == nil {
		return nil, errors.New("aggregate refresher is nil")
	}
	cronLogger := logger.NewCronLogger()
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	spec := strings.TrimSpace(cfg.AggregateRefresh)
	if spec == "" {
		spec = defaultAggregateRefreshSpec
	}
	if _, err := c.AddJob(spec, NewAggregateRefreshJob(refresher)); err != nil {
		return nil, err
	}
	logger.Infow("scheduler_job_registered", "job", "revenue_aggregate_refresh", "spec", spec)

	return &Service{name: "scheduler", cron: c, done: make(chan struct{})}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "scheduler"
	}
	return s.name
}

// Start 启动调度并阻塞到 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return errors.New("scheduler not initialized")
	}
	s.cron.Start()
	select {
	case <-ctx.Done():
	case <-s.done:
	}
	return nil
}

// Stop 等待运行中的任务结束
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return nil
	}
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries 已注册任务数
func (s *Service) Entries() int {
	if s == nil || s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

// AggregateRefreshJob 预热未过滤的收益聚合
type AggregateRefreshJob struct {
	refresher AggregateRefresher
}

// NewAggregateRefreshJob 创建预热任务
func NewAggregateRefreshJob(refresher AggregateRefresher) *AggregateRefreshJob {
	return &AggregateRefreshJob{refresher: refresher}
}

// Run 实现 cron.Job
func (j *AggregateRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	start := time.Now()
	if err := j.refresher.RefreshAggregateCache(ctx); err != nil {
		logger.Warnw("scheduler_aggregate_refresh_failed", "error", err)
		return
	}
	logger.Debugw("scheduler_aggregate_refresh_done", "elapsed_ms", time.Since(start).Milliseconds())
}
