package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// AsynqLogger 将 asynq 的日志接口桥接到 zap
type AsynqLogger struct {
	s *zap.SugaredLogger
}

// NewAsynqLogger 创建队列日志适配器
func NewAsynqLogger() *AsynqLogger {
	return &AsynqLogger{s: Named("asynq")}
}

func (l *AsynqLogger) Debug(args ...interface{}) { l.s.Debug(args...) }
func (l *AsynqLogger) Info(args ...interface{})  { l.s.Info(args...) }
func (l *AsynqLogger) Warn(args ...interface{})  { l.s.Warn(args...) }
func (l *AsynqLogger) Error(args ...interface{}) { l.s.Error(args...) }

// Fatal 仅记录错误，不退出进程，由 Runner 负责停机
func (l *AsynqLogger) Fatal(args ...interface{}) {
	l.s.Errorw("asynq_fatal", "message", fmt.Sprint(args...))
}

// CronLogger 实现 robfig/cron 的 Logger 接口
type CronLogger struct {
	s *zap.SugaredLogger
}

// NewCronLogger 创建定时任务日志适配器
func NewCronLogger() *CronLogger {
	return &CronLogger{s: Named("cron")}
}

// Info cron 的 info 日志量较大，降为 debug
func (l *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
