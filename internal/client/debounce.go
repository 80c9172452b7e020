package client

import (
	"sync"
	"time"
)

// DefaultDebounceDelay 筛选条件变化的默认防抖时间
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer 尾触发防抖，一串调用中只执行最后一次
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewDebouncer 创建防抖器，delay <= 0 时使用默认值
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Call 重新计时，到期后执行 fn
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || fn == nil {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		latest := !d.stopped && seq == d.seq
		d.mu.Unlock()
		if latest {
			fn()
		}
	})
}

// Stop 取消待执行的调用，之后的 Call 不再生效
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
