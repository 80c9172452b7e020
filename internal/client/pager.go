package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrStaleResponse 响应返回时已有更新的请求发出
var ErrStaleResponse = errors.New("stale response")

// FetchFunc 按页码拉取数据
type FetchFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// Pager 分页状态。每次 Load 领取一个递增的代号，
// 只有代号仍是最新的响应才会写入状态。
type Pager[T any] struct {
	fetch FetchFunc[T]
	gen   atomic.Uint64

	mu      sync.RWMutex
	current Page[T]
	page    int
}

// NewPager 创建分页器
func NewPager[T any](fetch FetchFunc[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch}
}

// Load 拉取指定页，被更新请求取代时返回 ErrStaleResponse
func (p *Pager[T]) Load(ctx context.Context, page int) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	token := p.gen.Add(1)
	result, err := p.fetch(ctx, page)
	if p.gen.Load() != token {
		return Page[T]{}, ErrStaleResponse
	}
	if err != nil {
		return Page[T]{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen.Load() != token {
		return Page[T]{}, ErrStaleResponse
	}
	p.current = result
	p.page = page
	return result, nil
}

// Next 加载下一页，已到末页时返回当前页
func (p *Pager[T]) Next(ctx context.Context) (Page[T], error) {
	p.mu.RLock()
	page, totalPages := p.page, p.current.Pagination.TotalPages
	current := p.current
	p.mu.RUnlock()
	if page > 0 && totalPages > 0 && int64(page) >= totalPages {
		return current, nil
	}
	return p.Load(ctx, page+1)
}

// Current 当前已应用的页
func (p *Pager[T]) Current() (Page[T], int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.page
}

// Reset 清空状态，并使进行中的请求失效
func (p *Pager[T]) Reset() {
	p.gen.Add(1)
	p.mu.Lock()
	p.current = Page[T]{}
	p.page = 0
	p.mu.Unlock()
}
