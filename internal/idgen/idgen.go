package idgen

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/blog-console/internal/config"

	"github.com/sqids/sqids-go"
)

// OrderPrefix 充值订单号前缀
const OrderPrefix = "RC"

// Generator 基于 Sqids 的短订单号生成器
type Generator struct {
	encoder *sqids.Sqids
	seq     atomic.Uint64
	now     func() time.Time
}

// New 创建生成器
func New(cfg config.IDGenConfig) (*Generator, error) {
	options := sqids.Options{MinLength: 10}
	if cfg.MinLength > 0 && cfg.MinLength <= 255 {
		options.MinLength = uint8(cfg.MinLength)
	}
	if alphabet := strings.TrimSpace(cfg.Alphabet); alphabet != "" {
		options.Alphabet = alphabet
	}
	encoder, err := sqids.New(options)
	if err != nil {
		return nil, fmt.Errorf("init sqids encoder: %w", err)
	}
	return &Generator{encoder: encoder, now: time.Now}, nil
}

// OrderNumber 由时间、用户与进程内序号编码出订单号
func (g *Generator) OrderNumber(userID uint) (string, error) {
	numbers := []uint64{
		uint64(g.now().UnixMilli()),
		uint64(userID),
		g.seq.Add(1),
	}
	id, err := g.encoder.Encode(numbers)
	if err != nil {
		return "", fmt.Errorf("encode order number: %w", err)
	}
	return OrderPrefix + id, nil
}

// Decode 还原订单号中的时间、用户与序号
func (g *Generator) Decode(orderNumber string) (time.Time, uint, uint64, error) {
	raw := strings.TrimPrefix(orderNumber, OrderPrefix)
	numbers := g.encoder.Decode(raw)
	if len(numbers) != 3 {
		return time.Time{}, 0, 0, fmt.Errorf("unexpected order number %q", orderNumber)
	}
	return time.UnixMilli(int64(numbers[0])), uint(numbers[1]), numbers[2], nil
}
