package service

import (
	"strings"
	"time"

	"github.com/blog-console/internal/constants"
)

// 带时区的格式按原时区解析，其余按本地时间
var zonedTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
}

var localTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	constants.DateTimeLayout,
	"2006-01-02 15:04",
	constants.DateLayout,
}

// ParseFlexibleTime 解析记录时间，空串返回当前时间
func ParseFlexibleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	for _, layout := range zonedTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(time.Local), nil
		}
	}
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrRevenueTimeInvalid
}

// ParseDateBound 解析筛选日期，接受 YYYY-MM-DD 或完整时间戳（取日期部分）。
// end 为 true 时返回当天最后一刻。
func ParseDateBound(value string, end bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if len(value) > len(constants.DateLayout) {
		value = value[:len(constants.DateLayout)]
	}
	day, err := time.ParseInLocation(constants.DateLayout, value, time.Local)
	if err != nil {
		return nil, ErrDateInvalid
	}
	if end {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &day, nil
}
