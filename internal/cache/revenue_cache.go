package cache

import (
	"context"
	"fmt"
)

const revenueAggregateVersionKey = "revenue:aggregate:version"

// RevenueAggregateKey 聚合缓存键，包含版本号，写入后整体失效
func RevenueAggregateKey(ctx context.Context, filterKey string) (string, error) {
	version, err := GetInt64(ctx, revenueAggregateVersionKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("revenue:aggregate:v%d:%s", version, filterKey), nil
}

// BumpRevenueAggregateVersion 使全部聚合缓存失效
func BumpRevenueAggregateVersion(ctx context.Context) error {
	_, err := Incr(ctx, revenueAggregateVersionKey)
	return err
}
