package client

import (
	"context"

	"github.com/blog-console/internal/logger"

	"golang.org/x/sync/errgroup"
)

// Dashboard 收益仪表盘数据
type Dashboard struct {
	Aggregates []RevenueAggregate
	Summary    *RevenueSummary
	Records    Page[RevenueView]
	// LocalAggregate 服务端聚合不可用，改用本页记录聚合
	LocalAggregate bool
}

// Dashboard 并发拉取聚合与第一页记录
func (c *Client) Dashboard(ctx context.Context, filter RevenueFilter) (*Dashboard, error) {
	filter.Page = 1
	var (
		aggregates []RevenueAggregate
		aggErr     error
		records    Page[RevenueView]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// 聚合失败不影响记录列表
		aggregates, aggErr = c.RevenueAggregate(gctx, filter)
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = c.ListRevenue(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard := &Dashboard{Records: records}
	if aggErr != nil {
		if IsUnauthorized(aggErr) {
			return nil, aggErr
		}
		logger.Debugw("client_dashboard_aggregate_fallback", "error", aggErr)
		aggregates = AggregateRevenue(records.Items)
		dashboard.LocalAggregate = true
	}
	dashboard.Aggregates = aggregates
	dashboard.Summary = SummarizeAggregates(aggregates)
	return dashboard, nil
}
