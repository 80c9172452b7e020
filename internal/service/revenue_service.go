package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blog-console/internal/cache"
	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/queue"
	"github.com/blog-console/internal/repository"
)

const revenueAggregateTTL = 60 * time.Second

// RevenueService 员工收益录入、聚合与报表
type RevenueService struct {
	repo  repository.RevenueRepository
	queue *queue.Client
}

// NewRevenueService 创建收益服务
func NewRevenueService(repo repository.RevenueRepository, queueClient *queue.Client) *RevenueService {
	return &RevenueService{repo: repo, queue: queueClient}
}

// RevenueInput 收益记录录入
type RevenueInput struct {
	AdPlatform        string `validate:"max=64"`
	ProductCategories string `validate:"max=128"`
	AdType            string `validate:"max=64"`
	Region            string `validate:"max=64"`
	Expenditure       models.Money
	OrderCount        int
	AdCreationCount   int
	Revenue           models.Money
	RecordTime        string
	Remark            string `validate:"max=255"`
}

// RevenueQuery 列表与聚合筛选
type RevenueQuery struct {
	Page      int
	Limit     int
	StartDate string
	EndDate   string
	UserID    uint
}

// RevenueView 收益记录及员工信息
type RevenueView struct {
	models.EmployeeRevenue
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// RevenueSummary 全员合计
type RevenueSummary struct {
	TotalRevenue         float64 `json:"total_revenue"`
	TotalExpenditure     float64 `json:"total_expenditure"`
	TotalOrderCount      int64   `json:"total_order_count"`
	TotalAdCreationCount int64   `json:"total_ad_creation_count"`
	AverageROI           float64 `json:"average_roi"`
	OverallROI           float64 `json:"overall_roi"`
	EmployeeCount        int     `json:"employee_count"`
}

func (in RevenueInput) check() error {
	if err := ValidateDTO(in); err != nil {
		return err
	}
	if in.Expenditure.IsNegative() || in.Revenue.IsNegative() || in.OrderCount < 0 || in.AdCreationCount < 0 {
		return ErrRevenueAmountInvalid
	}
	return nil
}

func (in RevenueInput) apply(record *models.EmployeeRevenue) {
	record.AdPlatform = strings.TrimSpace(in.AdPlatform)
	record.ProductCategories = strings.TrimSpace(in.ProductCategories)
	record.AdType = strings.TrimSpace(in.AdType)
	record.Region = strings.TrimSpace(in.Region)
	record.Expenditure = models.NewMoneyFromDecimal(in.Expenditure.Decimal)
	record.Revenue = models.NewMoneyFromDecimal(in.Revenue.Decimal)
	record.OrderCount = in.OrderCount
	record.AdCreationCount = in.AdCreationCount
	record.Remark = strings.TrimSpace(in.Remark)
	record.RefreshROI()
}

func (q RevenueQuery) toFilter() (repository.RevenueListFilter, error) {
	from, err := ParseDateBound(q.StartDate, false)
	if err != nil {
		return repository.RevenueListFilter{}, err
	}
	to, err := ParseDateBound(q.EndDate, true)
	if err != nil {
		return repository.RevenueListFilter{}, err
	}
	return repository.RevenueListFilter{
		Page:   q.Page,
		Limit:  q.Limit,
		UserID: q.UserID,
		From:   from,
		To:     to,
	}, nil
}

// cacheKey 聚合缓存的筛选维度
func (q RevenueQuery) cacheKey(filter repository.RevenueListFilter) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(constants.DateLayout)
	}
	return fmt.Sprintf("%s:%s:%d", format(filter.From), format(filter.To), filter.UserID)
}

func toRevenueView(record models.EmployeeRevenue) RevenueView {
	view := RevenueView{EmployeeRevenue: record}
	if record.User != nil {
		view.Nickname = record.User.Nickname
		view.Avatar = record.User.Avatar
	}
	return view
}

// Create 录入收益，ROI 由服务端计算
func (s *RevenueService) Create(ctx context.Context, userID uint, input RevenueInput) (*models.EmployeeRevenue, error) {
	if err := input.check(); err != nil {
		return nil, err
	}
	recordTime, err := ParseFlexibleTime(input.RecordTime)
	if err != nil {
		return nil, err
	}
	record := &models.EmployeeRevenue{UserID: userID, RecordTime: recordTime}
	input.apply(record)
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "create")
	return record, nil
}

func (s *RevenueService) getOwned(userID, id uint, notOwner error) (*models.EmployeeRevenue, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if record.UserID != userID {
		return nil, notOwner
	}
	return record, nil
}

// Update 仅本人可修改，记录时间留空时保持不变
func (s *RevenueService) Update(ctx context.Context, userID, id uint, input RevenueInput) (*models.EmployeeRevenue, error) {
	if err := input.check(); err != nil {
		return nil, err
	}
	record, err := s.getOwned(userID, id, ErrForbidden)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.RecordTime) != "" {
		recordTime, err := ParseFlexibleTime(input.RecordTime)
		if err != nil {
			return nil, err
		}
		record.RecordTime = recordTime
	}
	input.apply(record)
	if err := s.repo.Update(record); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "update")
	return record, nil
}

// Delete 仅本人可删除
func (s *RevenueService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.getOwned(userID, id, ErrForbidden); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.afterWrite(ctx, "delete")
	return nil
}

// Get 仅本人可见，他人记录按不存在处理
func (s *RevenueService) Get(userID, id uint) (*models.EmployeeRevenue, error) {
	return s.getOwned(userID, id, ErrNotFound)
}

// List 全员收益记录
func (s *RevenueService) List(query RevenueQuery) ([]RevenueView, int64, error) {
	filter, err := query.toFilter()
	if err != nil {
		return nil, 0, err
	}
	records, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]RevenueView, 0, len(records))
	for _, record := range records {
		views = append(views, toRevenueView(record))
	}
	return views, total, nil
}

// ListMine 当前用户的收益记录
func (s *RevenueService) ListMine(userID uint, query RevenueQuery) ([]RevenueView, int64, error) {
	query.UserID = userID
	return s.List(query)
}

// Aggregate 按员工聚合，结果缓存 60 秒
func (s *RevenueService) Aggregate(ctx context.Context, query RevenueQuery) ([]repository.RevenueAggregateRow, error) {
	filter, err := query.toFilter()
	if err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = 0, 0

	key, keyErr := cache.RevenueAggregateKey(ctx, query.cacheKey(filter))
	if keyErr != nil {
		logger.Warnw("revenue_aggregate_cache_key_failed", "error", keyErr)
	}
	if keyErr == nil {
		var cached []repository.RevenueAggregateRow
		hit, err := cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warnw("revenue_aggregate_cache_get_failed", "key", key, "error", err)
		}
		if hit {
			return cached, nil
		}
	}

	rows, err := s.repo.Aggregate(filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.RevenueAggregateRow{}
	}
	if keyErr == nil {
		if err := cache.SetJSON(ctx, key, rows, revenueAggregateTTL); err != nil {
			logger.Warnw("revenue_aggregate_cache_set_failed", "key", key, "error", err)
		}
	}
	return rows, nil
}

// Summary 全员合计，平均 ROI 为各员工平均 ROI 的均值
func (s *RevenueService) Summary(ctx context.Context, query RevenueQuery) (*RevenueSummary, error) {
	rows, err := s.Aggregate(ctx, query)
	if err != nil {
		return nil, err
	}
	return SummarizeAggregates(rows), nil
}

// SummarizeAggregates 汇总聚合行
func SummarizeAggregates(rows []repository.RevenueAggregateRow) *RevenueSummary {
	summary := &RevenueSummary{EmployeeCount: len(rows)}
	var roiSum float64
	for _, row := range rows {
		summary.TotalRevenue += row.TotalRevenue
		summary.TotalExpenditure += row.TotalExpenditure
		summary.TotalOrderCount += row.TotalOrderCount
		summary.TotalAdCreationCount += row.TotalAdCreationCount
		roiSum += row.AverageROI
	}
	if len(rows) > 0 {
		summary.AverageROI = models.RoundRatio(roiSum / float64(len(rows)))
	}
	summary.TotalRevenue = models.NewMoney(summary.TotalRevenue).Float64()
	summary.TotalExpenditure = models.NewMoney(summary.TotalExpenditure).Float64()
	summary.OverallROI = models.ComputeROI(models.NewMoney(summary.TotalRevenue), models.NewMoney(summary.TotalExpenditure))
	return summary
}

// Monthly 指定年份 12 个月的汇总，无数据的月份补零
func (s *RevenueService) Monthly(year int, userID uint) ([]repository.RevenueMonthlyRow, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	rows, err := s.repo.Monthly(start, start.AddDate(1, 0, 0), userID)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]repository.RevenueMonthlyRow, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}
	result := make([]repository.RevenueMonthlyRow, 0, 12)
	for m := 0; m < 12; m++ {
		key := start.AddDate(0, m, 0).Format(constants.MonthLayout)
		row, ok := byMonth[key]
		if !ok {
			row = repository.RevenueMonthlyRow{Month: key}
		}
		row.TotalRevenue = models.NewMoney(row.TotalRevenue).Float64()
		row.TotalExpenditure = models.NewMoney(row.TotalExpenditure).Float64()
		result = append(result, row)
	}
	return result, nil
}

// RefreshAggregateCache 预热默认（无筛选）聚合缓存
func (s *RevenueService) RefreshAggregateCache(ctx context.Context) error {
	if !cache.Enabled() {
		return nil
	}
	_, err := s.Aggregate(ctx, RevenueQuery{})
	return err
}

// afterWrite 写入后使聚合缓存失效并异步预热
func (s *RevenueService) afterWrite(ctx context.Context, reason string) {
	if err := cache.BumpRevenueAggregateVersion(ctx); err != nil {
		logger.Warnw("revenue_aggregate_cache_bump_failed", "reason", reason, "error", err)
	}
	if s.queue == nil || !s.queue.Enabled() {
		return
	}
	if err := s.queue.EnqueueRevenueAggregateRefresh(queue.RevenueAggregateRefreshPayload{Reason: reason}); err != nil {
		logger.Warnw("revenue_aggregate_refresh_enqueue_failed", "reason", reason, "error", err)
	}
}
