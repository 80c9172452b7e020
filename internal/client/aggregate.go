package client

import (
	"sort"

	"github.com/shopspring/decimal"
)

type revenueAccumulator struct {
	row         RevenueAggregate
	revenue     decimal.Decimal
	expenditure decimal.Decimal
	roiSum      float64
	count       int
}

func roundMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func roundRatio(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

// AggregateRevenue 按 user_id 在本地聚合收益记录，
// 金额与次数求和，ROI 取记录平均值，结果按 user_id 升序
func AggregateRevenue(records []RevenueView) []RevenueAggregate {
	byUser := make(map[uint]*revenueAccumulator)
	for _, record := range records {
		acc, ok := byUser[record.UserID]
		if !ok {
			acc = &revenueAccumulator{row: RevenueAggregate{
				UserID:   record.UserID,
				Nickname: record.Nickname,
				Avatar:   record.Avatar,
			}}
			byUser[record.UserID] = acc
		}
		acc.revenue = acc.revenue.Add(record.Revenue)
		acc.expenditure = acc.expenditure.Add(record.Expenditure)
		acc.row.TotalOrderCount += int64(record.OrderCount)
		acc.row.TotalAdCreationCount += int64(record.AdCreationCount)
		acc.roiSum += record.ROI
		acc.count++
	}

	rows := make([]RevenueAggregate, 0, len(byUser))
	for _, acc := range byUser {
		row := acc.row
		row.TotalRevenue = roundMoney(acc.revenue)
		row.TotalExpenditure = roundMoney(acc.expenditure)
		if acc.count > 0 {
			row.AverageROI = roundRatio(acc.roiSum / float64(acc.count))
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].UserID < rows[j].UserID
	})
	return rows
}

// SummarizeAggregates 仪表盘顶部合计，average_roi 为各员工平均 ROI 的均值，
// overall_roi 为总收益 / 总支出
func SummarizeAggregates(rows []RevenueAggregate) *RevenueSummary {
	summary := &RevenueSummary{EmployeeCount: len(rows)}
	revenue, expenditure := decimal.Zero, decimal.Zero
	var roiSum float64
	for _, row := range rows {
		revenue = revenue.Add(decimal.NewFromFloat(row.TotalRevenue))
		expenditure = expenditure.Add(decimal.NewFromFloat(row.TotalExpenditure))
		summary.TotalOrderCount += row.TotalOrderCount
		summary.TotalAdCreationCount += row.TotalAdCreationCount
		roiSum += row.AverageROI
	}
	if len(rows) > 0 {
		summary.AverageROI = roundRatio(roiSum / float64(len(rows)))
	}
	summary.TotalRevenue = roundMoney(revenue)
	summary.TotalExpenditure = roundMoney(expenditure)
	revenue, expenditure = revenue.Round(2), expenditure.Round(2)
	if !expenditure.IsZero() {
		summary.OverallROI = revenue.DivRound(expenditure, 4).InexactFloat64()
	}
	return summary
}
