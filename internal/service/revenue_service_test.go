package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/models"
)

func TestParseFlexibleTime(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2025-03-01T10:20:30Z", time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2025-03-01T10:20:30.123Z", time.Date(2025, 3, 1, 10, 20, 30, 123000000, time.UTC)},
		{"2025-03-01T10:20:30+08:00", time.Date(2025, 3, 1, 2, 20, 30, 0, time.UTC)},
		{"2025-03-01T10:20", time.Date(2025, 3, 1, 10, 20, 0, 0, time.Local)},
		{"2025-03-01 10:20:30", time.Date(2025, 3, 1, 10, 20, 30, 0, time.Local)},
		{"2025-03-01 10:20", time.Date(2025, 3, 1, 10, 20, 0, 0, time.Local)},
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		got, err := ParseFlexibleTime(tc.input)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.input, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parse %q want %v got %v", tc.input, tc.want, got)
		}
	}
	if _, err := ParseFlexibleTime("01/03/2025"); !errors.Is(err, ErrRevenueTimeInvalid) {
		t.Fatalf("bad time want ErrRevenueTimeInvalid got %v", err)
	}
	before := time.Now().Add(-time.Second)
	if now, err := ParseFlexibleTime(""); err != nil || now.Before(before) {
		t.Fatalf("empty time should default to now, got %v %v", now, err)
	}
}

func TestParseDateBound(t *testing.T) {
	start, err := ParseDateBound("2025-03-01", false)
	if err != nil || !start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected start bound: %v %v", start, err)
	}
	end, err := ParseDateBound("2025-03-31T16:00:00.000Z", true)
	if err != nil {
		t.Fatalf("parse end failed: %v", err)
	}
	if end.Day() != 31 || end.Hour() != 23 || end.Minute() != 59 {
		t.Fatalf("end bound should be end of day, got %v", end)
	}
	if bound, err := ParseDateBound("", true); bound != nil || err != nil {
		t.Fatalf("empty bound want nil got %v %v", bound, err)
	}
	if _, err := ParseDateBound("March", false); !errors.Is(err, ErrDateInvalid) {
		t.Fatalf("bad bound want ErrDateInvalid got %v", err)
	}
}

func TestRevenueCreateComputesROI(t *testing.T) {
	env := setupServiceTest(t)
	user := env.createUser(t, "mk", constants.RoleMarketer)
	ctx := context.Background()

	record, err := env.revenue.Create(ctx, user.ID, RevenueInput{
		AdPlatform:  "tiktok",
		Expenditure: models.NewMoney(300),
		Revenue:     models.NewMoney(1000),
		OrderCount:  12,
		RecordTime:  "2025-03-01 10:00",
	})
	if err != nil {
		t.Fatalf("create revenue failed: %v", err)
	}
	if record.ROI != 3.3333 {
		t.Fatalf("roi want 3.3333 got %v", record.ROI)
	}

	zero, err := env.revenue.Create(ctx, user.ID, RevenueInput{Revenue: models.NewMoney(50)})
	if err != nil {
		t.Fatalf("create revenue failed: %v", err)
	}
	if zero.ROI != 0 {
		t.Fatalf("roi with zero expenditure want 0 got %v", zero.ROI)
	}
	if time.Since(zero.RecordTime) > time.Minute {
		t.Fatalf("record time should default to now, got %v", zero.RecordTime)
	}

	if _, err := env.revenue.Create(ctx, user.ID, RevenueInput{Expenditure: models.NewMoney(-1)}); !errors.Is(err, ErrRevenueAmountInvalid) {
		t.Fatalf("negative amount want ErrRevenueAmountInvalid got %v", err)
	}
	if _, err := env.revenue.Create(ctx, user.ID, RevenueInput{OrderCount: -2}); !errors.Is(err, ErrRevenueAmountInvalid) {
		t.Fatalf("negative count want ErrRevenueAmountInvalid got %v", err)
	}
	if _, err := env.revenue.Create(ctx, user.ID, RevenueInput{RecordTime: "yesterday"}); !errors.Is(err, ErrRevenueTimeInvalid) {
		t.Fatalf("bad time want ErrRevenueTimeInvalid got %v", err)
	}
}

func TestRevenueOwnership(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.createUser(t, "owner", constants.RoleMarketer)
	other := env.createUser(t, "other", constants.RoleMarketer)
	ctx := context.Background()

	record, err := env.revenue.Create(ctx, owner.ID, RevenueInput{Expenditure: models.NewMoney(10), Revenue: models.NewMoney(20), RecordTime: "2025-03-01"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := env.revenue.Get(other.ID, record.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get by other want ErrNotFound got %v", err)
	}
	if _, err := env.revenue.Update(ctx, other.ID, record.ID, RevenueInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update by other want ErrForbidden got %v", err)
	}
	if err := env.revenue.Delete(ctx, other.ID, record.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by other want ErrForbidden got %v", err)
	}

	updated, err := env.revenue.Update(ctx, owner.ID, record.ID, RevenueInput{Expenditure: models.NewMoney(10), Revenue: models.NewMoney(55)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ROI != 5.5 {
		t.Fatalf("roi want 5.5 got %v", updated.ROI)
	}
	if !updated.RecordTime.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("empty record time should keep the old value, got %v", updated.RecordTime)
	}
	if err := env.revenue.Delete(ctx, owner.ID, record.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func seedRevenue(t *testing.T, env *serviceTestEnv, userID uint, at string, expenditure, revenue float64, orders int) {
	t.Helper()
	if _, err := env.revenue.Create(context.Background(), userID, RevenueInput{
		Expenditure: models.NewMoney(expenditure),
		Revenue:     models.NewMoney(revenue),
		OrderCount:  orders,
		RecordTime:  at,
	}); err != nil {
		t.Fatalf("seed revenue failed: %v", err)
	}
}

func TestRevenueListFiltersAndAggregate(t *testing.T) {
	env := setupServiceTest(t)
	a := env.createUser(t, "mka", constants.RoleMarketer)
	b := env.createUser(t, "mkb", constants.RoleMarketer)
	ctx := context.Background()
	seedRevenue(t, env, a.ID, "2025-03-01 09:00", 100, 200, 1)
	seedRevenue(t, env, a.ID, "2025-03-31 23:30", 100, 400, 2)
	seedRevenue(t, env, b.ID, "2025-03-15 12:00", 50, 1000, 5)
	seedRevenue(t, env, b.ID, "2025-04-01 00:00", 10, 10, 1)

	views, total, err := env.revenue.List(RevenueQuery{Page: 1, Limit: 10, StartDate: "2025-03-01", EndDate: "2025-03-31"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(views) != 3 {
		t.Fatalf("march records want 3 got total=%d len=%d", total, len(views))
	}
	if views[0].Nickname != "MKA" {
		t.Fatalf("newest record should belong to MKA, got %s", views[0].Nickname)
	}

	mine, total, err := env.revenue.ListMine(b.ID, RevenueQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if total != 2 || len(mine) != 2 {
		t.Fatalf("mine want 2 got %d", total)
	}

	rows, err := env.revenue.Aggregate(ctx, RevenueQuery{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("aggregate rows want 2 got %d", len(rows))
	}
	if rows[0].UserID != b.ID || rows[0].TotalRevenue != 1000 || rows[0].TotalOrderCount != 5 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].TotalRevenue != 600 || rows[1].TotalExpenditure != 200 || rows[1].AverageROI != 3 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}

	summary, err := env.revenue.Summary(ctx, RevenueQuery{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalRevenue != 1600 || summary.TotalExpenditure != 250 || summary.EmployeeCount != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.AverageROI != 11.5 || summary.OverallROI != 6.4 {
		t.Fatalf("unexpected summary roi: %+v", summary)
	}

	if _, _, err := env.revenue.List(RevenueQuery{StartDate: "bad"}); !errors.Is(err, ErrDateInvalid) {
		t.Fatalf("bad date want ErrDateInvalid got %v", err)
	}
}

func TestRevenueMonthlyFillsYear(t *testing.T) {
	env := setupServiceTest(t)
	a := env.createUser(t, "mka", constants.RoleMarketer)
	seedRevenue(t, env, a.ID, "2025-01-10 10:00", 10, 30, 1)
	seedRevenue(t, env, a.ID, "2025-01-20 10:00", 10, 30, 1)
	seedRevenue(t, env, a.ID, "2025-03-05 10:00", 5, 5, 2)
	seedRevenue(t, env, a.ID, "2024-12-31 23:00", 99, 99, 9)

	months, err := env.revenue.Monthly(2025, 0)
	if err != nil {
		t.Fatalf("monthly failed: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("months want 12 got %d", len(months))
	}
	if months[0].Month != "2025-01" || months[0].TotalRevenue != 60 || months[0].RecordCount != 2 {
		t.Fatalf("unexpected january: %+v", months[0])
	}
	if months[1].RecordCount != 0 || months[2].TotalOrderCount != 2 {
		t.Fatalf("unexpected feb/march: %+v %+v", months[1], months[2])
	}
}

func TestSummarizeAggregatesEmpty(t *testing.T) {
	summary := SummarizeAggregates(nil)
	if summary.EmployeeCount != 0 || summary.AverageROI != 0 || summary.OverallROI != 0 {
		t.Fatalf("unexpected empty summary: %+v", summary)
	}
}
