package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func revenueView(userID uint, nickname string, revenue, expenditure float64, orders int) RevenueView {
	record := RevenueRecord{
		UserID:      userID,
		Revenue:     decimal.NewFromFloat(revenue),
		Expenditure: decimal.NewFromFloat(expenditure),
		OrderCount:  orders,
	}
	if !record.Expenditure.IsZero() {
		record.ROI = record.Revenue.DivRound(record.Expenditure, 4).InexactFloat64()
	}
	return RevenueView{RevenueRecord: record, Nickname: nickname}
}

func TestAggregateRevenue(t *testing.T) {
	rows := AggregateRevenue([]RevenueView{
		revenueView(7, "lj", 300, 100, 3),
		revenueView(2, "hkx", 50.55, 100, 1),
		revenueView(7, "lj", 100, 100, 2),
	})
	if len(rows) != 2 || rows[0].UserID != 2 || rows[1].UserID != 7 {
		t.Fatalf("rows should be ordered by user id: %+v", rows)
	}
	if rows[1].TotalRevenue != 400 || rows[1].TotalExpenditure != 200 || rows[1].TotalOrderCount != 5 {
		t.Fatalf("unexpected totals: %+v", rows[1])
	}
	if rows[1].AverageROI != 2 {
		t.Fatalf("average roi want 2 got %v", rows[1].AverageROI)
	}
	if rows[0].Nickname != "hkx" || rows[0].TotalRevenue != 50.55 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}

	summary := SummarizeAggregates(rows)
	if summary.EmployeeCount != 2 || summary.TotalRevenue != 450.55 || summary.TotalOrderCount != 6 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.OverallROI != 1.5018 {
		t.Fatalf("overall roi want 1.5018 got %v", summary.OverallROI)
	}
	if len(AggregateRevenue(nil)) != 0 {
		t.Fatalf("empty input should give empty rows")
	}
}

func TestDashboardFallsBackToLocalAggregate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/employee-revenue/aggregate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status_code":500,"msg":"aggregate failed","data":null}`))
	})
	mux.HandleFunc("/api/employee-revenue", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "tok" {
			t.Errorf("authorization header want tok got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status_code":0,"msg":"success","data":[
			{"id":1,"user_id":3,"revenue":"200.00","expenditure":"100.00","order_count":2,"roi":2},
			{"id":2,"user_id":3,"revenue":"100.00","expenditure":"100.00","order_count":1,"roi":1}
		],"pagination":{"page":1,"limit":10,"total":2,"totalPages":1}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL+"/api", WithToken("tok"))
	dashboard, err := c.Dashboard(context.Background(), RevenueFilter{})
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if !dashboard.LocalAggregate {
		t.Fatalf("should fall back to local aggregate")
	}
	if len(dashboard.Aggregates) != 1 || dashboard.Aggregates[0].TotalRevenue != 300 || dashboard.Aggregates[0].AverageROI != 1.5 {
		t.Fatalf("unexpected local aggregate: %+v", dashboard.Aggregates)
	}
	if dashboard.Records.Pagination.Total != 2 || dashboard.Summary.TotalOrderCount != 3 {
		t.Fatalf("unexpected dashboard: %+v", dashboard.Records.Pagination)
	}
}
