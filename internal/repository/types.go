package repository

import "time"

// UserListFilter 用户列表筛选
type UserListFilter struct {
	Page    int
	Limit   int
	Role    *int // 精确角色
	MinRole *int // role >= MinRole
	Keyword string
	Status  *int
}

// BlogListFilter 博客列表筛选
type BlogListFilter struct {
	Page     int
	Limit    int
	AuthorID uint
	Status   string
	From     *time.Time // created_at >= From
	To       *time.Time // created_at < To
}

// BlogDirectoryRow 博客目录行
type BlogDirectoryRow struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentListFilter 评论列表筛选
type CommentListFilter struct {
	Page        int
	Limit       int
	BlogID      uint
	UserID      uint
	OldestFirst bool
}

// RevenueListFilter 收益记录筛选
type RevenueListFilter struct {
	Page   int
	Limit  int
	UserID uint
	From   *time.Time // record_time >= From
	To     *time.Time // record_time <= To
}

// RevenueAggregateRow 按员工聚合的收益
type RevenueAggregateRow struct {
	UserID               uint    `json:"user_id"`
	Nickname             string  `json:"nickname"`
	Avatar               string  `json:"avatar"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalExpenditure     float64 `json:"total_expenditure"`
	TotalOrderCount      int64   `json:"total_order_count"`
	TotalAdCreationCount int64   `json:"total_ad_creation_count"`
	AverageROI           float64 `json:"average_roi"`
}

// RevenueMonthlyRow 月度收益汇总
type RevenueMonthlyRow struct {
	Month            string  `json:"month"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalExpenditure float64 `json:"total_expenditure"`
	TotalOrderCount  int64   `json:"total_order_count"`
	RecordCount      int64   `json:"record_count"`
}

// NotificationListFilter 通知列表筛选
type NotificationListFilter struct {
	Page   int
	Limit  int
	UserID uint
	Status string
}

// RechargeListFilter 充值记录筛选
type RechargeListFilter struct {
	Page   int
	Limit  int
	UserID uint // 0 表示不限
	Status string
}
