package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// User 用户资料
type User struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Nickname    string     `json:"nickname"`
	Email       string     `json:"email"`
	Role        int        `json:"role"`
	Avatar      string     `json:"avatar"`
	Bio         string     `json:"bio"`
	Website     string     `json:"website"`
	Status      int        `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CaptchaChallenge 图片验证码
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// Blog 博客原文
type Blog struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	AuthorID  uint      `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      string    `json:"tags"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogView 列表项
type BlogView struct {
	Blog
	AuthorNickname string   `json:"author_nickname"`
	TagList        []string `json:"tag_list"`
	Excerpt        string   `json:"excerpt"`
}

// BlogDetail 详情，含渲染后的 HTML
type BlogDetail struct {
	BlogView
	ContentHTML string `json:"content_html"`
}

// BlogDirectoryEntry 目录中的一篇
type BlogDirectoryEntry struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogDirectoryMonth 按 YYYY-MM 分组
type BlogDirectoryMonth struct {
	Month string               `json:"month"`
	Blogs []BlogDirectoryEntry `json:"blogs"`
}

// CommentView 评论
type CommentView struct {
	ID        uint      `json:"id"`
	BlogID    uint      `json:"blog_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	ParentID  *uint     `json:"parent_id"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentNode 评论树节点
type CommentNode struct {
	CommentView
	Children []*CommentNode `json:"children"`
}

// RevenueRecord 收益记录
type RevenueRecord struct {
	ID                uint            `json:"id"`
	UserID            uint            `json:"user_id"`
	AdPlatform        string          `json:"ad_platform"`
	ProductCategories string          `json:"product_categories"`
	AdType            string          `json:"ad_type"`
	Region            string          `json:"region"`
	Expenditure       decimal.Decimal `json:"expenditure"`
	OrderCount        int             `json:"order_count"`
	AdCreationCount   int             `json:"ad_creation_count"`
	Revenue           decimal.Decimal `json:"revenue"`
	ROI               float64         `json:"roi"`
	RecordTime        time.Time       `json:"record_time"`
	Remark            string          `json:"remark"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// RevenueView 列表项，附带员工昵称
type RevenueView struct {
	RevenueRecord
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// RevenueAggregate 单个员工的合计
type RevenueAggregate struct {
	UserID               uint    `json:"user_id"`
	Nickname             string  `json:"nickname"`
	Avatar               string  `json:"avatar"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalExpenditure     float64 `json:"total_expenditure"`
	TotalOrderCount      int64   `json:"total_order_count"`
	TotalAdCreationCount int64   `json:"total_ad_creation_count"`
	AverageROI           float64 `json:"average_roi"`
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

// MonthlyRevenue 单月合计
type MonthlyRevenue struct {
	Month            string  `json:"month"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalExpenditure float64 `json:"total_expenditure"`
	TotalOrderCount  int64   `json:"total_order_count"`
	RecordCount      int64   `json:"record_count"`
}

// Notification 站内通知
type Notification struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RechargeTransaction 充值流水
type RechargeTransaction struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	OrderNumber     string          `json:"order_number"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	TransactionTime time.Time       `json:"transaction_time"`
	Remark          string          `json:"remark"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
