package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// SignInResult 登录返回
type SignInResult struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Role      int       `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterRequest 注册
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email"`
}

// CaptchaAnswer 登录验证码
type CaptchaAnswer struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type signInRequest struct {
	Username       string         `json:"username"`
	Password       string         `json:"password"`
	CaptchaPayload *CaptchaAnswer `json:"captcha_payload,omitempty"`
}

// ProfileUpdate 个人资料，nil 字段不修改
type ProfileUpdate struct {
	Nickname    *string `json:"nickname,omitempty"`
	Email       *string `json:"email,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Website     *string `json:"website,omitempty"`
	OldPassword string  `json:"old_password,omitempty"`
	Password    string  `json:"password,omitempty"`
}

// CreateUserRequest 后台创建用户
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     int    `json:"role"`
}

// UpdateUserRequest 后台更新用户
type UpdateUserRequest struct {
	Nickname *string `json:"nickname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *int    `json:"role,omitempty"`
	Status   *int    `json:"status,omitempty"`
	Password *string `json:"password,omitempty"`
}

// BlogRequest 博客
type BlogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
	Tags     string `json:"tags,omitempty"`
	Status   string `json:"status,omitempty"`
}

// BlogOverview 我的博客页
type BlogOverview struct {
	Blogs      []BlogView           `json:"blogs"`
	Pagination Pagination           `json:"pagination"`
	Directory  []BlogDirectoryMonth `json:"directory"`
	Profile    *User                `json:"profile"`
}

// CommentRequest 评论
type CommentRequest struct {
	BlogID   uint   `json:"blog_id,omitempty"`
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// RevenueRequest 收益记录
type RevenueRequest struct {
	AdPlatform        string          `json:"ad_platform"`
	ProductCategories string          `json:"product_categories"`
	AdType            string          `json:"ad_type"`
	Region            string          `json:"region"`
	Expenditure       decimal.Decimal `json:"expenditure"`
	OrderCount        int             `json:"order_count"`
	AdCreationCount   int             `json:"ad_creation_count"`
	Revenue           decimal.Decimal `json:"revenue"`
	RecordTime        string          `json:"record_time,omitempty"`
	Remark            string          `json:"remark,omitempty"`
}

// RevenueFilter 收益筛选，日期为 YYYY-MM-DD
type RevenueFilter struct {
	Page      int
	Limit     int
	StartDate string
	EndDate   string
	UserID    uint
}

func (f RevenueFilter) query() map[string]string {
	q := pageQuery(f.Page, f.Limit)
	if f.StartDate != "" {
		q["startDate"] = f.StartDate
	}
	if f.EndDate != "" {
		q["endDate"] = f.EndDate
	}
	if f.UserID > 0 {
		q["userId"] = strconv.FormatUint(uint64(f.UserID), 10)
	}
	return q
}

// MonthlyReport 年度按月汇总
type MonthlyReport struct {
	Year   int              `json:"year"`
	Months []MonthlyRevenue `json:"months"`
}

// NotificationRequest 通知
type NotificationRequest struct {
	UserID  uint   `json:"user_id,omitempty"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content"`
}

// NotificationUpdate 通知更新
type NotificationUpdate struct {
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// RechargeRequest 充值记录
type RechargeRequest struct {
	UserID          uint            `json:"user_id,omitempty"`
	OrderNumber     string          `json:"order_number,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	TransactionTime string          `json:"transaction_time,omitempty"`
	Remark          string          `json:"remark,omitempty"`
}

// RechargeUpdate 充值记录更新
type RechargeUpdate struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
	Status          *string          `json:"status,omitempty"`
	TransactionTime *string          `json:"transaction_time,omitempty"`
	Remark          *string          `json:"remark,omitempty"`
}

func pageQuery(page, limit int) map[string]string {
	q := map[string]string{}
	if page > 0 {
		q["page"] = strconv.Itoa(page)
	}
	if limit > 0 {
		q["limit"] = strconv.Itoa(limit)
	}
	return q
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}

// ---- 账号 ----

// Register 注册普通用户
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if _, err := c.call(ctx, http.MethodPost, "/user/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn 登录并保存 token
func (c *Client) SignIn(ctx context.Context, username, password string, captcha *CaptchaAnswer) (*SignInResult, error) {
	var result SignInResult
	body := signInRequest{Username: username, Password: password, CaptchaPayload: captcha}
	if _, err := c.call(ctx, http.MethodPost, "/user/signin", nil, body, &result); err != nil {
		return nil, err
	}
	c.tokens.Set(result.Token)
	return &result, nil
}

// SignOut 清除本地 token
func (c *Client) SignOut() {
	c.tokens.Set("")
}

// Captcha 获取登录验证码
func (c *Client) Captcha(ctx context.Context) (*CaptchaChallenge, error) {
	var challenge CaptchaChallenge
	if _, err := c.call(ctx, http.MethodGet, "/user/captcha", nil, nil, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Profile 当前用户资料
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.call(ctx, http.MethodGet, "/user/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 修改个人资料
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdate) (*User, error) {
	var user User
	if _, err := c.call(ctx, http.MethodPut, "/user/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListMarketers 全部投放员
func (c *Client) ListMarketers(ctx context.Context) ([]User, error) {
	var users []User
	if _, err := c.call(ctx, http.MethodGet, "/user/all", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListUsers 后台用户列表
func (c *Client) ListUsers(ctx context.Context, keyword string, page, limit int) (Page[User], error) {
	q := pageQuery(page, limit)
	if keyword != "" {
		q["keyword"] = keyword
	}
	return getPage[User](ctx, c, "/user/admin/all", q)
}

// CreateUser 后台创建用户
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if _, err := c.call(ctx, http.MethodPost, "/user/admin/create", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser 后台更新用户
func (c *Client) UpdateUser(ctx context.Context, id uint, req UpdateUserRequest) (*User, error) {
	var user User
	if _, err := c.call(ctx, http.MethodPut, idPath("/user/admin/%d", id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser 删除用户
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	_, err := c.call(ctx, http.MethodDelete, idPath("/user/%d", id), nil, nil, nil)
	return err
}

// ---- 博客 ----

// CreateBlog 发布博客
func (c *Client) CreateBlog(ctx context.Context, req BlogRequest) (*Blog, error) {
	var blog Blog
	if _, err := c.call(ctx, http.MethodPost, "/blog", nil, req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog 修改博客
func (c *Client) UpdateBlog(ctx context.Context, id uint, req BlogRequest) (*Blog, error) {
	var blog Blog
	if _, err := c.call(ctx, http.MethodPut, idPath("/blog/%d", id), nil, req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog 删除博客
func (c *Client) DeleteBlog(ctx context.Context, id uint) error {
	_, err := c.call(ctx, http.MethodDelete, idPath("/blog/%d", id), nil, nil, nil)
	return err
}

// GetBlog 博客详情
func (c *Client) GetBlog(ctx context.Context, id uint) (*BlogDetail, error) {
	var detail BlogDetail
	if _, err := c.call(ctx, http.MethodGet, idPath("/blog/%d", id), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// BlogFeed 公开博客流，date 为 YYYY-MM-DD 时只看当天
func (c *Client) BlogFeed(ctx context.Context, page int, date string) (Page[BlogView], error) {
	q := pageQuery(page, 0)
	if date != "" {
		q["date"] = date
	}
	return getPage[BlogView](ctx, c, "/blog/paginated", q)
}

// MyBlogs 我的博客
func (c *Client) MyBlogs(ctx context.Context, page, limit int) (Page[BlogView], error) {
	return getPage[BlogView](ctx, c, "/blog/user", pageQuery(page, limit))
}

// BlogDirectory 我的博客按月目录
func (c *Client) BlogDirectory(ctx context.Context) ([]BlogDirectoryMonth, error) {
	var directory []BlogDirectoryMonth
	if _, err := c.call(ctx, http.MethodGet, "/blog/directory", nil, nil, &directory); err != nil {
		return nil, err
	}
	return directory, nil
}

// BlogOverview 我的博客页聚合数据
func (c *Client) BlogOverview(ctx context.Context, page int) (*BlogOverview, error) {
	var overview BlogOverview
	if _, err := c.call(ctx, http.MethodGet, "/blog/my", pageQuery(page, 0), nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// ---- 评论 ----

// CreateComment 发表评论
func (c *Client) CreateComment(ctx context.Context, req CommentRequest) (*CommentView, error) {
	var view CommentView
	if _, err := c.call(ctx, http.MethodPost, "/comment", nil, req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateComment 修改评论
func (c *Client) UpdateComment(ctx context.Context, id uint, req CommentRequest) (*CommentView, error) {
	var view CommentView
	if _, err := c.call(ctx, http.MethodPut, idPath("/comment/%d", id), nil, req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// DeleteComment 删除评论
func (c *Client) DeleteComment(ctx context.Context, id uint) error {
	_, err := c.call(ctx, http.MethodDelete, idPath("/comment/%d", id), nil, nil, nil)
	return err
}

// GetComment 评论详情
func (c *Client) GetComment(ctx context.Context, id uint) (*CommentView, error) {
	var view CommentView
	if _, err := c.call(ctx, http.MethodGet, idPath("/comment/%d", id), nil, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// ListComments 全部评论
func (c *Client) ListComments(ctx context.Context, page, limit int) (Page[CommentView], error) {
	return getPage[CommentView](ctx, c, "/comment", pageQuery(page, limit))
}

// ListBlogComments 某篇博客的评论
func (c *Client) ListBlogComments(ctx context.Context, blogID uint, page, limit int) (Page[CommentView], error) {
	return getPage[CommentView](ctx, c, idPath("/comment/blog/%d", blogID), pageQuery(page, limit))
}

// CommentTree 某篇博客的评论树
func (c *Client) CommentTree(ctx context.Context, blogID uint) ([]*CommentNode, error) {
	var tree []*CommentNode
	if _, err := c.call(ctx, http.MethodGet, idPath("/comment/blog/%d/tree", blogID), nil, nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// ---- 收益 ----

// CreateRevenue 录入收益
func (c *Client) CreateRevenue(ctx context.Context, req RevenueRequest) (*RevenueRecord, error) {
	var record RevenueRecord
	if _, err := c.call(ctx, http.MethodPost, "/employee-revenue", nil, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRevenue 修改收益
func (c *Client) UpdateRevenue(ctx context.Context, id uint, req RevenueRequest) (*RevenueRecord, error) {
	var record RevenueRecord
	if _, err := c.call(ctx, http.MethodPut, idPath("/employee-revenue/%d", id), nil, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRevenue 删除收益
func (c *Client) DeleteRevenue(ctx context.Context, id uint) error {
	_, err := c.call(ctx, http.MethodDelete, idPath("/employee-revenue/%d", id), nil, nil, nil)
	return err
}

// GetRevenue 收益详情
func (c *Client) GetRevenue(ctx context.Context, id uint) (*RevenueRecord, error) {
	var record RevenueRecord
	if _, err := c.call(ctx, http.MethodGet, idPath("/employee-revenue/%d", id), nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRevenue 全员收益
func (c *Client) ListRevenue(ctx context.Context, filter RevenueFilter) (Page[RevenueView], error) {
	return getPage[RevenueView](ctx, c, "/employee-revenue", filter.query())
}

// ListMyRevenue 我的收益
func (c *Client) ListMyRevenue(ctx context.Context, filter RevenueFilter) (Page[RevenueView], error) {
	return getPage[RevenueView](ctx, c, "/employee-revenue/user/revenue", filter.query())
}

// RevenueAggregate 服务端按员工聚合
func (c *Client) RevenueAggregate(ctx context.Context, filter RevenueFilter) ([]RevenueAggregate, error) {
	var rows []RevenueAggregate
	q := filter.query()
	delete(q, "page")
	delete(q, "limit")
	if _, err := c.call(ctx, http.MethodGet, "/employee-revenue/aggregate", q, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// RevenueSummary 全员合计
func (c *Client) RevenueSummary(ctx context.Context, filter RevenueFilter) (*RevenueSummary, error) {
	var summary RevenueSummary
	if _, err := c.call(ctx, http.MethodGet, "/employee-revenue/summary", filter.query(), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// RevenueMonthly 年度按月汇总，year 为 0 时取今年
func (c *Client) RevenueMonthly(ctx context.Context, year int, userID uint) (*MonthlyReport, error) {
	q := map[string]string{}
	if year > 0 {
		q["year"] = strconv.Itoa(year)
	}
	if userID > 0 {
		q["userId"] = strconv.FormatUint(uint64(userID), 10)
	}
	var report MonthlyReport
	if _, err := c.call(ctx, http.MethodGet, "/employee-revenue/monthly", q, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ---- 通知 ----

// CreateNotification 创建通知
func (c *Client) CreateNotification(ctx context.Context, req NotificationRequest) (*Notification, error) {
	var notification Notification
	if _, err := c.call(ctx, http.MethodPost, "/notification", nil, req, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListNotifications 我的通知，status 为空表示全部
func (c *Client) ListNotifications(ctx context.Context, page, limit int, status string) (Page[Notification], error) {
	q := pageQuery(page, limit)
	if status != "" {
		q["status"] = status
	}
	return getPage[Notification](ctx, c, "/notification", q)
}

// GetNotification 通知详情
func (c *Client) GetNotification(ctx context.Context, id uint) (*Notification, error) {
	var notification Notification
	if _, err := c.call(ctx, http.MethodGet, idPath("/notification/%d", id), nil, nil, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// UpdateNotification 修改通知
func (c *Client) UpdateNotification(ctx context.Context, id uint, req NotificationUpdate) (*Notification, error) {
	var notification Notification
	if _, err := c.call(ctx, http.MethodPut, idPath("/notification/%d", id), nil, req, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// DeleteNotification 删除通知
func (c *Client) DeleteNotification(ctx context.Context, id uint) error {
	_, err := c.call(ctx, http.MethodDelete, idPath("/notification/%d", id), nil, nil, nil)
	return err
}

// MarkAllNotificationsRead 全部已读，返回更新条数
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var result struct {
		Updated int64 `json:"updated"`
	}
	if _, err := c.call(ctx, http.MethodPut, "/notification/read-all", nil, nil, &result); err != nil {
		return 0, err
	}
	return result.Updated, nil
}

// UnreadCount 未读数
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var result struct {
		Count int64 `json:"count"`
	}
	if _, err := c.call(ctx, http.MethodGet, "/notification/unread-count", nil, nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

// ---- 充值 ----

// CreateRecharge 新增充值记录
func (c *Client) CreateRecharge(ctx context.Context, req RechargeRequest) (*RechargeTransaction, error) {
	var tx RechargeTransaction
	if _, err := c.call(ctx, http.MethodPost, "/recharge-transaction", nil, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListRecharges 充值记录，userID 仅财务以上生效
func (c *Client) ListRecharges(ctx context.Context, page, limit int, status string, userID uint) (Page[RechargeTransaction], error) {
	q := pageQuery(page, limit)
	if status != "" {
		q["status"] = status
	}
	if userID > 0 {
		q["userId"] = strconv.FormatUint(uint64(userID), 10)
	}
	return getPage[RechargeTransaction](ctx, c, "/recharge-transaction", q)
}

// GetRecharge 充值详情
func (c *Client) GetRecharge(ctx context.Context, id uint) (*RechargeTransaction, error) {
	var tx RechargeTransaction
	if _, err := c.call(ctx, http.MethodGet, idPath("/recharge-transaction/%d", id), nil, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateRecharge 修改充值记录
func (c *Client) UpdateRecharge(ctx context.Context, id uint, req RechargeUpdate) (*RechargeTransaction, error) {
	var tx RechargeTransaction
	if _, err := c.call(ctx, http.MethodPut, idPath("/recharge-transaction/%d", id), nil, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteRecharge 删除充值记录
func (c *Client) DeleteRecharge(ctx context.Context, id uint) error {
	_, err := c.call(ctx, http.MethodDelete, idPath("/recharge-transaction/%d", id), nil, nil, nil)
	return err
}
