package constants

// 用户角色，数值越小权限越高
const (
	RoleSuperAdmin = 0
	RoleAdmin      = 1
	RoleFinance    = 2
	RoleMarketer   = 3
	RoleUser       = 4
)

// 用户状态
const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

// DefaultAvatar 默认头像
const DefaultAvatar = "default_avatar.png"

// 博客状态
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// 通知状态与类型
const (
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"

	NotificationTypeSystem   = "system"
	NotificationTypeComment  = "comment"
	NotificationTypeReply    = "reply"
	NotificationTypeRecharge = "recharge"
)

// 充值状态
const (
	RechargeStatusPending = "pending"
	RechargeStatusSuccess = "success"
	RechargeStatusFailed  = "failed"
)

// 充值方式
const (
	PaymentMethodAlipay   = "alipay"
	PaymentMethodWechat   = "wechat"
	PaymentMethodBank     = "bank"
	PaymentMethodCash     = "cash"
	PaymentMethodInternal = "internal"
)

// 分页默认值
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	BlogFeedPageSize = 6
)

// 日期格式
const (
	DateLayout     = "2006-01-02"
	MonthLayout    = "2006-01"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ContextKeyLocale 请求语言上下文键
const ContextKeyLocale = "locale"

// 请求上下文中保存的登录信息键
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyUsername = "username"
)

// RoleName 返回角色的展示名
func RoleName(role int) string {
	switch role {
	case RoleSuperAdmin:
		return "super_admin"
	case RoleAdmin:
		return "admin"
	case RoleFinance:
		return "finance"
	case RoleMarketer:
		return "marketer"
	case RoleUser:
		return "user"
	default:
		return ""
	}
}

// IsValidRole 判断角色值是否合法
func IsValidRole(role int) bool {
	return role >= RoleSuperAdmin && role <= RoleUser
}

// 队列与任务类型
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskNotificationCreate      = "notification:create"
	TaskRevenueAggregateRefresh = "revenue:aggregate_refresh"
)
