package service

import "errors"

// 通用业务错误，handler 通过 errors.Is 映射为业务码
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrDateInvalid = errors.New("date invalid")
)

// 认证与用户
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrUsernameExists     = errors.New("username exists")
	ErrUsernameInvalid    = errors.New("username invalid")
	ErrEmailInvalid       = errors.New("email invalid")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidPassword    = errors.New("invalid old password")
	ErrSelfModify         = errors.New("cannot modify self")
	ErrRoleInvalid        = errors.New("role invalid")
	ErrUserProtected      = errors.New("user protected")
	ErrUserStatusInvalid  = errors.New("user status invalid")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrCaptchaDisabled    = errors.New("captcha disabled")
)

// 业务模块
var (
	ErrBlogNotFound          = errors.New("blog not found")
	ErrBlogStatusInvalid     = errors.New("blog status invalid")
	ErrCommentParentInvalid  = errors.New("comment parent invalid")
	ErrRevenueTimeInvalid    = errors.New("revenue record time invalid")
	ErrRevenueAmountInvalid  = errors.New("revenue amount invalid")
	ErrRechargeAmountInvalid = errors.New("recharge amount invalid")
	ErrRechargeStatusInvalid = errors.New("recharge status invalid")
	ErrOrderNumberExists     = errors.New("order number exists")
)
