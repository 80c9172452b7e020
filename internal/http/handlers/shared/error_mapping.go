package shared

import (
	"errors"

	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/i18n"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorRule 业务错误到接口错误响应的映射关系。
type ErrorRule struct {
	Target error
	Code   int
	Key    string
}

// NotFoundAs 用资源专属文案覆盖 ErrNotFound。
func NotFoundAs(key string) ErrorRule {
	return ErrorRule{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: key}
}

// ForbiddenAs 用资源专属文案覆盖 ErrForbidden。
func ForbiddenAs(key string) ErrorRule {
	return ErrorRule{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: key}
}

var serviceErrorRules = []ErrorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrDateInvalid, Code: response.CodeBadRequest, Key: "error.date_invalid"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
	{Target: service.ErrUsernameExists, Code: response.CodeConflict, Key: "error.username_exists"},
	{Target: service.ErrUsernameInvalid, Code: response.CodeBadRequest, Key: "error.username_invalid"},
	{Target: service.ErrEmailInvalid, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrSelfModify, Code: response.CodeBadRequest, Key: "error.user_self_modify"},
	{Target: service.ErrRoleInvalid, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: service.ErrUserProtected, Code: response.CodeForbidden, Key: "error.user_protected"},
	{Target: service.ErrUserStatusInvalid, Code: response.CodeBadRequest, Key: "error.user_status_invalid"},
	{Target: service.ErrTokenExpired, Code: response.CodeUnauthorized, Key: "error.token_expired"},
	{Target: service.ErrTokenInvalid, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaDisabled, Code: response.CodeNotFound, Key: "error.captcha_disabled"},
	{Target: service.ErrBlogNotFound, Code: response.CodeNotFound, Key: "error.blog_not_found"},
	{Target: service.ErrBlogStatusInvalid, Code: response.CodeBadRequest, Key: "error.blog_status_invalid"},
	{Target: service.ErrCommentParentInvalid, Code: response.CodeBadRequest, Key: "error.comment_parent_invalid"},
	{Target: service.ErrRevenueTimeInvalid, Code: response.CodeBadRequest, Key: "error.revenue_time_invalid"},
	{Target: service.ErrRevenueAmountInvalid, Code: response.CodeBadRequest, Key: "error.revenue_amount_invalid"},
	{Target: service.ErrRechargeAmountInvalid, Code: response.CodeBadRequest, Key: "error.recharge_amount_invalid"},
	{Target: service.ErrRechargeStatusInvalid, Code: response.CodeBadRequest, Key: "error.recharge_status_invalid"},
	{Target: service.ErrOrderNumberExists, Code: response.CodeConflict, Key: "error.order_number_exists"},
}

// RespondServiceError 将 service 层错误转换为接口响应，overrides 优先匹配。
// 未识别的错误按 fallbackKey 返回 500 并记录日志。
func RespondServiceError(c *gin.Context, err error, fallbackKey string, overrides ...ErrorRule) {
	locale := i18n.ResolveLocale(c)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		msg := i18n.Sprintf(locale, "error.validation_failed", validationErr.Field, validationErr.Tag)
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	var policyErr service.PasswordPolicyError
	if errors.As(err, &policyErr) {
		msg := i18n.Sprintf(locale, policyErr.Key(), policyErr.Args()...)
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}

	for _, rules := range [][]ErrorRule{overrides, serviceErrorRules} {
		for _, rule := range rules {
			if errors.Is(err, rule.Target) {
				RespondError(c, rule.Code, rule.Key, nil)
				return
			}
		}
	}
	if fallbackKey == "" {
		fallbackKey = "error.internal"
	}
	RespondError(c, response.CodeInternal, fallbackKey, err)
}
