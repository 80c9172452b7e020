package i18n

var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.validation_failed":        "字段 [%s] 校验失败，规则 [%s]",
		"error.id_invalid":               "ID 格式错误",
		"error.unauthorized":             "未登录或登录已失效",
		"error.token_invalid":            "登录凭证无效",
		"error.token_expired":            "登录已过期，请重新登录",
		"error.forbidden":                "无权访问",
		"error.not_found":                "资源不存在",
		"error.too_many_requests":        "请求过于频繁，请稍后再试",
		"error.internal":                 "服务器内部错误",
		"error.query_failed":             "查询失败",
		"error.save_failed":              "保存失败",
		"error.delete_failed":            "删除失败",
		"error.date_invalid":             "日期格式错误，应为 YYYY-MM-DD",
		"error.login_invalid":            "用户名或密码错误",
		"error.login_failed":             "登录失败",
		"error.user_disabled":            "账号已被禁用",
		"error.username_invalid":         "用户名需为 4-20 位字母、数字、下划线或短横线",
		"error.email_invalid":            "邮箱格式错误",
		"error.username_exists":          "用户名已存在",
		"error.user_not_found":           "用户不存在",
		"error.user_self_modify":         "不能修改或删除自己的账号",
		"error.user_protected":           "超级管理员账号不可删除",
		"error.role_invalid":             "角色不合法",
		"error.user_status_invalid":      "用户状态不合法",
		"error.password_weak":            "密码强度不足",
		"error.password_min_length":      "密码长度至少 %d 位",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含特殊字符",
		"error.password_old_invalid":     "原密码错误",
		"error.captcha_required":         "请输入验证码",
		"error.captcha_invalid":          "验证码错误",
		"error.captcha_disabled":         "验证码未启用",
		"error.blog_not_found":           "博客不存在",
		"error.blog_forbidden":           "只能操作自己的博客",
		"error.blog_status_invalid":      "博客状态不合法",
		"error.comment_not_found":        "评论不存在",
		"error.comment_forbidden":        "只能操作自己的评论",
		"error.comment_parent_invalid":   "回复的评论不存在或不属于该博客",
		"error.revenue_not_found":        "收益记录不存在",
		"error.revenue_time_invalid":     "记录时间格式错误",
		"error.revenue_amount_invalid":   "金额与数量不能为负数",
		"error.notification_not_found":   "通知不存在",
		"error.recharge_not_found":       "充值记录不存在",
		"error.recharge_amount_invalid":  "充值金额必须大于 0",
		"error.recharge_status_invalid":  "充值状态不合法",
		"error.order_number_exists":      "订单号已存在",
	},
	LocaleEN: {
		"error.bad_request":              "Invalid request parameters",
		"error.validation_failed":        "Field [%s] failed on rule [%s]",
		"error.id_invalid":               "Invalid ID",
		"error.unauthorized":             "Not signed in or session expired",
		"error.token_invalid":            "Invalid token",
		"error.token_expired":            "Session expired, please sign in again",
		"error.forbidden":                "Access denied",
		"error.not_found":                "Resource not found",
		"error.too_many_requests":        "Too many requests, please retry later",
		"error.internal":                 "Internal server error",
		"error.query_failed":             "Query failed",
		"error.save_failed":              "Save failed",
		"error.delete_failed":            "Delete failed",
		"error.date_invalid":             "Invalid date, expected YYYY-MM-DD",
		"error.login_invalid":            "Invalid username or password",
		"error.login_failed":             "Sign in failed",
		"error.user_disabled":            "Account disabled",
		"error.username_invalid":         "Username must be 4-20 letters, digits, underscores or dashes",
		"error.email_invalid":            "Invalid email address",
		"error.username_exists":          "Username already exists",
		"error.user_not_found":           "User not found",
		"error.user_self_modify":         "You cannot modify or delete your own account",
		"error.user_protected":           "The super admin account cannot be deleted",
		"error.role_invalid":             "Invalid role",
		"error.user_status_invalid":      "Invalid user status",
		"error.password_weak":            "Password is too weak",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",
		"error.password_old_invalid":     "Old password is incorrect",
		"error.captcha_required":         "Captcha is required",
		"error.captcha_invalid":          "Captcha is incorrect",
		"error.captcha_disabled":         "Captcha is not enabled",
		"error.blog_not_found":           "Blog not found",
		"error.blog_forbidden":           "You can only modify your own blogs",
		"error.blog_status_invalid":      "Invalid blog status",
		"error.comment_not_found":        "Comment not found",
		"error.comment_forbidden":        "You can only modify your own comments",
		"error.comment_parent_invalid":   "Parent comment does not exist on this blog",
		"error.revenue_not_found":        "Revenue record not found",
		"error.revenue_time_invalid":     "Invalid record time",
		"error.revenue_amount_invalid":   "Amounts and counts cannot be negative",
		"error.notification_not_found":   "Notification not found",
		"error.recharge_not_found":       "Recharge transaction not found",
		"error.recharge_amount_invalid":  "Recharge amount must be greater than 0",
		"error.recharge_status_invalid":  "Invalid recharge status",
		"error.order_number_exists":      "Order number already exists",
	},
}
