package service

import (
	"unicode"

	"github.com/blog-console/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// PasswordPolicyError 密码不满足策略，携带 i18n key 与参数
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e PasswordPolicyError) Error() string {
	return e.key
}

// Is 使 errors.Is(err, ErrWeakPassword) 成立
func (e PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 返回 i18n key
func (e PasswordPolicyError) Key() string {
	return e.key
}

// Args 返回格式化参数
func (e PasswordPolicyError) Args() []interface{} {
	return e.args
}

type charClasses struct {
	upper, lower, number, special bool
}

func classify(password string) charClasses {
	var c charClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.number = true
		default:
			c.special = true
		}
	}
	return c
}

// CheckPassword 按策略检查密码，注册、管理员建号、改密共用
func CheckPassword(policy config.PasswordPolicyConfig, password string) error {
	if password == "" {
		return PasswordPolicyError{key: "error.password_weak"}
	}
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	got := classify(password)
	rules := []struct {
		required bool
		present  bool
		key      string
	}{
		{policy.RequireUpper, got.upper, "error.password_require_upper"},
		{policy.RequireLower, got.lower, "error.password_require_lower"},
		{policy.RequireNumber, got.number, "error.password_require_number"},
		{policy.RequireSpecial, got.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.required && !rule.present {
			return PasswordPolicyError{key: rule.key}
		}
	}
	return nil
}

// HashPassword bcrypt 加密
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 校验明文与哈希
func VerifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
