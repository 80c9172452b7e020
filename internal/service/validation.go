package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{4,20}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidationError 第一条未通过的字段规则
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s failed on %s", e.Field, e.Tag)
}

// ValidateDTO 校验服务入参，仅返回第一条错误
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		first := vErrs[0]
		return &ValidationError{Field: strings.ToLower(first.Field()), Tag: first.Tag()}
	}
	return err
}

// IsValidUsername 用户名格式校验
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return ErrEmailInvalid
	}
	return nil
}
