package util

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateNickname 验证昵称不包含空白字符
func ValidateNickname(fl validator.FieldLevel) bool {
	nickname, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return !strings.ContainsAny(nickname, " \t\n")
}
