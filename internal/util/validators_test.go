package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

// TestValidateNickname 昵称不允许包含空白字符
func TestValidateNickname(t *testing.T) {
	v := validator.New()
	err := v.RegisterValidation("nickname", ValidateNickname)
	assert.NoError(t, err)

	assert.NoError(t, v.Var("tester", "nickname"))
	assert.NoError(t, v.Var("홈스타그램유저", "nickname"))

	assert.Error(t, v.Var("has space", "nickname"))
	assert.Error(t, v.Var("has\ttab", "nickname"))
	assert.Error(t, v.Var("has\nnewline", "nickname"))
}
