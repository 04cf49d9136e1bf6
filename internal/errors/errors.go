package errors

import "fmt"

// ErrorCode 定义错误码类型
type ErrorCode int

// 定义系统级错误码 (1000-1999)
const (
	ErrInternal ErrorCode = 1000 + iota
	ErrDatabase
)

// 定义认证相关错误码 (2000-2999)
const (
	ErrNeedLogin ErrorCode = 2000 + iota
	ErrInvalidToken
	ErrNeedNickname
	ErrForbidden
)

// 定义请求校验相关错误码 (3000-3999)
const (
	ErrKeyError ErrorCode = 3000 + iota
	ErrImageEmpty
	ErrDesignTypeNotFound
	ErrNicknameExists
)

// 定义资源不存在相关错误码 (4000-4999)
const (
	ErrPostingNotFound ErrorCode = 4000 + iota
	ErrUserNotFound
	ErrCommentNotFound
	ErrProductNotFound
)

// 定义上游服务相关错误码 (5000-5999)
const (
	ErrInvalidKakaoToken ErrorCode = 5000 + iota
	ErrNeedEmailAgreement
)

// AppError 定义应用错误结构，Message 即响应体中的 MESSAGE 码
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
