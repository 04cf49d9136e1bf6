package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 对外暴露的 MESSAGE 码，与前端约定保持一致
const (
	MsgNeedLogin          = "NEED_LOGIN"
	MsgInvalidToken       = "INVALID_TOKEN"
	MsgNeedNickname       = "NEED_NICKNAME"
	MsgForbidden          = "FORBIDDEN"
	MsgKeyError           = "KEY_ERROR"
	MsgImageEmpty         = "IMAGE_EMPTY"
	MsgDesignTypeNotFound = "DESIGN_TYPE_DOES_NOT_EXIST"
	MsgNicknameExists     = "NICKNAME_ALREADY_EXISTS"
	MsgPostingNotFound    = "POSTING_DOES_NOT_EXIST"
	MsgUserNotFound       = "USER_DOES_NOT_EXIST"
	MsgCommentNotFound    = "COMMENT_DOES_NOT_EXIST"
	MsgProductNotFound    = "PRODUCT_DOES_NOT_EXIST"
	MsgInvalidKakaoToken  = "INVALID_KAKAO_TOKEN"
	MsgNeedEmailAgreement = "NEED_EMAIL_AGREEMENT"
	MsgInternal           = "INTERNAL_SERVER_ERROR"
)

// 错误码与HTTP状态码映射。
// 注意：posting/user/product 不存在时返回 400，这是既有前端约定，不是笔误。
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,

	// 认证错误 (2000-2999)
	ErrNeedLogin:    http.StatusUnauthorized,
	ErrInvalidToken: http.StatusUnauthorized,
	ErrNeedNickname: http.StatusUnauthorized,
	ErrForbidden:    http.StatusForbidden,

	// 请求校验错误 (3000-3999)
	ErrKeyError:           http.StatusBadRequest,
	ErrImageEmpty:         http.StatusBadRequest,
	ErrDesignTypeNotFound: http.StatusBadRequest,
	ErrNicknameExists:     http.StatusConflict,

	// 资源不存在错误 (4000-4999)
	ErrPostingNotFound: http.StatusBadRequest,
	ErrUserNotFound:    http.StatusBadRequest,
	ErrCommentNotFound: http.StatusNotFound,
	ErrProductNotFound: http.StatusBadRequest,

	// 上游服务错误 (5000-5999)
	ErrInvalidKakaoToken:  http.StatusBadRequest,
	ErrNeedEmailAgreement: http.StatusBadRequest,
}

// HandleError 统一处理错误响应，响应体固定为 {"MESSAGE": <code>}
func HandleError(c *gin.Context, err error) {
	// 记录到 gin 的错误列表，供错误监控中间件统计
	_ = c.Error(err)

	if appErr, ok := err.(*AppError); ok {
		status := errorStatusMap[appErr.Code]
		if status == 0 {
			status = http.StatusInternalServerError
		}

		c.JSON(status, gin.H{"MESSAGE": appErr.Message})
		return
	}

	// 处理非 AppError 类型的错误（数据库故障等）
	c.JSON(http.StatusInternalServerError, gin.H{"MESSAGE": MsgInternal})
}
