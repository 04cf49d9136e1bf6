package user

import (
	"net/http"
	"strconv"

	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/service"
	"homestagram-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与登录和昵称注册相关的HTTP请求
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// SignIn 处理社交登录请求
func (h *AuthHandler) SignIn(c *gin.Context) {
	var signInData struct {
		AccessToken string `json:"access_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&signInData); err != nil {
		util.Logger.Warn("登录失败，请求体缺少access_token", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	result, err := h.userService.SignIn(c.Request.Context(), signInData.AccessToken)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterNickname 处理昵称注册请求
func (h *AuthHandler) RegisterNickname(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	var nicknameData struct {
		Nickname string `json:"nickname" binding:"required,max=20,nickname"`
	}

	if err := c.ShouldBindJSON(&nicknameData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrKeyError, errors.MsgKeyError, err))
		return
	}

	if err := h.userService.RegisterNickname(userID, nicknameData.Nickname); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"MESSAGE": "UPDATED"})
}
