package middleware

import (
	"strings"

	"homestagram-backend/internal/errors"
	"homestagram-backend/internal/service"
	"homestagram-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 是保护接口的认证门卫：
// 缺少凭证 → NEED_LOGIN，凭证无效 → INVALID_TOKEN，
// 账号尚未设置昵称 → NEED_NICKNAME，否则把解析出的用户放入请求上下文。
func AuthMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrNeedLogin, errors.MsgNeedLogin))
			c.Abort()
			return
		}

		// 兼容裸令牌和 "Bearer <token>" 两种格式
		token := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}

		userID, err := util.ValidateToken(token)
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, errors.MsgInvalidToken, err))
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(userID)
		if err != nil {
			util.Logger.Warn("令牌对应的用户不存在", zap.Int("user_id", userID))
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, errors.MsgInvalidToken, err))
			c.Abort()
			return
		}

		// 账号存在但引导未完成
		if !user.HasNickname() {
			errors.HandleError(c, errors.New(errors.ErrNeedNickname, errors.MsgNeedNickname))
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
