package middleware

import (
	"sync"

	"homestagram-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMonitor 按对外 MESSAGE 码累计请求处理中产生的错误。
// 非 AppError（数据库故障等）统一计入 INTERNAL_SERVER_ERROR。
type ErrorMonitor struct {
	mu     sync.RWMutex
	counts map[string]int
}

func NewErrorMonitor() *ErrorMonitor {
	return &ErrorMonitor{
		counts: make(map[string]int),
	}
}

func (m *ErrorMonitor) Record(err error) {
	code := errors.MsgInternal
	if appErr, ok := err.(*errors.AppError); ok {
		code = appErr.Message
	}
	m.mu.Lock()
	m.counts[code]++
	m.mu.Unlock()
}

// Snapshot 返回各 MESSAGE 码的累计次数
func (m *ErrorMonitor) Snapshot() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[string]int, len(m.counts))
	for code, count := range m.counts {
		counts[code] = count
	}
	return counts
}

func ErrorMonitorMiddleware(monitor *ErrorMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			monitor.Record(e.Err)
			if appErr, ok := e.Err.(*errors.AppError); ok {
				zap.L().Error("请求处理错误",
					zap.String("message", appErr.Message),
					zap.Int("error_code", int(appErr.Code)),
					zap.Error(appErr.Err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method))
			} else {
				zap.L().Error("请求处理发生未分类错误",
					zap.Error(e.Err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method))
			}
		}
	}
}
