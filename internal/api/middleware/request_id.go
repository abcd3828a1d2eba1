package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio/internal/validation"
)

// RequestIDHeader 是请求 ID 的请求/响应头。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestIDMiddleware 确保每个请求都带有请求 ID；调用方传入的值不是合法 UUID 时重新生成。
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validation.IsValidID(id) {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// GetRequestID 从上下文中取出请求 ID。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
