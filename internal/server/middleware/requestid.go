package middleware

import (
	"github.com/gin-gonic/gin"

	"storyshot/internal/pkg/ctxutil"
	"storyshot/internal/pkg/id"
)

// RequestIDHeader 请求ID header
const RequestIDHeader = "X-Request-ID"

// RequestID 请求ID中间件
// 沿用调用方传入的 X-Request-ID，没有时生成新的 UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = id.New()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
