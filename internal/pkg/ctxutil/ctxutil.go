// Package ctxutil 在 context 中传递请求级别的标识（用户、请求ID）
package ctxutil

import "context"

type ctxKey int

const (
	userIDKey ctxKey = iota
	requestIDKey
)

func with(ctx context.Context, key ctxKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

func get(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// WithUserID 注入当前用户（认证中间件解析 JWT 后调用）
func WithUserID(ctx context.Context, userID string) context.Context {
	return with(ctx, userIDKey, userID)
}

// GetUserID 读取当前用户，未认证时返回 false
func GetUserID(ctx context.Context) (string, bool) {
	userID := get(ctx, userIDKey)
	return userID, userID != ""
}

// WithRequestID 注入请求ID（由 RequestID 中间件调用）
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, requestIDKey, requestID)
}

// GetRequestID 读取请求ID，CLI 等非 HTTP 调用返回空字符串
func GetRequestID(ctx context.Context) string {
	return get(ctx, requestIDKey)
}
