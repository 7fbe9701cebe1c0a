package id

import (
	"github.com/google/uuid"
)

// New 随机 UUID，用作请求ID
func New() string {
	return uuid.NewString()
}

// NewRunID 生成记录ID
// 使用 UUIDv7（前缀为毫秒时间戳），记录以它作为 Mongo 的 _id，按 _id 排序即按创建时间排序
func NewRunID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}
