// Package http 所有接口共用的响应结构
package http

// MessageSuccess 查询类接口的成功消息
const MessageSuccess = "success"

// ErrorResponse 错误响应，Code 为业务错误码（HTTP 状态码 * 100 + 序号，如 40001）
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`          // 错误类别
	Detail  string `json:"detail,omitempty"` // 具体原因
}

// SuccessResponse 成功响应，Code 固定为 0
type SuccessResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data any) *SuccessResponse {
	return &SuccessResponse{Message: message, Data: data}
}

// NewErrorResponse 创建错误响应，detail 为空时省略
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{Code: code, Message: message}
	if len(detail) > 0 {
		resp.Detail = detail[0]
	}
	return resp
}
