package shot

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "storyshot/internal/pkg/http"
	"storyshot/internal/pkg/shottools"
	"storyshot/internal/service/shot"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// 请求未填写时的默认值
const (
	DefaultDurationMinutes = 1.0
	DefaultStyle           = "hyperrealistic"
)

// 业务错误码
const (
	CodeInvalidInput    = 40001
	CodeRunNotFound     = 40401
	CodeArtifactMissing = 40402
	CodeBodyTooLarge    = 41301
	CodeInternal        = 50001
	CodeProvider        = 50201
	CodeMalformedOutput = 50202
	CodeHistoryDisabled = 50301
	CodeNoArtifacts     = 50302
	CodeTimeout         = 50401
)

// errorStatus 根据错误类型返回 HTTP 状态码和业务错误码
// 超时优先判断：提供者错误可能包装了 context.DeadlineExceeded
func errorStatus(err error) (int, int) {
	switch {
	case errors.Is(err, shottools.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout
	case errors.Is(err, shottools.ErrMalformedOutput):
		return http.StatusBadGateway, CodeMalformedOutput
	case errors.Is(err, shottools.ErrGenerationProvider):
		return http.StatusBadGateway, CodeProvider
	case errors.Is(err, shot.ErrRunNotFound):
		return http.StatusNotFound, CodeRunNotFound
	case errors.Is(err, shot.ErrHistoryDisabled):
		return http.StatusServiceUnavailable, CodeHistoryDisabled
	case errors.Is(err, shot.ErrArtifactNotFound):
		return http.StatusNotFound, CodeArtifactMissing
	case errors.Is(err, shot.ErrArtifactsDisabled):
		return http.StatusServiceUnavailable, CodeNoArtifacts
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// errorMessage 错误类别的简短描述，具体原因放在 detail
func errorMessage(code int) string {
	switch code {
	case CodeInvalidInput:
		return "Invalid request"
	case CodeTimeout:
		return "Shot generation timed out"
	case CodeMalformedOutput:
		return "Generation provider returned malformed output"
	case CodeProvider:
		return "Generation provider failed"
	case CodeRunNotFound:
		return "Run not found"
	case CodeHistoryDisabled:
		return "Run history is not configured"
	case CodeArtifactMissing:
		return "Artifact not found"
	case CodeNoArtifacts:
		return "Artifact storage is not configured"
	default:
		return "Internal server error"
	}
}

// newErrorResponse 把错误转换为统一的错误响应
func newErrorResponse(err error) (int, ErrorResponse) {
	status, code := errorStatus(err)
	return status, ErrorResponse{
		Code:    code,
		Message: errorMessage(code),
		Detail:  err.Error(),
	}
}

func respondError(c *gin.Context, err error) {
	status, resp := newErrorResponse(err)
	c.JSON(status, resp)
}
