package shot

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "storyshot/internal/pkg/http"
	"storyshot/internal/pkg/shottools"
)

// maxAnalyzeBodyBytes 分析接口请求体上限
var maxAnalyzeBodyBytes int64 = 8 << 20

// AnalyzeShotsRequest 分析已有镜头的查询参数（请求体是镜头数组本身）
type AnalyzeShotsRequest struct {
	VideoLengthMinutes float64 `form:"video_length_minutes"` // 原始请求时长，0 表示按镜头数推算
}

// AnalyzeShots 分析已有的镜头集合
// @Summary      分析镜头集合
// @Description  请求体为之前生成的镜头 JSON 数组，返回角色列表、首帧描述列表和统计信息，不调用大模型
// @Tags         镜头生成
// @Accept       json
// @Produce      json
// @Param        video_length_minutes  query     number  false  "原始请求时长（分钟）"
// @Param        request               body      []shot.Shot  true  "镜头数组"
// @Success      200                   {object}  map[string]interface{}  "成功响应"
// @Failure      400                   {object}  ErrorResponse          "请求参数错误"
// @Failure      413                   {object}  ErrorResponse          "请求体过大"
// @Router       /api/v1/shots/analyze [post]
func (h *Handler) AnalyzeShots(c *gin.Context) {
	var req AnalyzeShotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Invalid query parameters",
			Detail:  err.Error(),
		})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxAnalyzeBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:    CodeBodyTooLarge,
			Message: "Request body too large",
			Detail:  fmt.Sprintf("limit is %d bytes", tooLarge.Limit),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	// 与模型输出使用同一套宽松解析规则
	shots, err := shottools.ParseShots(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Request body must be a JSON array of shots",
			Detail:  err.Error(),
		})
		return
	}

	analysis, err := h.shotService.AnalyzeShots(c.Request.Context(), shots, req.VideoLengthMinutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse(httputil.MessageSuccess, analysis))
}
