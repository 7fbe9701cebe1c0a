package shot

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/ctxutil"
	httputil "storyshot/internal/pkg/http"
)

// ListRunsRequest 生成记录列表请求
type ListRunsRequest struct {
	Limit int64 `form:"limit"` // 返回条数，默认 20，最大 100
}

// RunSummary 生成记录摘要（列表不返回镜头明细）
type RunSummary struct {
	ID              string          `json:"id"`
	Style           string          `json:"style"`
	DurationMinutes float64         `json:"duration_minutes"`
	Provider        string          `json:"provider"`
	Status          string          `json:"status"`
	Statistics      shot.Statistics `json:"statistics"`
	ElapsedMs       int64           `json:"elapsed_ms"`
	CreatedAt       string          `json:"created_at"`
}

func toRunSummary(run *shot.Run) RunSummary {
	return RunSummary{
		ID:              run.ID,
		Style:           run.Style,
		DurationMinutes: run.DurationMinutes,
		Provider:        run.Provider,
		Status:          string(run.Status),
		Statistics:      run.Statistics,
		ElapsedMs:       run.ElapsedMs,
		CreatedAt:       run.CreatedAt.Format(time.RFC3339),
	}
}

// ListRuns 列出最近的生成记录
// @Summary      生成记录列表
// @Description  按创建时间倒序列出生成记录。启用认证时只返回当前用户的记录
// @Tags         生成记录
// @Produce      json
// @Param        limit  query     int  false  "返回条数（默认 20，最大 100）"
// @Success      200    {object}  map[string]interface{}  "成功响应"
// @Failure      503    {object}  ErrorResponse          "未配置历史记录存储"
// @Router       /api/v1/shots/runs [get]
func (h *Handler) ListRuns(c *gin.Context) {
	var req ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Invalid query parameters",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	userID, _ := ctxutil.GetUserID(ctx)

	runs, err := h.shotService.ListRuns(ctx, userID, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		list = append(list, toRunSummary(run))
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse(httputil.MessageSuccess, gin.H{
		"runs":  list,
		"count": len(list),
	}))
}
