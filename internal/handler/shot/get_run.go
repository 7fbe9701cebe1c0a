package shot

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "storyshot/internal/pkg/http"
)

// GetRunRequest 获取生成记录请求
type GetRunRequest struct {
	RunID string `uri:"run_id" binding:"required"` // 生成记录ID（必填）
}

// GetRun 获取一次生成记录
// @Summary      获取生成记录
// @Description  根据 run_id 获取生成记录（镜头、角色、描述、统计、产物地址），先查缓存再查数据库
// @Tags         生成记录
// @Produce      json
// @Param        run_id  path      string  true  "生成记录ID"
// @Success      200     {object}  map[string]interface{}  "成功响应"
// @Failure      404     {object}  ErrorResponse          "记录不存在"
// @Failure      503     {object}  ErrorResponse          "未配置历史记录存储"
// @Router       /api/v1/shots/runs/{run_id} [get]
func (h *Handler) GetRun(c *gin.Context) {
	var req GetRunRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Invalid run_id",
			Detail:  err.Error(),
		})
		return
	}

	run, err := h.shotService.GetRun(c.Request.Context(), req.RunID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse(httputil.MessageSuccess, run))
}
