package shot

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storyshot/internal/pkg/storage"
)

// GetArtifactRequest 下载产物请求
type GetArtifactRequest struct {
	RunID string `uri:"run_id" binding:"required"` // 生成记录ID
	Name  string `uri:"name" binding:"required"`   // 产物文件名，如 shot_output_1min_anime.json
}

// GetArtifact 下载生成记录的产物文件
// @Summary      下载产物
// @Description  下载一次生成留档的 JSON 文件（镜头、角色或首帧描述）
// @Tags         生成记录
// @Produce      json
// @Param        run_id  path      string  true  "生成记录ID"
// @Param        name    path      string  true  "产物文件名"
// @Success      200     {file}    file           "产物文件"
// @Failure      404     {object}  ErrorResponse  "记录或产物不存在"
// @Failure      503     {object}  ErrorResponse  "未配置产物存储"
// @Router       /api/v1/shots/runs/{run_id}/artifacts/{name} [get]
func (h *Handler) GetArtifact(c *gin.Context) {
	var req GetArtifactRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Invalid artifact path",
			Detail:  err.Error(),
		})
		return
	}

	rc, err := h.shotService.OpenArtifact(c.Request.Context(), req.RunID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, storage.ContentTypeJSON, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, req.Name),
	})
}
