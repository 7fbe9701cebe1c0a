package shot

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/ctxutil"
	shotsvc "storyshot/internal/service/shot"
)

// GenerateShotsRequest 生成镜头请求
type GenerateShotsRequest struct {
	StoryText          string   `json:"story_text" binding:"required"` // 故事原文（必填）
	VideoLengthMinutes *float64 `json:"video_length_minutes"`          // 视频时长（分钟），默认 1.0
	Style              string   `json:"style"`                         // 视觉风格，默认 hyperrealistic
}

// GenerateShotsResponseData 生成镜头响应数据
type GenerateShotsResponseData struct {
	RunID             string            `json:"run_id"`
	Characters        []string          `json:"characters"`
	ImageDescriptions []string          `json:"image_descriptions"`
	Statistics        shot.Statistics   `json:"statistics"`
	Artifacts         map[string]string `json:"artifacts,omitempty"`
}

// GenerateShotsResponse 生成镜头响应
// shots 放在顶层，与原有 /generate-shots 接口保持兼容
type GenerateShotsResponse struct {
	Code    int                       `json:"code"`
	Message string                    `json:"message"`
	Shots   []shot.Shot               `json:"shots"`
	Data    GenerateShotsResponseData `json:"data"`
}

// toInput 填充默认值并转换为 service 层参数
func (h *Handler) toInput(c *gin.Context, req *GenerateShotsRequest) *shotsvc.GenerateShotsInput {
	duration := h.defaults.DefaultDuration
	if req.VideoLengthMinutes != nil {
		duration = *req.VideoLengthMinutes
	}
	style := req.Style
	if style == "" {
		style = h.defaults.DefaultStyle
	}
	userID, _ := ctxutil.GetUserID(c.Request.Context())
	return &shotsvc.GenerateShotsInput{
		StoryText:       req.StoryText,
		DurationMinutes: duration,
		Style:           style,
		UserID:          userID,
	}
}

func newGenerateShotsResponse(run *shot.Run) GenerateShotsResponse {
	shots := run.Shots
	if shots == nil {
		shots = []shot.Shot{}
	}
	return GenerateShotsResponse{
		Code:    0,
		Message: "Shots generated successfully",
		Shots:   shots,
		Data: GenerateShotsResponseData{
			RunID:             run.ID,
			Characters:        run.Characters,
			ImageDescriptions: run.ImageDescriptions,
			Statistics:        run.Statistics,
			Artifacts:         run.Artifacts,
		},
	}
}

// GenerateShots 把故事拆分为镜头
// @Summary      生成镜头
// @Description  根据故事原文、时长和风格生成镜头集合（每个镜头 5 秒）。镜头数为 ceil(时长*60/5)，模型返回的数量不强制一致，见 statistics.count_matches。
// @Tags         镜头生成
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateShotsRequest   true  "生成参数"
// @Success      200      {object}  GenerateShotsResponse  "成功响应"
// @Failure      400      {object}  ErrorResponse          "请求参数错误"
// @Failure      502      {object}  ErrorResponse          "大模型调用失败或返回格式错误"
// @Failure      504      {object}  ErrorResponse          "生成超时"
// @Failure      500      {object}  ErrorResponse          "服务器内部错误"
// @Router       /api/v1/shots/generate [post]
// @Router       /generate-shots [post]
func (h *Handler) GenerateShots(c *gin.Context) {
	var req GenerateShotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	run, err := h.shotService.GenerateShots(c.Request.Context(), h.toInput(c, &req), nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newGenerateShotsResponse(run))
}
