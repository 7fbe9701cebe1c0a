package shot

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SSE 事件名
const (
	EventFragment = "fragment"
	EventResult   = "result"
	EventError    = "error"
)

// streamEvent 生成协程发给响应协程的事件
type streamEvent struct {
	name string
	data any
	err  error
}

// GenerateShotsStream 流式生成镜头 (SSE)
// @Summary      流式生成镜头
// @Description  与 /api/v1/shots/generate 参数相同。模型输出的片段以 fragment 事件推送，结束时推送一个 result 或 error 事件。在第一个片段之前失败时返回普通 JSON 错误。
// @Tags         镜头生成
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      GenerateShotsRequest  true  "生成参数"
// @Success      200      {string}  string                "SSE 事件流"
// @Failure      400      {object}  ErrorResponse         "请求参数错误"
// @Failure      502      {object}  ErrorResponse         "大模型调用失败"
// @Router       /api/v1/shots/generate/stream [post]
func (h *Handler) GenerateShotsStream(c *gin.Context) {
	var req GenerateShotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidInput,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	input := h.toInput(c, &req)
	events := make(chan streamEvent, 64)

	go func() {
		defer close(events)
		run, err := h.shotService.GenerateShots(ctx, input, func(fragment string) {
			send(ctx, events, streamEvent{name: EventFragment, data: gin.H{"content": fragment}})
		})
		if err != nil {
			send(ctx, events, streamEvent{name: EventError, err: err})
			return
		}
		send(ctx, events, streamEvent{name: EventResult, data: newGenerateShotsResponse(run)})
	}()

	// 第一个事件之前出错（参数、鉴权等）直接返回 JSON 错误
	first, ok := <-events
	if !ok {
		return
	}
	if first.err != nil {
		respondError(c, first.err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	pending := &first
	c.Stream(func(w io.Writer) bool {
		ev := pending
		pending = nil
		if ev == nil {
			next, ok := <-events
			if !ok {
				return false
			}
			ev = &next
		}

		if ev.err != nil {
			_, resp := newErrorResponse(ev.err)
			c.SSEvent(EventError, resp)
			return false
		}
		c.SSEvent(ev.name, ev.data)
		return ev.name == EventFragment
	})
}

// send 客户端断开后放弃发送，避免生成协程阻塞
func send(ctx context.Context, events chan<- streamEvent, ev streamEvent) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
