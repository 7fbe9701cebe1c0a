package shot

import (
	"storyshot/internal/config"
	"storyshot/internal/service/shot"
)

// Handler 镜头处理器
// 所有 shot 相关的 Handler 方法都通过这个结构体访问 Service
type Handler struct {
	shotService shot.ShotService
	defaults    config.GenerationConfig
}

// NewHandler 创建镜头处理器
// defaults 提供请求未填写时的默认时长和风格
func NewHandler(shotService shot.ShotService, defaults config.GenerationConfig) *Handler {
	if defaults.DefaultDuration <= 0 {
		defaults.DefaultDuration = DefaultDurationMinutes
	}
	if defaults.DefaultStyle == "" {
		defaults.DefaultStyle = DefaultStyle
	}
	return &Handler{
		shotService: shotService,
		defaults:    defaults,
	}
}
