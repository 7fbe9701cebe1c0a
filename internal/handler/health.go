package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readyTimeout 就绪检查中每个依赖的超时时间
const readyTimeout = 2 * time.Second

// CheckFunc 依赖检查函数（如 MongoDB / Redis ping）
type CheckFunc func(ctx context.Context) error

// HealthHandler 健康检查处理器
type HealthHandler struct {
	provider string
	checks   map[string]CheckFunc
}

// NewHealthHandler 创建健康检查处理器
// checks 只包含已配置的可选依赖，未配置的不参与就绪检查
func NewHealthHandler(provider string, checks map[string]CheckFunc) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		checks:   checks,
	}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.provider,
	})
}

// Ready 就绪检查，任一依赖不可用返回 503
func (h *HealthHandler) Ready(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	c.JSON(status, gin.H{
		"status": state,
		"checks": results,
	})
}
