// Package component 按配置创建 eino ChatModel
package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"storyshot/internal/config"
	"storyshot/internal/pkg/ark"
)

// NewChatModel 创建 ChatModel
// 支持 openai（默认）、azure、ark；volcengine / gemini 不经过 eino，见 shottools/providers
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	opts := newSamplingOptions(cfg.Options)

	switch cfg.Provider {
	case "openai", "":
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Temperature: opts.temperature,
			MaxTokens:   opts.maxTokens,
			TopP:        opts.topP,
		})
	case "azure":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("azure provider requires ai.base_url")
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			ByAzure:     true,
			Temperature: opts.temperature,
			MaxTokens:   opts.maxTokens,
			TopP:        opts.topP,
		})
	case "ark":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = ark.DefaultBaseURL
		}
		modelName := cfg.Model
		if modelName == "" {
			modelName = ark.DefaultModel
		}
		return arkext.NewChatModel(ctx, &arkext.ChatModelConfig{
			Model:       modelName,
			APIKey:      cfg.APIKey,
			BaseURL:     baseURL,
			Temperature: opts.temperature,
			MaxTokens:   opts.maxTokens,
			TopP:        opts.topP,
		})
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// samplingOptions 采样参数，零值表示使用模型默认值（nil）
type samplingOptions struct {
	temperature *float32
	topP        *float32
	maxTokens   *int
}

func newSamplingOptions(o config.AIOptionsConfig) samplingOptions {
	var opts samplingOptions
	if o.Temperature > 0 {
		t := float32(o.Temperature)
		opts.temperature = &t
	}
	if o.TopP > 0 {
		p := float32(o.TopP)
		opts.topP = &p
	}
	if o.MaxTokens > 0 {
		n := o.MaxTokens
		opts.maxTokens = &n
	}
	return opts
}
