package providers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"storyshot/internal/ai/component"
	"storyshot/internal/config"
	"storyshot/internal/pkg/ark"
	"storyshot/internal/pkg/shottools"
)

// NewStreamProvider 根据配置创建流式提供者
//   - openai / azure / ark: eino ChatModel
//   - volcengine: volcengine-go-sdk 直连
//   - gemini: google genai SDK
func NewStreamProvider(ctx context.Context, cfg *config.AIConfig) (shottools.StreamProvider, error) {
	if cfg.APIKey == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("AI API key not configured, provider calls will fail")
	}

	switch cfg.Provider {
	case "openai", "", "azure", "ark":
		chatModel, err := component.NewChatModel(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		name := cfg.Provider
		if name == "" {
			name = "openai"
		}
		return NewEinoProvider(name, chatModel), nil
	case "volcengine":
		client, err := ark.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create ark client: %w", err)
		}
		return NewArkProvider(client), nil
	case "gemini":
		return NewGeminiProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
