package ark

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"storyshot/internal/config"
)

const (
	// DefaultBaseURL Ark API 默认地址
	DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	// DefaultModel Ark 默认模型
	DefaultModel = "doubao-seed-1-6-flash-250615"
	// defaultMaxTokens 镜头 JSON 较长，默认给足输出长度
	defaultMaxTokens = 32 * 1024
)

// Client Ark 客户端封装
// 用于调用火山引擎的 Ark API（豆包大模型）
// 使用官方 volcengine-go-sdk
// 参考: https://github.com/volcengine/volcengine-go-sdk
type Client struct {
	client  *arkruntime.Client
	model   string
	options config.AIOptionsConfig
}

// NewClient 创建 Ark 客户端（使用官方 SDK）
func NewClient(cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Ark API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	arkClient := arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(baseURL))

	return &Client{
		client:  arkClient,
		model:   modelName,
		options: cfg.Options,
	}, nil
}

// Model 当前使用的模型
func (c *Client) Model() string {
	return c.model
}

// StreamReader 流式响应读取器
type StreamReader struct {
	recv  func() (model.ChatCompletionStreamResponse, error)
	close func()
}

// Recv 读取下一段文本，结束时返回 io.EOF
func (r *StreamReader) Recv() (string, error) {
	resp, err := r.recv()
	if err != nil {
		return "", err
	}
	var text string
	for _, choice := range resp.Choices {
		if choice == nil {
			continue
		}
		text += choice.Delta.Content
	}
	return text, nil
}

// Close 关闭底层连接
func (r *StreamReader) Close() {
	r.close()
}

// CreateChatCompletionStream 以流式方式创建聊天完成
func (c *Client) CreateChatCompletionStream(ctx context.Context, systemPrompt, prompt string) (*StreamReader, error) {
	input := &model.ChatCompletionRequest{
		Model: c.model,
		Messages: []*model.ChatCompletionMessage{
			newMessage(model.ChatMessageRoleSystem, systemPrompt),
			newMessage(model.ChatMessageRoleUser, prompt),
		},
		MaxTokens: defaultMaxTokens,
	}
	if c.options.MaxTokens > 0 {
		input.MaxTokens = c.options.MaxTokens
	}
	if c.options.Temperature > 0 {
		input.Temperature = float32(c.options.Temperature)
	}
	if c.options.TopP > 0 {
		input.TopP = float32(c.options.TopP)
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("model", c.model).Msg("failed to call Ark ChatCompletion stream API")
		return nil, fmt.Errorf("Ark API call failed: %w", err)
	}

	return &StreamReader{
		recv: stream.Recv,
		close: func() {
			stream.Close()
		},
	}, nil
}

func newMessage(role, content string) *model.ChatCompletionMessage {
	return &model.ChatCompletionMessage{
		Role: role,
		Content: &model.ChatCompletionMessageContent{
			StringValue: &content,
		},
	}
}
