package providers

import (
	"context"
	"fmt"
	"iter"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"storyshot/internal/pkg/shottools"
)

// systemPrompt 约束模型只输出结构化数据
const systemPrompt = "You are a film storyboard assistant. You answer with machine-parseable JSON only."

// EinoProvider Eino 封装的流式 LLM 提供者（默认使用）
// 使用 ai/component 封装的 ChatModel（openai / azure / ark）
// 实现了 shottools.StreamProvider 接口
type EinoProvider struct {
	name      string
	chatModel model.BaseChatModel
}

// NewEinoProvider 创建基于 Eino 的流式提供者
//
// Args:
//   - name: 提供者名称（如 openai / ark），用于日志和错误信息
//   - chatModel: 通过 ai/component.NewChatModel 创建的 ChatModel 实例
//
// Returns:
//   - *EinoProvider: 提供者实例
func NewEinoProvider(name string, chatModel model.BaseChatModel) *EinoProvider {
	return &EinoProvider{
		name:      name,
		chatModel: chatModel,
	}
}

// Name 提供者名称
func (p *EinoProvider) Name() string {
	return p.name
}

// Stream 流式调用 ChatModel
func (p *EinoProvider) Stream(ctx context.Context, req *shottools.GenerationRequest) (iter.Seq2[string, error], error) {
	if p.chatModel == nil {
		return nil, fmt.Errorf("chatModel is required")
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(req.Prompt),
	}

	reader, err := p.chatModel.Stream(ctx, messages)
	if err != nil {
		return nil, shottools.NewProviderError(p.name, fmt.Errorf("failed to start stream: %w", err))
	}

	return recvSeq(
		reader.Recv,
		reader.Close,
		func(msg *schema.Message) string {
			if msg == nil {
				return ""
			}
			return msg.Content
		},
	), nil
}
