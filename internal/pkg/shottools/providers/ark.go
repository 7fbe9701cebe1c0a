package providers

import (
	"context"
	"fmt"
	"iter"

	"storyshot/internal/pkg/ark"
	"storyshot/internal/pkg/shottools"
)

// ArkProvider Ark 实现的流式提供者（直接使用 volcengine SDK，不经过 eino）
// 实现了 shottools.StreamProvider 接口
type ArkProvider struct {
	client *ark.Client
}

// NewArkProvider 创建基于 Ark 的流式提供者
//
// Args:
//   - client: Ark 客户端实例（通过 ark.NewClient 创建）
func NewArkProvider(client *ark.Client) *ArkProvider {
	return &ArkProvider{client: client}
}

// Name 提供者名称
func (p *ArkProvider) Name() string {
	return "volcengine"
}

// Stream 流式调用 Ark ChatCompletion
func (p *ArkProvider) Stream(ctx context.Context, req *shottools.GenerationRequest) (iter.Seq2[string, error], error) {
	if p.client == nil {
		return nil, fmt.Errorf("ark client is required")
	}

	reader, err := p.client.CreateChatCompletionStream(ctx, systemPrompt, req.Prompt)
	if err != nil {
		return nil, shottools.NewProviderError(p.Name(), err)
	}

	return recvSeq(reader.Recv, reader.Close, func(s string) string { return s }), nil
}
