package shottools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storyshot/internal/model/shot"
)

// ShotGenerator 镜头生成器，把故事拆分为镜头集合
//
// 设计原则：
//   - 不负责落库 / 不依赖 HTTP，只负责组装 prompt、调用注入的提供者并解析结果
//   - 每次调用的中间数据都是局部变量，可以被多个请求并发使用
type ShotGenerator struct {
	provider StreamProvider
}

// NewShotGenerator 创建镜头生成器
//
// Args:
//   - provider: 流式大模型提供者（由上层注入，便于在不同环境下切换实现）
//
// Returns:
//   - *ShotGenerator: 生成器实例
func NewShotGenerator(provider StreamProvider) *ShotGenerator {
	return &ShotGenerator{provider: provider}
}

// Generation 一次生成的完整结果
type Generation struct {
	Request  *GenerationRequest // 实际发送的请求
	RawText  string             // 提供者返回的完整文本
	Shots    []shot.Shot        // 解析后的镜头集合
	Analysis *Analysis          // 角色、描述、统计
}

// Generate 生成镜头集合
// 顺序：校验 -> 计算镜头数 -> 构造 prompt -> 流式调用并拼接 -> 解析 -> 统计
// 任意阶段失败立即返回，不返回部分结果
func (g *ShotGenerator) Generate(
	ctx context.Context,
	storyText string,
	durationMinutes float64,
	style string,
	onFragment FragmentFunc,
) (*Generation, error) {
	if g.provider == nil {
		return nil, errors.New("stream provider is required")
	}
	if strings.TrimSpace(storyText) == "" {
		return nil, invalidInput("story text is empty")
	}
	if strings.TrimSpace(style) == "" {
		return nil, invalidInput("style is empty")
	}

	shotCount, err := CalculateShots(durationMinutes)
	if err != nil {
		return nil, err
	}

	req, err := BuildShotPrompt(storyText, shotCount, style)
	if err != nil {
		return nil, err
	}

	fragments, err := g.provider.Stream(ctx, req)
	if err != nil {
		return nil, NewProviderError(g.provider.Name(), err)
	}

	rawText, err := Accumulate(fragments, onFragment)
	if err != nil {
		return nil, NewProviderError(g.provider.Name(), err)
	}

	shots, err := ParseShots(rawText)
	if err != nil {
		return nil, err
	}

	return &Generation{
		Request:  req,
		RawText:  rawText,
		Shots:    shots,
		Analysis: Analyze(shots, shotCount, durationMinutes),
	}, nil
}

// String 简要描述（用于日志）
func (g *Generation) String() string {
	if g == nil || g.Analysis == nil {
		return "<nil>"
	}
	st := g.Analysis.Statistics
	return fmt.Sprintf("shots=%d/%d scenes=%d characters=%d", st.ActualShots, st.ExpectedShots, st.SceneCount, st.CharacterCount)
}
