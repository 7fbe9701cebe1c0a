package providers

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"storyshot/internal/config"
	"storyshot/internal/pkg/shottools"
)

// DefaultGeminiModel Gemini 默认模型
const DefaultGeminiModel = "gemini-2.5-pro"

// GeminiProvider Google Gemini 流式提供者
// 通过 ResponseMIMEType 要求模型直接输出 JSON
type GeminiProvider struct {
	client *genai.Client
	model  string
	cfg    *genai.GenerateContentConfig
}

// NewGeminiProvider 创建 Gemini 提供者
// API Key 来自配置，构造后不再读取环境变量
func NewGeminiProvider(ctx context.Context, cfg *config.AIConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: shottools.ResponseFormatJSON,
	}
	if cfg.Options.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(float32(cfg.Options.Temperature))
	}
	if cfg.Options.TopP > 0 {
		genCfg.TopP = genai.Ptr(float32(cfg.Options.TopP))
	}
	if cfg.Options.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(cfg.Options.MaxTokens)
	}

	return &GeminiProvider{
		client: client,
		model:  modelName,
		cfg:    genCfg,
	}, nil
}

// Name 提供者名称
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Stream 调用 GenerateContentStream，逐块返回文本
func (p *GeminiProvider) Stream(ctx context.Context, req *shottools.GenerationRequest) (iter.Seq2[string, error], error) {
	genCfg := *p.cfg
	if req.ResponseFormat != "" {
		genCfg.ResponseMIMEType = req.ResponseFormat
	}

	stream := p.client.Models.GenerateContentStream(ctx, p.model, genai.Text(req.Prompt), &genCfg)

	return onceSeq(func(yield func(string, error) bool) {
		for resp, err := range stream {
			if err != nil {
				yield("", err)
				return
			}
			if resp == nil {
				continue
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}), nil
}
