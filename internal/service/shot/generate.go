package shot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/ctxutil"
	"storyshot/internal/pkg/id"
	"storyshot/internal/pkg/shottools"
)

// GenerateShots 生成镜头集合
// 流程：参数校验 -> 镜头数 -> prompt -> 流式生成 -> 解析 -> 统计 -> 留档
// 生成阶段任意一步失败都直接返回错误，不返回部分镜头；留档失败只记录日志
func (s *shotService) GenerateShots(ctx context.Context, in *GenerateShotsInput, onFragment shottools.FragmentFunc) (*shot.Run, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: request is nil", shottools.ErrInvalidInput)
	}
	in, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}

	runID := id.NewRunID()
	logger := log.With().
		Str("run_id", runID).
		Str("request_id", ctxutil.GetRequestID(ctx)).
		Str("provider", s.provider).
		Str("style", in.Style).
		Float64("duration_minutes", in.DurationMinutes).
		Logger()

	if s.genCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.genCfg.Timeout)
		defer cancel()
	}

	startTime := s.now()
	logger.Info().Int("story_length", len(in.StoryText)).Msg("开始生成镜头")

	gen, err := s.generator.Generate(ctx, in.StoryText, in.DurationMinutes, in.Style, onFragment)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(startTime)).Msg("镜头生成失败")
		return nil, fmt.Errorf("failed to generate shots: %w", err)
	}

	st := gen.Analysis.Statistics
	if !st.CountMatches {
		logger.Warn().
			Int("expected_shots", st.ExpectedShots).
			Int("actual_shots", st.ActualShots).
			Msg("生成的镜头数与期望不一致")
	}

	run := &shot.Run{
		ID:                runID,
		UserID:            in.UserID,
		StoryText:         in.StoryText,
		DurationMinutes:   in.DurationMinutes,
		Style:             gen.Request.Style,
		Provider:          s.provider,
		Prompt:            gen.Request.Prompt,
		Shots:             gen.Shots,
		Characters:        gen.Analysis.Characters,
		ImageDescriptions: gen.Analysis.ImageDescriptions,
		Statistics:        st,
		Status:            shot.RunStatusCompleted,
		ElapsedMs:         time.Since(startTime).Milliseconds(),
		CreatedAt:         startTime,
	}

	logger.Info().
		Int("actual_shots", st.ActualShots).
		Int("scene_count", st.SceneCount).
		Int("character_count", st.CharacterCount).
		Int("response_length", len(gen.RawText)).
		Int64("elapsed_ms", run.ElapsedMs).
		Msg("镜头生成完成")

	// 留档使用独立的 context，避免请求超时后产物写到一半
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	s.persistRun(persistCtx, run)

	return run, nil
}

// persistTimeout 留档（产物、数据库、缓存）的总超时时间
const persistTimeout = 30 * time.Second

// validateInput 参数校验，在调用大模型之前完成
// 返回去掉首尾空白的副本，不修改调用方的参数
func (s *shotService) validateInput(in *GenerateShotsInput) (*GenerateShotsInput, error) {
	norm := *in
	norm.StoryText = strings.TrimSpace(in.StoryText)
	norm.Style = strings.TrimSpace(in.Style)

	if norm.StoryText == "" {
		return nil, fmt.Errorf("%w: story_text is required", shottools.ErrInvalidInput)
	}
	if norm.Style == "" {
		return nil, fmt.Errorf("%w: style is required", shottools.ErrInvalidInput)
	}
	if norm.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: video_length_minutes must be positive, got %v", shottools.ErrInvalidInput, norm.DurationMinutes)
	}
	if s.genCfg.MaxDuration > 0 && norm.DurationMinutes > s.genCfg.MaxDuration {
		return nil, fmt.Errorf("%w: video_length_minutes must not exceed %v", shottools.ErrInvalidInput, s.genCfg.MaxDuration)
	}
	return &norm, nil
}

// persistRun 写产物、数据库和缓存，任一失败只记录日志
func (s *shotService) persistRun(ctx context.Context, run *shot.Run) {
	logger := log.With().Str("run_id", run.ID).Logger()

	if s.artCfg.Enabled && s.storage != nil {
		artifacts, err := s.saveArtifacts(ctx, run)
		if err != nil {
			logger.Warn().Err(err).Msg("保存生成产物失败")
		}
		run.Artifacts = artifacts
	}

	if s.runRepo != nil {
		if err := s.runRepo.Create(ctx, run); err != nil {
			logger.Warn().Err(err).Msg("保存生成记录失败")
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, runCacheKey(run.ID), run, s.runCacheTTL()); err != nil {
			logger.Warn().Err(err).Msg("缓存生成记录失败")
		}
	}
}
