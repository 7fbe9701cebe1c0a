package shot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/cache"
	"storyshot/internal/pkg/ctxutil"
	"storyshot/internal/pkg/shottools"
)

var (
	// ErrRunNotFound 生成记录不存在
	ErrRunNotFound = errors.New("run not found")
	// ErrHistoryDisabled 未配置数据库，无法查询历史记录
	ErrHistoryDisabled = errors.New("run history is not configured")
)

// 列表查询的默认和最大条数
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// AnalyzeShots 对已有镜头集合做统计
// durationMinutes 为 0 时按镜头数反推时长（每镜头 5 秒）
func (s *shotService) AnalyzeShots(ctx context.Context, shots []shot.Shot, durationMinutes float64) (*shottools.Analysis, error) {
	if durationMinutes < 0 {
		return nil, fmt.Errorf("%w: video_length_minutes must not be negative", shottools.ErrInvalidInput)
	}
	if s.genCfg.MaxDuration > 0 && durationMinutes > s.genCfg.MaxDuration {
		return nil, fmt.Errorf("%w: video_length_minutes must not exceed %v", shottools.ErrInvalidInput, s.genCfg.MaxDuration)
	}

	expected := len(shots)
	if durationMinutes > 0 {
		n, err := shottools.CalculateShots(durationMinutes)
		if err != nil {
			return nil, err
		}
		expected = n
	} else {
		durationMinutes = float64(len(shots)*shottools.SecondsPerShot) / 60
	}

	return shottools.Analyze(shots, expected, durationMinutes), nil
}

// GetRun 获取生成记录（缓存 -> 数据库，数据库命中后回填缓存），产物地址重新签发
// context 中带有用户时只返回该用户的记录，其他用户的记录按不存在处理
func (s *shotService) GetRun(ctx context.Context, runID string) (*shot.Run, error) {
	run, err := s.findRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if userID, ok := ctxutil.GetUserID(ctx); ok && run.UserID != userID {
		return nil, ErrRunNotFound
	}
	return s.withFreshArtifactURLs(ctx, run), nil
}

// findRun 缓存 -> 数据库
func (s *shotService) findRun(ctx context.Context, runID string) (*shot.Run, error) {
	if s.cache != nil {
		var cached shot.Run
		err := s.cache.Get(ctx, runCacheKey(runID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !cache.IsMiss(err) {
			log.Warn().Err(err).Str("run_id", runID).Msg("读取生成记录缓存失败")
		}
	}

	if s.runRepo == nil {
		if s.cache != nil {
			return nil, ErrRunNotFound
		}
		return nil, ErrHistoryDisabled
	}

	run, err := s.runRepo.FindByID(ctx, runID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to find run: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, runCacheKey(run.ID), run, s.runCacheTTL()); err != nil {
			log.Warn().Err(err).Str("run_id", runID).Msg("回填生成记录缓存失败")
		}
	}
	return run, nil
}

// ListRuns 列出最近的生成记录
func (s *shotService) ListRuns(ctx context.Context, userID string, limit int64) ([]*shot.Run, error) {
	if s.runRepo == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.runRepo.ListRecent(ctx, userID, limit)
}

func runCacheKey(runID string) string {
	return cache.RunCacheKey(runID)
}

func (s *shotService) runCacheTTL() time.Duration {
	if s.cacheTTL > 0 {
		return s.cacheTTL
	}
	return cache.DefaultRunCacheTTL
}
