package shot

import (
	"context"
	"io"
	"time"

	"storyshot/internal/config"
	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/shottools"
	"storyshot/internal/pkg/storage"
	shotrepo "storyshot/internal/repository/shot"
)

// ShotService 镜头服务接口
// 定义 shot 模块 service 层提供的能力
type ShotService interface {
	// GenerateShots 把故事拆分为镜头集合，onFragment 不为 nil 时逐段推送模型输出
	GenerateShots(ctx context.Context, in *GenerateShotsInput, onFragment shottools.FragmentFunc) (*shot.Run, error)

	// AnalyzeShots 对已有的镜头集合计算角色、描述和统计（不调用大模型）
	AnalyzeShots(ctx context.Context, shots []shot.Shot, durationMinutes float64) (*shottools.Analysis, error)

	// GetRun 获取一次生成记录（先查缓存，再查数据库）
	GetRun(ctx context.Context, runID string) (*shot.Run, error)

	// ListRuns 列出最近的生成记录
	ListRuns(ctx context.Context, userID string, limit int64) ([]*shot.Run, error)

	// OpenArtifact 读取生成记录的产物文件（shot_output / characters / image_descriptions）
	OpenArtifact(ctx context.Context, runID, name string) (io.ReadCloser, error)
}

// GenerateShotsInput 生成请求参数
type GenerateShotsInput struct {
	StoryText       string  // 故事原文
	DurationMinutes float64 // 视频时长（分钟）
	Style           string  // 视觉风格
	UserID          string  // 请求用户（可选）
}

// RunCache 生成记录缓存（Redis 实现见 pkg/cache）
type RunCache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, dest any) error
}

// Deps 服务依赖，除 Provider 外都可以为空
type Deps struct {
	Provider  shottools.StreamProvider
	RunRepo   shotrepo.RunRepository
	Cache     RunCache
	Storage   storage.Storage
	Generate  config.GenerationConfig
	Artifacts config.ArtifactsConfig
	CacheTTL  time.Duration
}

type shotService struct {
	generator *shottools.ShotGenerator
	provider  string
	runRepo   shotrepo.RunRepository
	cache     RunCache
	storage   storage.Storage
	genCfg    config.GenerationConfig
	artCfg    config.ArtifactsConfig
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewShotService 创建镜头服务实例
func NewShotService(deps Deps) ShotService {
	providerName := ""
	if deps.Provider != nil {
		providerName = deps.Provider.Name()
	}
	return &shotService{
		generator: shottools.NewShotGenerator(deps.Provider),
		provider:  providerName,
		runRepo:   deps.RunRepo,
		cache:     deps.Cache,
		storage:   deps.Storage,
		genCfg:    deps.Generate,
		artCfg:    deps.Artifacts,
		cacheTTL:  deps.CacheTTL,
		now:       time.Now,
	}
}
