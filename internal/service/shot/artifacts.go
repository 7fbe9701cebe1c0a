package shot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"path"
	"regexp"

	"github.com/rs/zerolog/log"

	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/shottools"
	"storyshot/internal/pkg/storage"
)

// 产物文件名前缀
const (
	ArtifactShots        = "shot_output"
	ArtifactCharacters   = "characters"
	ArtifactDescriptions = "image_descriptions"
)

var (
	// ErrArtifactNotFound 生成记录没有该产物，或存储中已不存在
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrArtifactsDisabled 未配置产物存储
	ErrArtifactsDisabled = errors.New("artifact storage is not configured")
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ArtifactFileName 产物文件名：{kind}_{整数分钟}min_{style}.json
// 时长按截断取整，与历史输出保持一致（0.5 分钟 -> 0min）
func ArtifactFileName(kind string, durationMinutes float64, style string) string {
	safeStyle := unsafeNameChars.ReplaceAllString(style, "_")
	return fmt.Sprintf("%s_%dmin_%s.json", kind, int(durationMinutes), safeStyle)
}

// ArtifactSet 一次生成的三个产物
type ArtifactSet struct {
	Shots        []byte
	Characters   []byte
	Descriptions []byte
}

// BuildArtifacts 序列化镜头、角色、描述三个产物（缩进 JSON）
func BuildArtifacts(shots []shot.Shot, characters, descriptions []string) (*ArtifactSet, error) {
	shotsData, err := shottools.MarshalShots(shots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shots: %w", err)
	}
	charData, err := marshalStrings(characters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal characters: %w", err)
	}
	descData, err := marshalStrings(descriptions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal descriptions: %w", err)
	}
	return &ArtifactSet{Shots: shotsData, Characters: charData, Descriptions: descData}, nil
}

// SaveArtifacts 把三个产物写入存储，返回 文件名 -> URL
// 已经写入的文件在后续失败时保留，返回值中包含已成功的部分
func SaveArtifacts(
	ctx context.Context,
	st storage.Storage,
	prefix string,
	durationMinutes float64,
	style string,
	set *ArtifactSet,
) (map[string]string, error) {
	files := []struct {
		kind string
		data []byte
	}{
		{ArtifactShots, set.Shots},
		{ArtifactCharacters, set.Characters},
		{ArtifactDescriptions, set.Descriptions},
	}

	urls := make(map[string]string, len(files))
	for _, f := range files {
		name := ArtifactFileName(f.kind, durationMinutes, style)
		key := path.Join(prefix, name)
		url, err := st.Upload(ctx, key, bytes.NewReader(f.data), storage.ContentTypeJSON)
		if err != nil {
			return urls, fmt.Errorf("failed to upload %s: %w", name, err)
		}
		urls[name] = url
	}
	return urls, nil
}

// runArtifactPrefix 生成记录的产物写到 {prefix}/runs/{run_id}/ 下
func (s *shotService) runArtifactPrefix(runID string) string {
	return path.Join(s.artCfg.Prefix, "runs", runID)
}

func (s *shotService) saveArtifacts(ctx context.Context, run *shot.Run) (map[string]string, error) {
	set, err := BuildArtifacts(run.Shots, run.Characters, run.ImageDescriptions)
	if err != nil {
		return nil, err
	}
	return SaveArtifacts(ctx, s.storage, s.runArtifactPrefix(run.ID), run.DurationMinutes, run.Style, set)
}

// OpenArtifact 读取生成记录的某个产物文件，调用方负责关闭
func (s *shotService) OpenArtifact(ctx context.Context, runID, name string) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, ErrArtifactsDisabled
	}

	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if _, ok := run.Artifacts[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}

	key := path.Join(s.runArtifactPrefix(run.ID), name)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check artifact: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	return s.storage.Download(ctx, key)
}

// withFreshArtifactURLs 重新签发产物下载地址（OSS 预签名地址会过期）
// 返回副本，不修改缓存或仓库中的对象；签发失败时保留原地址
func (s *shotService) withFreshArtifactURLs(ctx context.Context, run *shot.Run) *shot.Run {
	if s.storage == nil || len(run.Artifacts) == 0 {
		return run
	}

	out := *run
	out.Artifacts = maps.Clone(run.Artifacts)
	prefix := s.runArtifactPrefix(run.ID)
	for name := range out.Artifacts {
		url, err := s.storage.GetPresignedDownloadURL(ctx, path.Join(prefix, name), 0)
		if err != nil {
			log.Warn().Err(err).Str("run_id", run.ID).Str("artifact", name).Msg("刷新产物下载地址失败")
			continue
		}
		out.Artifacts[name] = url
	}
	return &out
}

func marshalStrings(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.MarshalIndent(items, "", "  ")
}
