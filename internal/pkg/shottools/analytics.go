package shottools

import (
	"sort"

	"storyshot/internal/model/shot"
)

// ExtractCharacters 提取所有镜头中的角色，去重后按字母排序
// 区分大小写，完全相同才视为同一角色
func ExtractCharacters(shots []shot.Shot) []string {
	seen := make(map[string]struct{})
	characters := make([]string, 0)
	for _, s := range shots {
		for _, name := range s.Characters {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			characters = append(characters, name)
		}
	}
	sort.Strings(characters)
	return characters
}

// ExtractDescriptions 按镜头顺序提取首帧图片描述，跳过空描述
func ExtractDescriptions(shots []shot.Shot) []string {
	descriptions := make([]string, 0, len(shots))
	for _, s := range shots {
		if s.StartingImageDescription == "" {
			continue
		}
		descriptions = append(descriptions, s.StartingImageDescription)
	}
	return descriptions
}

// CountScenes 统计不同 scene_number 的数量
func CountScenes(shots []shot.Shot) int {
	scenes := make(map[int]struct{})
	for _, s := range shots {
		scenes[s.SceneNumber] = struct{}{}
	}
	return len(scenes)
}

// ComputeStatistics 计算镜头集合的统计信息
//
// Args:
//   - shots: 镜头集合
//   - requestedShots: 根据时长计算出的期望镜头数
//   - requestedDuration: 请求的时长（分钟）
func ComputeStatistics(shots []shot.Shot, requestedShots int, requestedDuration float64) shot.Statistics {
	return shot.Statistics{
		RequestedDurationMinutes: requestedDuration,
		ExpectedShots:            requestedShots,
		ActualShots:              len(shots),
		SceneCount:               CountScenes(shots),
		CharacterCount:           len(ExtractCharacters(shots)),
		CountMatches:             len(shots) == requestedShots,
	}
}

// Analysis 镜头集合的派生信息
type Analysis struct {
	Characters        []string        `json:"characters"`
	ImageDescriptions []string        `json:"image_descriptions"`
	Statistics        shot.Statistics `json:"statistics"`
}

// Analyze 一次性计算角色、描述和统计信息
func Analyze(shots []shot.Shot, requestedShots int, requestedDuration float64) *Analysis {
	return &Analysis{
		Characters:        ExtractCharacters(shots),
		ImageDescriptions: ExtractDescriptions(shots),
		Statistics:        ComputeStatistics(shots, requestedShots, requestedDuration),
	}
}
