package shottools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"storyshot/internal/model/shot"
)

// markdownFencePattern 匹配 ```json ... ``` 包裹的内容
var markdownFencePattern = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?\\s*\\n(.*?)\\n\\s*```\\s*$")

// CleanJSONContent 移除大模型常见的 markdown 代码块标记
// 只去掉外层包装，不修改 JSON 本身
func CleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if matches := markdownFencePattern.FindStringSubmatch(content); len(matches) > 1 {
		content = matches[1]
	}
	return strings.TrimSpace(content)
}

// ParseShots 将大模型返回的完整文本解析为镜头集合
// 顶层必须是对象数组，否则返回 MalformedOutputError；
// 单个字段缺失或类型不符时取零值（空字符串 / 空列表 / 0），不做修复
func ParseShots(completeText string) ([]shot.Shot, error) {
	content := CleanJSONContent(completeText)
	if content == "" {
		return nil, newMalformedOutputError(completeText, "empty response", nil)
	}
	if content[0] != '[' {
		return nil, newMalformedOutputError(completeText, "response is not a JSON array", nil)
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(content), &records); err != nil {
		return nil, newMalformedOutputError(completeText, "invalid JSON", err)
	}

	shots := make([]shot.Shot, 0, len(records))
	for i, raw := range records {
		s, err := decodeShot(raw)
		if err != nil {
			return nil, newMalformedOutputError(completeText, fmt.Sprintf("record %d is not an object", i), err)
		}
		shots = append(shots, s)
	}
	return shots, nil
}

// decodeShot 显式地把一条记录映射到 Shot，每个字段独立取默认值
func decodeShot(raw json.RawMessage) (shot.Shot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return shot.Shot{}, fmt.Errorf("unexpected token %q", firstToken(trimmed))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return shot.Shot{}, err
	}

	return shot.Shot{
		SceneNumber:              intField(fields, "scene_number"),
		ShotNumber:               intField(fields, "shot_number"),
		CameraView:               stringField(fields, "camera_view"),
		CameraMotion:             shot.CameraMotion(stringField(fields, "camera_motion")),
		Characters:               stringsField(fields, "characters"),
		Dialogue:                 stringField(fields, "dialogue"),
		Action:                   stringField(fields, "action"),
		Setting:                  stringField(fields, "setting"),
		StartingImageDescription: stringField(fields, "starting_image_description"),
	}, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

func intField(fields map[string]json.RawMessage, key string) int {
	raw, ok := fields[key]
	if !ok {
		return 0
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	if v != math.Trunc(v) {
		return 0
	}
	return int(v)
}

// stringsField 解析字符串数组，非字符串元素（包括 null）跳过
func stringsField(fields map[string]json.RawMessage, key string) []string {
	out := []string{}
	raw, ok := fields[key]
	if !ok {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var s *string
		if err := json.Unmarshal(item, &s); err == nil && s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func firstToken(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return string(b[:1])
}

// MarshalShots 将镜头集合序列化为持久化格式（缩进 JSON）
func MarshalShots(shots []shot.Shot) ([]byte, error) {
	if shots == nil {
		shots = []shot.Shot{}
	}
	return json.MarshalIndent(shots, "", "  ")
}
