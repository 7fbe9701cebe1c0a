package shottools

import (
	"fmt"
	"strings"

	"storyshot/internal/model/shot"
)

// ResponseFormatJSON 要求提供者返回的结构化格式
const ResponseFormatJSON = "application/json"

// GenerationRequest 发送给大模型提供者的请求载荷
type GenerationRequest struct {
	Prompt         string // 完整的指令文本（故事原文附在末尾）
	ResponseFormat string // 期望的返回格式（MIME）
	ShotCount      int    // 目标镜头数
	Style          string // 视觉风格
}

// BuildShotPrompt 构造镜头拆分的请求载荷
//
// Args:
//   - storyText: 故事原文，原样附在指令末尾
//   - shotCount: 目标镜头数（正整数）
//   - style: 视觉风格，如 anime / hyperrealistic
//
// Returns:
//   - req: 请求载荷
//   - err: 参数非法时返回 ErrInvalidInput
func BuildShotPrompt(storyText string, shotCount int, style string) (*GenerationRequest, error) {
	if strings.TrimSpace(storyText) == "" {
		return nil, invalidInput("story text is empty")
	}
	if shotCount <= 0 {
		return nil, invalidInput("shot count must be positive, got %d", shotCount)
	}
	style = strings.TrimSpace(style)
	if style == "" {
		return nil, invalidInput("style is empty")
	}

	return &GenerationRequest{
		Prompt:         buildShotPromptText(storyText, shotCount, style),
		ResponseFormat: ResponseFormatJSON,
		ShotCount:      shotCount,
		Style:          style,
	}, nil
}

func buildShotPromptText(storyText string, shotCount int, style string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %s-style movie adaptation of this story with %d shots (%d seconds per shot).\n",
		style, shotCount, SecondsPerShot)
	b.WriteString("Return a JSON array where each object follows this schema:\n")
	b.WriteString("{\n")
	b.WriteString("  \"scene_number\": [Scene number],\n")
	b.WriteString("  \"shot_number\": [Shot number within the scene],\n")
	b.WriteString("  \"camera_view\": \"[Description of the camera view, e.g., 'close-up', 'wide-angle']\",\n")
	fmt.Fprintf(&b, "  \"camera_motion\": \"[One of: %s]\",\n", cameraMotionList())
	b.WriteString("  \"characters\": [\"[Character's name]\"],\n")
	b.WriteString("  \"dialogue\": \"[Dialogue spoken in this shot, if any]\",\n")
	b.WriteString("  \"action\": \"[Description of the action occurring in this shot]\",\n")
	b.WriteString("  \"setting\": \"[Description of the environment and visual elements present]\",\n")
	fmt.Fprintf(&b, "  \"starting_image_description\": \"[Detailed description of the starting image used for AI image generation. "+
		"Describe it in %s style with matching visual aesthetics. Include character descriptions when they differ from the norm.]\"\n", style)
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "Dialogue must be short: each shot's dialogue must take less than %d seconds to speak.\n", SecondsPerShot)
	b.WriteString("Organize the shots into logical scenes from the story.\n")
	fmt.Fprintf(&b, "Keep the total number of shots to exactly %d.\n", shotCount)
	b.WriteString("Make sure every shot captures a crucial moment from the story.\n")
	fmt.Fprintf(&b, "Use %s-specific visual elements in the descriptions (e.g., for anime: expressive eyes, dynamic motion lines, stylized backgrounds).\n", style)
	b.WriteString("Respond with the JSON array only, without any surrounding prose.\n\n")

	b.WriteString("Here is the story to adapt:\n\n")
	b.WriteString(storyText)
	b.WriteString("\n")

	return b.String()
}

// cameraMotionList 生成 'Static', 'Move Left', ... 形式的枚举列表
func cameraMotionList() string {
	quoted := make([]string, len(shot.CameraMotions))
	for i, m := range shot.CameraMotions {
		quoted[i] = "'" + m.String() + "'"
	}
	return strings.Join(quoted, ", ")
}
