package shot

// Shot 镜头（约 5 秒的视频片段）
// 说明：scene_number / shot_number 由大模型给出，本系统不重新推导，也不校验单调性
type Shot struct {
	SceneNumber              int          `bson:"scene_number" json:"scene_number"`                             // 场景编号，用于把镜头分组为场景
	ShotNumber               int          `bson:"shot_number" json:"shot_number"`                               // 场景内的镜头编号
	CameraView               string       `bson:"camera_view" json:"camera_view"`                               // 景别描述，如 close-up / wide-angle
	CameraMotion             CameraMotion `bson:"camera_motion" json:"camera_motion"`                           // 运镜方式
	Characters               []string     `bson:"characters" json:"characters"`                                 // 出场角色（可为空）
	Dialogue                 string       `bson:"dialogue" json:"dialogue"`                                     // 台词（5 秒内可说完）
	Action                   string       `bson:"action" json:"action"`                                         // 画面中的动作
	Setting                  string       `bson:"setting" json:"setting"`                                       // 环境描述
	StartingImageDescription string       `bson:"starting_image_description" json:"starting_image_description"` // 首帧图片生成提示词（含风格）
}

// Equal 逐字段比较两个镜头
func (s Shot) Equal(o Shot) bool {
	if s.SceneNumber != o.SceneNumber ||
		s.ShotNumber != o.ShotNumber ||
		s.CameraView != o.CameraView ||
		s.CameraMotion != o.CameraMotion ||
		s.Dialogue != o.Dialogue ||
		s.Action != o.Action ||
		s.Setting != o.Setting ||
		s.StartingImageDescription != o.StartingImageDescription {
		return false
	}
	if len(s.Characters) != len(o.Characters) {
		return false
	}
	for i := range s.Characters {
		if s.Characters[i] != o.Characters[i] {
			return false
		}
	}
	return true
}

// Statistics 镜头集合统计信息
type Statistics struct {
	RequestedDurationMinutes float64 `bson:"requested_duration_minutes" json:"requested_duration_minutes"` // 请求的视频时长（分钟）
	ExpectedShots            int     `bson:"expected_shots" json:"expected_shots"`                         // 根据时长计算的镜头数
	ActualShots              int     `bson:"actual_shots" json:"actual_shots"`                             // 实际生成的镜头数
	SceneCount               int     `bson:"scene_count" json:"scene_count"`                               // 不同 scene_number 的数量
	CharacterCount           int     `bson:"character_count" json:"character_count"`                       // 不同角色的数量
	CountMatches             bool    `bson:"count_matches" json:"count_matches"`                           // 实际镜头数是否与期望一致
}
