package shot

// CameraMotion 运镜方式
type CameraMotion string

const (
	CameraMotionStatic     CameraMotion = "Static"
	CameraMotionMoveLeft   CameraMotion = "Move Left"
	CameraMotionMoveRight  CameraMotion = "Move Right"
	CameraMotionMoveUp     CameraMotion = "Move Up"
	CameraMotionMoveDown   CameraMotion = "Move Down"
	CameraMotionPushIn     CameraMotion = "Push In"
	CameraMotionPullOut    CameraMotion = "Pull Out"
	CameraMotionZoomIn     CameraMotion = "Zoom In"
	CameraMotionZoomOut    CameraMotion = "Zoom Out"
	CameraMotionPanLeft    CameraMotion = "Pan Left"
	CameraMotionPanRight   CameraMotion = "Pan Right"
	CameraMotionOrbitLeft  CameraMotion = "Orbit Left"
	CameraMotionOrbitRight CameraMotion = "Orbit Right"
	CameraMotionCraneUp    CameraMotion = "Crane Up"
	CameraMotionCraneDown  CameraMotion = "Crane Down"
)

// CameraMotions 所有合法的运镜方式（顺序即提示词中的顺序）
var CameraMotions = []CameraMotion{
	CameraMotionStatic,
	CameraMotionMoveLeft,
	CameraMotionMoveRight,
	CameraMotionMoveUp,
	CameraMotionMoveDown,
	CameraMotionPushIn,
	CameraMotionPullOut,
	CameraMotionZoomIn,
	CameraMotionZoomOut,
	CameraMotionPanLeft,
	CameraMotionPanRight,
	CameraMotionOrbitLeft,
	CameraMotionOrbitRight,
	CameraMotionCraneUp,
	CameraMotionCraneDown,
}

// String 返回运镜方式的字符串表示
func (m CameraMotion) String() string {
	return string(m)
}

// IsValid 是否属于固定的运镜枚举
func (m CameraMotion) IsValid() bool {
	for _, v := range CameraMotions {
		if v == m {
			return true
		}
	}
	return false
}

// RunStatus 生成任务状态
// 只有成功的生成会留档，失败直接返回错误
type RunStatus string

// RunStatusCompleted 已完成
const RunStatusCompleted RunStatus = "completed"

// String 返回状态的字符串表示
func (s RunStatus) String() string {
	return string(s)
}
