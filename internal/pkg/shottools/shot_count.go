package shottools

import "math"

// SecondsPerShot 每个镜头固定的时长预算（秒）
const SecondsPerShot = 5

// MaxShots 单次请求允许的镜头数上限，超出时按参数错误处理
const MaxShots = math.MaxInt32

// quotientEpsilon 浮点误差容忍度，避免 5 秒整数倍的时长因为乘法误差多算一个镜头
const quotientEpsilon = 1e-9

// CalculateShots 根据视频时长（分钟）计算需要的镜头数
// shots = ceil(minutes * 60 / 5)，有余数时向上取整以覆盖完整时长
//
// Args:
//   - durationMinutes: 视频时长（分钟），必须为正数
//
// Returns:
//   - shots: 镜头数（正整数）
//   - err: 时长非正、非有限数或镜头数超过 MaxShots 时返回 ErrInvalidInput
func CalculateShots(durationMinutes float64) (int, error) {
	if math.IsNaN(durationMinutes) || math.IsInf(durationMinutes, 0) {
		return 0, invalidInput("duration must be a finite number, got %v", durationMinutes)
	}
	if durationMinutes <= 0 {
		return 0, invalidInput("duration must be positive, got %v", durationMinutes)
	}

	quotient := durationMinutes * 60 / SecondsPerShot
	if quotient >= MaxShots {
		return 0, invalidInput("duration %v minutes exceeds the maximum of %d shots", durationMinutes, MaxShots)
	}
	if rounded := math.Round(quotient); math.Abs(quotient-rounded) < quotientEpsilon && rounded > 0 {
		return int(rounded), nil
	}
	return int(math.Ceil(quotient)), nil
}
