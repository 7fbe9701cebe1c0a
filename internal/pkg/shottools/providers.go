package shottools

import (
	"context"
	"iter"
	"strings"
)

// StreamProvider 定义了以流式方式调用大模型的接口
// 具体的「如何调用大模型」由调用方通过实现此接口注入，方便单测和替换实现
type StreamProvider interface {
	// Name 提供者名称（用于日志和错误信息）
	Name() string

	// Stream 提交请求并返回增量输出序列
	//
	// Args:
	//   - ctx: 上下文（取消后序列应尽快结束）
	//   - req: 请求载荷
	//
	// Returns:
	//   - fragments: 有限、不可重放的文本片段序列；迭代中出现的错误通过第二个值返回，返回错误后序列结束
	//   - err: 提交请求失败（鉴权、网络等），应为 ProviderError
	Stream(ctx context.Context, req *GenerationRequest) (iter.Seq2[string, error], error)
}

// FragmentFunc 每收到一个片段时的回调，用于向交互式调用方推送进度
type FragmentFunc func(fragment string)

// Accumulate 消费片段序列并拼接为完整文本
// onFragment 可以为 nil；序列中的错误会立即中止并返回，已拼接的部分不返回
func Accumulate(fragments iter.Seq2[string, error], onFragment FragmentFunc) (string, error) {
	var b strings.Builder
	for fragment, err := range fragments {
		if err != nil {
			return "", err
		}
		if fragment == "" {
			continue
		}
		b.WriteString(fragment)
		if onFragment != nil {
			onFragment(fragment)
		}
	}
	return b.String(), nil
}
