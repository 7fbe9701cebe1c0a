package providers

import (
	"errors"
	"io"
	"iter"
	"sync/atomic"
)

// ErrStreamConsumed 序列已经被消费过（流式响应不可重放）
var ErrStreamConsumed = errors.New("stream already consumed")

// recvSeq 把 Recv/Close 形式的流包装为只能迭代一次的片段序列
// recv 返回 io.EOF 表示正常结束；提前 break 时也会调用 closeFn
func recvSeq[T any](recv func() (T, error), closeFn func(), text func(T) string) iter.Seq2[string, error] {
	var consumed atomic.Bool
	return func(yield func(string, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield("", ErrStreamConsumed)
			return
		}
		defer closeFn()

		for {
			chunk, err := recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(text(chunk), nil) {
				return
			}
		}
	}
}

// onceSeq 把 range-over-func 形式的序列包装为只能迭代一次
func onceSeq(seq iter.Seq2[string, error]) iter.Seq2[string, error] {
	var consumed atomic.Bool
	return func(yield func(string, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield("", ErrStreamConsumed)
			return
		}
		seq(yield)
	}
}
