package shottools

import (
	"context"
	"iter"
	"os"
	"testing"
)

// fakeProvider 按固定片段返回的提供者
type fakeProvider struct {
	fragments []string
	streamErr error // Stream 直接返回的错误
	midErr    error // 片段发送完后返回的错误
	calls     int
	lastReq   *GenerationRequest
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Stream(_ context.Context, req *GenerationRequest) (iter.Seq2[string, error], error) {
	p.calls++
	p.lastReq = req
	if p.streamErr != nil {
		return nil, p.streamErr
	}
	return func(yield func(string, error) bool) {
		for _, f := range p.fragments {
			if !yield(f, nil) {
				return
			}
		}
		if p.midErr != nil {
			yield("", p.midErr)
		}
	}, nil
}

// chunk 把文本切成固定大小的片段，模拟流式输出
func chunk(s string, size int) []string {
	var out []string
	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}
