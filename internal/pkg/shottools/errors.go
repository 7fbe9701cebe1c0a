package shottools

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput 调用方参数非法（时长非正、风格或故事为空），在调用大模型之前检测
	ErrInvalidInput = errors.New("invalid input")
	// ErrGenerationProvider 大模型提供者调用失败（鉴权、配额、网络、超时）
	ErrGenerationProvider = errors.New("generation provider error")
	// ErrMalformedOutput 大模型返回内容无法解析为镜头数组
	ErrMalformedOutput = errors.New("malformed output")
)

// invalidInput 构造参数错误
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ProviderError 包装提供者返回的原始错误
type ProviderError struct {
	Provider string // 提供者名称，如 openai / gemini
	Err      error  // 原始错误
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generation provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrGenerationProvider }

// NewProviderError 构造提供者错误，已经是 ProviderError 的直接返回
func NewProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: provider, Err: err}
}

// snippetLimit 错误信息中保留的原始响应长度（字符数）
const snippetLimit = 200

// MalformedOutputError 大模型输出格式错误，携带原始响应大小和片段用于排查
type MalformedOutputError struct {
	Size    int    // 原始响应字节数
	Snippet string // 原始响应开头片段
	Reason  string // 失败原因
	Err     error  // 底层解码错误（可选）
}

func (e *MalformedOutputError) Error() string {
	msg := fmt.Sprintf("malformed output (%d bytes): %s", e.Size, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Snippet != "" {
		msg += fmt.Sprintf(" [snippet: %q]", e.Snippet)
	}
	return msg
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool { return target == ErrMalformedOutput }

func newMalformedOutputError(raw, reason string, err error) *MalformedOutputError {
	return &MalformedOutputError{
		Size:    len(raw),
		Snippet: snippet(raw, snippetLimit),
		Reason:  reason,
		Err:     err,
	}
}

// snippet 截取前 n 个字符（按 rune 截断，避免截断多字节字符）
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
