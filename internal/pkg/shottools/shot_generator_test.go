package shottools

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestShotGenerator_Generate(t *testing.T) {
	Convey("ShotGenerator.Generate 生成镜头集合", t, func() {
		ctx := context.Background()
		raw := loadFixture(t, "knight_dragon.json")
		story := "A knight rides into the mountains to face the dragon that burned his village."

		Convey("半分钟动漫风格得到 6 个镜头、2 个角色、2 个场景", func() {
			provider := &fakeProvider{fragments: chunk(raw, 64)}
			gen := NewShotGenerator(provider)

			var pushed strings.Builder
			result, err := gen.Generate(ctx, story, 0.5, "anime", func(f string) { pushed.WriteString(f) })
			So(err, ShouldBeNil)
			So(provider.calls, ShouldEqual, 1)
			So(provider.lastReq.ShotCount, ShouldEqual, 6)
			So(provider.lastReq.ResponseFormat, ShouldEqual, ResponseFormatJSON)

			So(result.RawText, ShouldEqual, raw)
			So(pushed.String(), ShouldEqual, raw)
			So(len(result.Shots), ShouldEqual, 6)
			So(result.Analysis.Characters, ShouldResemble, []string{"Dragon", "Knight"})
			So(len(result.Analysis.ImageDescriptions), ShouldEqual, 6)

			st := result.Analysis.Statistics
			So(st.ExpectedShots, ShouldEqual, 6)
			So(st.ActualShots, ShouldEqual, 6)
			So(st.SceneCount, ShouldEqual, 2)
			So(st.CharacterCount, ShouldEqual, 2)
			So(st.CountMatches, ShouldBeTrue)
			So(result.String(), ShouldEqual, "shots=6/6 scenes=2 characters=2")
		})

		Convey("镜头数与期望不一致时照常返回", func() {
			provider := &fakeProvider{fragments: chunk(raw, 100)}
			result, err := NewShotGenerator(provider).Generate(ctx, story, 1.0, "anime", nil)
			So(err, ShouldBeNil)
			So(result.Analysis.Statistics.ExpectedShots, ShouldEqual, 12)
			So(result.Analysis.Statistics.ActualShots, ShouldEqual, 6)
			So(result.Analysis.Statistics.CountMatches, ShouldBeFalse)
		})

		Convey("参数非法时不调用提供者", func() {
			provider := &fakeProvider{fragments: []string{raw}}
			gen := NewShotGenerator(provider)

			_, err := gen.Generate(ctx, story, 0, "anime", nil)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

			_, err = gen.Generate(ctx, story, -2, "anime", nil)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

			_, err = gen.Generate(ctx, "", 1, "anime", nil)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

			_, err = gen.Generate(ctx, story, 1, " ", nil)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

			So(provider.calls, ShouldEqual, 0)
		})

		Convey("提交请求失败包装为提供者错误", func() {
			cause := errors.New("401 unauthorized")
			provider := &fakeProvider{streamErr: cause}
			_, err := NewShotGenerator(provider).Generate(ctx, story, 0.5, "anime", nil)

			So(errors.Is(err, ErrGenerationProvider), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)

			var pErr *ProviderError
			So(errors.As(err, &pErr), ShouldBeTrue)
			So(pErr.Provider, ShouldEqual, "fake")
		})

		Convey("流中途出错不返回部分结果", func() {
			provider := &fakeProvider{fragments: chunk(raw, 64)[:3], midErr: errors.New("connection reset")}
			result, err := NewShotGenerator(provider).Generate(ctx, story, 0.5, "anime", nil)
			So(result, ShouldBeNil)
			So(errors.Is(err, ErrGenerationProvider), ShouldBeTrue)
		})

		Convey("模型返回文字说明时报格式错误", func() {
			provider := &fakeProvider{fragments: []string{"I cannot ", "do that."}}
			_, err := NewShotGenerator(provider).Generate(ctx, story, 0.5, "anime", nil)
			So(errors.Is(err, ErrMalformedOutput), ShouldBeTrue)
			So(errors.Is(err, ErrGenerationProvider), ShouldBeFalse)
		})

		Convey("没有提供者", func() {
			_, err := NewShotGenerator(nil).Generate(ctx, story, 0.5, "anime", nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestAccumulate(t *testing.T) {
	Convey("Accumulate 拼接片段", t, func() {
		Convey("跳过空片段，回调只收到非空片段", func() {
			seq := func(yield func(string, error) bool) {
				for _, f := range []string{"[", "", "{}", "]"} {
					if !yield(f, nil) {
						return
					}
				}
			}
			var got []string
			text, err := Accumulate(seq, func(f string) { got = append(got, f) })
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "[{}]")
			So(got, ShouldResemble, []string{"[", "{}", "]"})
		})

		Convey("回调可以为 nil", func() {
			seq := func(yield func(string, error) bool) { yield("abc", nil) }
			text, err := Accumulate(seq, nil)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "abc")
		})

		Convey("出错时丢弃已拼接的部分", func() {
			cause := errors.New("boom")
			seq := func(yield func(string, error) bool) {
				if !yield("partial", nil) {
					return
				}
				yield("", cause)
			}
			text, err := Accumulate(seq, nil)
			So(err, ShouldEqual, cause)
			So(text, ShouldEqual, "")
		})
	})
}

func TestNewProviderError(t *testing.T) {
	Convey("NewProviderError", t, func() {
		So(NewProviderError("openai", nil), ShouldBeNil)

		first := NewProviderError("gemini", errors.New("quota exceeded"))
		second := NewProviderError("openai", first)
		So(second, ShouldEqual, first)
		So(second.Error(), ShouldContainSubstring, "gemini")
	})
}
