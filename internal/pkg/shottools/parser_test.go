package shottools

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"storyshot/internal/model/shot"
)

func TestParseShots(t *testing.T) {
	Convey("ParseShots 把模型输出解析为镜头集合", t, func() {
		Convey("完整的镜头数组", func() {
			shots, err := ParseShots(loadFixture(t, "knight_dragon.json"))
			So(err, ShouldBeNil)
			So(len(shots), ShouldEqual, 6)

			first := shots[0]
			So(first.SceneNumber, ShouldEqual, 1)
			So(first.ShotNumber, ShouldEqual, 1)
			So(first.CameraMotion, ShouldEqual, shot.CameraMotionPanRight)
			So(first.Characters, ShouldResemble, []string{"Knight"})
			So(shots[4].Characters, ShouldResemble, []string{"Knight", "Dragon"})
			So(shots[1].Dialogue, ShouldEqual, "Today it ends.")
		})

		Convey("markdown 代码块包裹的数组", func() {
			text := "```json\n[{\"scene_number\": 1, \"shot_number\": 1, \"characters\": []}]\n```"
			shots, err := ParseShots(text)
			So(err, ShouldBeNil)
			So(len(shots), ShouldEqual, 1)
			So(shots[0].Characters, ShouldNotBeNil)
			So(len(shots[0].Characters), ShouldEqual, 0)
		})

		Convey("空数组返回空集合", func() {
			shots, err := ParseShots("[]")
			So(err, ShouldBeNil)
			So(len(shots), ShouldEqual, 0)
		})

		Convey("缺失的字段取零值", func() {
			text := `[{"scene_number": 2, "shot_number": 1, "camera_view": "close-up", "camera_motion": "Static",
				"characters": ["Alice"], "action": "waves", "setting": "garden", "starting_image_description": "a garden"}]`
			shots, err := ParseShots(text)
			So(err, ShouldBeNil)
			So(len(shots), ShouldEqual, 1)
			So(shots[0].Dialogue, ShouldEqual, "")
			So(shots[0].SceneNumber, ShouldEqual, 2)
		})

		Convey("类型不符的字段取零值，不修复", func() {
			text := `[{"scene_number": "one", "shot_number": 1.5, "characters": ["Bob", 3, null], "dialogue": 42}]`
			shots, err := ParseShots(text)
			So(err, ShouldBeNil)
			So(shots[0].SceneNumber, ShouldEqual, 0)
			So(shots[0].ShotNumber, ShouldEqual, 0)
			So(shots[0].Characters, ShouldResemble, []string{"Bob"})
			So(shots[0].Dialogue, ShouldEqual, "")
		})

		Convey("运镜方式不在枚举内时原样保留", func() {
			shots, err := ParseShots(`[{"camera_motion": "Dolly Zoom"}]`)
			So(err, ShouldBeNil)
			So(shots[0].CameraMotion, ShouldEqual, shot.CameraMotion("Dolly Zoom"))
			So(shots[0].CameraMotion.IsValid(), ShouldBeFalse)
		})

		Convey("非 JSON 的文字说明返回格式错误", func() {
			_, err := ParseShots("Sure! Here is your shot list: the knight rides out.")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMalformedOutput), ShouldBeTrue)
		})

		Convey("顶层是对象而不是数组", func() {
			_, err := ParseShots(`{"shots": []}`)
			So(errors.Is(err, ErrMalformedOutput), ShouldBeTrue)
		})

		Convey("数组元素不是对象", func() {
			_, err := ParseShots(`[1, 2, 3]`)
			So(errors.Is(err, ErrMalformedOutput), ShouldBeTrue)
		})

		Convey("被截断的 JSON", func() {
			_, err := ParseShots(`[{"scene_number": 1, "shot_number"`)
			So(errors.Is(err, ErrMalformedOutput), ShouldBeTrue)
		})

		Convey("空输出", func() {
			_, err := ParseShots("   ")
			So(errors.Is(err, ErrMalformedOutput), ShouldBeTrue)
		})

		Convey("错误中携带响应大小和截断的片段", func() {
			raw := strings.Repeat("x", 500)
			_, err := ParseShots(raw)

			var mErr *MalformedOutputError
			So(errors.As(err, &mErr), ShouldBeTrue)
			So(mErr.Size, ShouldEqual, 500)
			So(mErr.Snippet, ShouldEqual, strings.Repeat("x", snippetLimit)+"...")
		})
	})
}

func TestMarshalShots(t *testing.T) {
	Convey("MarshalShots 的输出可以被 ParseShots 还原", t, func() {
		shots, err := ParseShots(loadFixture(t, "knight_dragon.json"))
		So(err, ShouldBeNil)

		data, err := MarshalShots(shots)
		So(err, ShouldBeNil)

		again, err := ParseShots(string(data))
		So(err, ShouldBeNil)
		So(len(again), ShouldEqual, len(shots))
		for i := range shots {
			So(again[i].Equal(shots[i]), ShouldBeTrue)
		}

		Convey("nil 集合序列化为空数组", func() {
			data, err := MarshalShots(nil)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "[]")
		})
	})
}
