package shot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"storyshot/internal/config"
	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/shottools"
	shotsvc "storyshot/internal/service/shot"
)

// fakeShotService 记录入参并返回预设结果
type fakeShotService struct {
	fragments []string
	run       *shot.Run
	err       error
	lastInput *shotsvc.GenerateShotsInput
	runs      []*shot.Run
	lastLimit int64
}

func (s *fakeShotService) GenerateShots(_ context.Context, in *shotsvc.GenerateShotsInput, onFragment shottools.FragmentFunc) (*shot.Run, error) {
	s.lastInput = in
	for _, f := range s.fragments {
		if onFragment != nil {
			onFragment(f)
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.run, nil
}

func (s *fakeShotService) AnalyzeShots(_ context.Context, shots []shot.Shot, minutes float64) (*shottools.Analysis, error) {
	if minutes < 0 {
		return nil, fmt.Errorf("%w: negative", shottools.ErrInvalidInput)
	}
	return shottools.Analyze(shots, len(shots), minutes), nil
}

func (s *fakeShotService) GetRun(_ context.Context, runID string) (*shot.Run, error) {
	if s.run != nil && s.run.ID == runID {
		return s.run, nil
	}
	return nil, shotsvc.ErrRunNotFound
}

func (s *fakeShotService) ListRuns(_ context.Context, _ string, limit int64) ([]*shot.Run, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.runs, nil
}

func (s *fakeShotService) OpenArtifact(_ context.Context, runID, name string) (io.ReadCloser, error) {
	if s.run == nil || s.run.ID != runID {
		return nil, shotsvc.ErrRunNotFound
	}
	if _, ok := s.run.Artifacts[name]; !ok {
		return nil, shotsvc.ErrArtifactNotFound
	}
	return io.NopCloser(strings.NewReader(`["Dragon","Knight"]`)), nil
}

func sampleRun() *shot.Run {
	return &shot.Run{
		ID:    "run-1",
		Style: "anime",
		Shots: []shot.Shot{
			{SceneNumber: 1, ShotNumber: 1, CameraMotion: shot.CameraMotionStatic, Characters: []string{"Knight"}},
			{SceneNumber: 2, ShotNumber: 1, CameraMotion: shot.CameraMotionZoomIn, Characters: []string{"Dragon"}},
		},
		Characters:        []string{"Dragon", "Knight"},
		ImageDescriptions: []string{},
		Artifacts:         map[string]string{"characters_0min_anime.json": "/data/runs/run-1/characters_0min_anime.json"},
		Statistics:        shot.Statistics{ExpectedShots: 2, ActualShots: 2, SceneCount: 2, CharacterCount: 2, CountMatches: true},
	}
}

func newTestRouter(svc shotsvc.ShotService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, config.GenerationConfig{})
	r := gin.New()
	r.POST("/generate-shots", h.GenerateShots)
	r.POST("/api/v1/shots/generate/stream", h.GenerateShotsStream)
	r.POST("/api/v1/shots/analyze", h.AnalyzeShots)
	r.GET("/api/v1/shots/runs", h.ListRuns)
	r.GET("/api/v1/shots/runs/:run_id", h.GetRun)
	r.GET("/api/v1/shots/runs/:run_id/artifacts/:name", h.GetArtifact)
	return r
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_GenerateShots(t *testing.T) {
	Convey("POST /generate-shots", t, func() {
		svc := &fakeShotService{run: sampleRun()}
		r := newTestRouter(svc)

		Convey("未填写时长和风格时使用默认值", func() {
			w := doRequest(r, http.MethodPost, "/generate-shots", `{"story_text":"A knight meets a dragon."}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.lastInput.DurationMinutes, ShouldEqual, DefaultDurationMinutes)
			So(svc.lastInput.Style, ShouldEqual, DefaultStyle)

			var resp GenerateShotsResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, 0)
			So(resp.Message, ShouldEqual, "Shots generated successfully")
			So(len(resp.Shots), ShouldEqual, 2)
			So(resp.Data.RunID, ShouldEqual, "run-1")
			So(resp.Data.Characters, ShouldResemble, []string{"Dragon", "Knight"})
		})

		Convey("显式传入 0 分钟交给 service 校验", func() {
			svc.err = fmt.Errorf("%w: video_length_minutes must be positive", shottools.ErrInvalidInput)
			w := doRequest(r, http.MethodPost, "/generate-shots", `{"story_text":"x","video_length_minutes":0,"style":"anime"}`)
			So(svc.lastInput.DurationMinutes, ShouldEqual, 0)
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, CodeInvalidInput)
			So(resp.Detail, ShouldContainSubstring, "video_length_minutes")
		})

		Convey("缺少 story_text", func() {
			w := doRequest(r, http.MethodPost, "/generate-shots", `{"style":"anime"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(svc.lastInput, ShouldBeNil)
		})

		Convey("请求体不是 JSON", func() {
			w := doRequest(r, http.MethodPost, "/generate-shots", `story`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

// streamRecorder gin 的 Stream 需要 http.CloseNotifier
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func doStreamRequest(r http.Handler, target, body string) *streamRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	r.ServeHTTP(w, req)
	return w
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"invalid input", fmt.Errorf("wrap: %w", shottools.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{"provider", shottools.NewProviderError("openai", errors.New("401")), http.StatusBadGateway, CodeProvider},
		{"malformed", &shottools.MalformedOutputError{Reason: "not an array"}, http.StatusBadGateway, CodeMalformedOutput},
		{"deadline inside provider error", shottools.NewProviderError("gemini", context.DeadlineExceeded), http.StatusGatewayTimeout, CodeTimeout},
		{"not found", shotsvc.ErrRunNotFound, http.StatusNotFound, CodeRunNotFound},
		{"history disabled", shotsvc.ErrHistoryDisabled, http.StatusServiceUnavailable, CodeHistoryDisabled},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := errorStatus(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("errorStatus(%v) = %d/%d, want %d/%d", tt.err, status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestHandler_GenerateShotsStream(t *testing.T) {
	Convey("POST /api/v1/shots/generate/stream", t, func() {
		Convey("片段事件后跟结果事件", func() {
			svc := &fakeShotService{run: sampleRun(), fragments: []string{"[", "]"}}
			r := newTestRouter(svc)

			w := doStreamRequest(r, "/api/v1/shots/generate/stream", `{"story_text":"x","style":"anime"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/event-stream")

			body := w.Body.String()
			So(strings.Count(body, "event:fragment"), ShouldEqual, 2)
			So(body, ShouldContainSubstring, "event:result")
			So(strings.Index(body, "event:fragment"), ShouldBeLessThan, strings.Index(body, "event:result"))
		})

		Convey("推送片段后失败以 error 事件结束", func() {
			svc := &fakeShotService{
				fragments: []string{`[{"scene_number":1`, `, oops`},
				err:       &shottools.MalformedOutputError{Size: 26, Reason: "not a JSON array"},
			}
			r := newTestRouter(svc)

			w := doStreamRequest(r, "/api/v1/shots/generate/stream", `{"story_text":"x","style":"anime"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			body := w.Body.String()
			So(strings.Count(body, "event:fragment"), ShouldEqual, 2)
			So(strings.Count(body, "event:error"), ShouldEqual, 1)
			So(body, ShouldNotContainSubstring, "event:result")
			So(strings.LastIndex(body, "event:fragment"), ShouldBeLessThan, strings.Index(body, "event:error"))
			So(body, ShouldContainSubstring, fmt.Sprintf(`"code":%d`, CodeMalformedOutput))
		})

		Convey("第一个片段之前失败返回 JSON 错误", func() {
			svc := &fakeShotService{err: shottools.NewProviderError("openai", errors.New("quota"))}
			r := newTestRouter(svc)

			w := doStreamRequest(r, "/api/v1/shots/generate/stream", `{"story_text":"x"}`)
			So(w.Code, ShouldEqual, http.StatusBadGateway)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, CodeProvider)
		})
	})
}

func TestHandler_Runs(t *testing.T) {
	Convey("生成记录查询", t, func() {
		svc := &fakeShotService{run: sampleRun(), runs: []*shot.Run{sampleRun()}}
		r := newTestRouter(svc)

		Convey("获取存在的记录", func() {
			w := doRequest(r, http.MethodGet, "/api/v1/shots/runs/run-1", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"id":"run-1"`)
		})

		Convey("记录不存在", func() {
			w := doRequest(r, http.MethodGet, "/api/v1/shots/runs/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("列表传递 limit", func() {
			w := doRequest(r, http.MethodGet, "/api/v1/shots/runs?limit=5", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(svc.lastLimit, ShouldEqual, 5)
			So(w.Body.String(), ShouldContainSubstring, `"count":1`)
		})

		Convey("下载产物", func() {
			w := doRequest(r, http.MethodGet, "/api/v1/shots/runs/run-1/artifacts/characters_0min_anime.json", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "characters_0min_anime.json")
			So(w.Body.String(), ShouldEqual, `["Dragon","Knight"]`)
		})

		Convey("产物不存在", func() {
			w := doRequest(r, http.MethodGet, "/api/v1/shots/runs/run-1/artifacts/shot_output_9min_x.json", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, CodeArtifactMissing)
		})

		Convey("limit 不是数字", func() {
			w := doRequest(r, http.MethodGet, "/api/v1/shots/runs?limit=abc", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHandler_AnalyzeShots(t *testing.T) {
	Convey("POST /api/v1/shots/analyze", t, func() {
		r := newTestRouter(&fakeShotService{})

		Convey("返回角色、描述和统计", func() {
			body := `[{"scene_number":1,"characters":["Bob","Alice"],"starting_image_description":"d1"},
				{"scene_number":1,"characters":["Alice"],"starting_image_description":""}]`
			w := doRequest(r, http.MethodPost, "/api/v1/shots/analyze?video_length_minutes=0.25", body)
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Code int                `json:"code"`
				Data shottools.Analysis `json:"data"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Data.Characters, ShouldResemble, []string{"Alice", "Bob"})
			So(resp.Data.ImageDescriptions, ShouldResemble, []string{"d1"})
			So(resp.Data.Statistics.SceneCount, ShouldEqual, 1)
		})

		Convey("请求体超过上限", func() {
			saved := maxAnalyzeBodyBytes
			maxAnalyzeBodyBytes = 64
			defer func() { maxAnalyzeBodyBytes = saved }()

			body := "[" + strings.Repeat(`{"scene_number":1},`, 10) + `{"scene_number":1}]`
			w := doRequest(r, http.MethodPost, "/api/v1/shots/analyze", body)
			So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)

			var resp ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, CodeBodyTooLarge)
		})

		Convey("请求体不是数组", func() {
			w := doRequest(r, http.MethodPost, "/api/v1/shots/analyze", `{"shots":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}
