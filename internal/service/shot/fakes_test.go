package shot

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"storyshot/internal/model/shot"
	"storyshot/internal/pkg/shottools"
)

const knightStory = "A knight rides into the mountains to face the dragon that burned his village."

func knightFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../pkg/shottools/testdata/knight_dragon.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

// fakeProvider 把固定文本按片段返回
type fakeProvider struct {
	text  string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Stream(ctx context.Context, _ *shottools.GenerationRequest) (iter.Seq2[string, error], error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	text := p.text
	return func(yield func(string, error) bool) {
		for len(text) > 0 {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			n := min(len(text), 40)
			if !yield(text[:n], nil) {
				return
			}
			text = text[n:]
		}
	}, nil
}

// fakeRunRepo 内存中的生成记录仓库
type fakeRunRepo struct {
	mu        sync.Mutex
	runs      map[string]*shot.Run
	createErr error
	lastLimit int64
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[string]*shot.Run)}
}

func (r *fakeRunRepo) Create(_ context.Context, run *shot.Run) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *fakeRunRepo) FindByID(_ context.Context, id string) (*shot.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return run, nil
}

func (r *fakeRunRepo) ListRecent(_ context.Context, userID string, limit int64) ([]*shot.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	out := make([]*shot.Run, 0)
	for _, run := range r.runs {
		if userID != "" && run.UserID != userID {
			continue
		}
		out = append(out, run)
	}
	return out, nil
}

// fakeCache 以 JSON 形式保存，行为与 Redis 缓存一致
type fakeCache struct {
	mu    sync.Mutex
	items map[string][]byte
	ttls  map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *fakeCache) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	c.ttls[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(data, dest)
}

var errUnavailable = errors.New("unavailable")
