package shot

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storyshot/internal/model/shot"
)

// RunRepository 镜头生成记录仓库接口
type RunRepository interface {
	Create(ctx context.Context, run *shot.Run) error
	FindByID(ctx context.Context, id string) (*shot.Run, error)
	ListRecent(ctx context.Context, userID string, limit int64) ([]*shot.Run, error)
}

// RunRepo 镜头生成记录仓库实现
type RunRepo struct {
	coll *mongo.Collection
}

// NewRunRepo 创建镜头生成记录仓库
func NewRunRepo(db *mongo.Database) *RunRepo {
	var r shot.Run
	return &RunRepo{coll: db.Collection(r.Collection())}
}

// Create 创建记录
func (r *RunRepo) Create(ctx context.Context, run *shot.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = shot.RunStatusCompleted
	}
	_, err := r.coll.InsertOne(ctx, run)
	return err
}

// FindByID 根据ID查询记录
func (r *RunRepo) FindByID(ctx context.Context, id string) (*shot.Run, error) {
	var run shot.Run
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRecent 按创建时间倒序列出记录（userID 为空时不过滤用户）
// 列表不返回故事原文和提示词，减小响应体
func (r *RunRepo) ListRecent(ctx context.Context, userID string, limit int64) ([]*shot.Run, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit).
		SetProjection(bson.M{"story_text": 0, "prompt": 0})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	runs := make([]*shot.Run, 0)
	if err := cur.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
