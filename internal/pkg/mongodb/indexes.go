package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"storyshot/internal/model/shot"
)

// Indexed 需要维护索引的集合
type Indexed interface {
	Collection() string
	EnsureIndexes(ctx context.Context, db *mongo.Database) error
}

// collections 应用使用的全部集合
var collections = []Indexed{
	&shot.Run{},
}

// EnsureIndexes 应用启动时创建所有集合的索引，失败时带上集合名
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, c := range collections {
		if err := c.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", c.Collection(), err)
		}
	}
	return nil
}
