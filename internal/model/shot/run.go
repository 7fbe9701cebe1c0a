package shot

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run 一次镜头生成的记录
// 说明：镜头集合本身是一次请求内的临时数据，这里只是事后留档，不参与生成流程
type Run struct {
	ID                string            `bson:"_id" json:"id"`                                    // 运行ID（UUIDv7），即 Mongo 的 _id
	UserID            string            `bson:"user_id,omitempty" json:"user_id,omitempty"`       // 请求用户（启用认证时）
	StoryText         string            `bson:"story_text" json:"story_text"`                     // 原始故事文本
	DurationMinutes   float64           `bson:"duration_minutes" json:"duration_minutes"`         // 请求的时长（分钟）
	Style             string            `bson:"style" json:"style"`                               // 视觉风格
	Provider          string            `bson:"provider" json:"provider"`                         // 使用的大模型提供者
	Prompt            string            `bson:"prompt" json:"prompt"`                             // 实际发送的提示词
	Shots             []Shot            `bson:"shots" json:"shots"`                               // 镜头集合
	Characters        []string          `bson:"characters" json:"characters"`                     // 去重排序后的角色列表
	ImageDescriptions []string          `bson:"image_descriptions" json:"image_descriptions"`     // 首帧描述列表
	Statistics        Statistics        `bson:"statistics" json:"statistics"`                     // 统计信息
	Artifacts         map[string]string `bson:"artifacts,omitempty" json:"artifacts,omitempty"`   // 产物文件名 -> URL
	Status            RunStatus         `bson:"status" json:"status"`                             // 状态
	ElapsedMs         int64             `bson:"elapsed_ms" json:"elapsed_ms"`                     // 生成耗时（毫秒）
	CreatedAt         time.Time         `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (r *Run) Collection() string {
	return "shot_runs"
}

// EnsureIndexes 创建和维护索引
func (r *Run) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(r.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
		{
			Keys:    bson.D{{Key: "style", Value: 1}},
			Options: options.Index().SetName("idx_style"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
