package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/post-review/internal/model"
)

// PostLogRepository 只读检索；审计条目的写入与实体变更同事务，
// 不提供更新 / 删除入口
type PostLogRepository interface {
	ListForPost(ctx context.Context, postID string) ([]*model.PostLog, error)
}

type postLogRepository struct {
	db *gorm.DB
}

func NewPostLogRepository(db *gorm.DB) PostLogRepository { return &postLogRepository{db: db} }

func (r *postLogRepository) ListForPost(ctx context.Context, postID string) ([]*model.PostLog, error) {
	var logs []*model.PostLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
