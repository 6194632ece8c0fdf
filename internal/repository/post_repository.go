package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/post-review/internal/model"
)

// ListFilter 列表条件；AuthorID / Status 为空表示不过滤
type ListFilter struct {
	AuthorID string
	Status   model.PostStatus
	Offset   int
	Limit    int
}

type PostRepository interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, f ListFilter) ([]*model.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

// FindByID 带 author / approver 快照；未找到时返回 (nil, nil)
func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Approver").
		Where("id = ?", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List 按 created_at 倒序，分页层依赖该稳定排序
func (r *postRepository) List(ctx context.Context, f ListFilter) ([]*model.Post, int64, error) {
	where := func(q *gorm.DB) *gorm.DB {
		if f.AuthorID != "" {
			q = q.Where("author_id = ?", f.AuthorID)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		return q
	}

	var total int64
	if err := where(r.db.WithContext(ctx).Model(&model.Post{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	err := where(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Approver").
		Order("created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
