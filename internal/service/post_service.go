package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/post-review/internal/model"
	"github.com/d60-Lab/post-review/internal/repository"
)

const (
	maxTitleLen  = 255
	maxReasonLen = 500
)

type CreatePostInput struct {
	Title string
	Body  string
}

// UpdatePostInput 仅 title / body 可改，nil 表示不改该字段
type UpdatePostInput struct {
	Title *string
	Body  *string
}

type ListPostsInput struct {
	Status string // 原样接收，非法值静默忽略
	Page   int
	Size   int
}

type PostService interface {
	Create(ctx context.Context, actor *model.User, in CreatePostInput) (*model.Post, error)
	Get(ctx context.Context, actor *model.User, id string) (*model.Post, []*model.PostLog, error)
	List(ctx context.Context, actor *model.User, in ListPostsInput) ([]*model.Post, int64, error)
	Update(ctx context.Context, actor *model.User, id string, in UpdatePostInput) (*model.Post, error)
	Approve(ctx context.Context, actor *model.User, id string) (*model.Post, error)
	Reject(ctx context.Context, actor *model.User, id, reason string) (*model.Post, error)
	Delete(ctx context.Context, actor *model.User, id string) error
}

type postService struct {
	db       *gorm.DB
	postRepo repository.PostRepository
	logRepo  repository.PostLogRepository
}

func NewPostService(db *gorm.DB, postRepo repository.PostRepository, logRepo repository.PostLogRepository) PostService {
	return &postService{db: db, postRepo: postRepo, logRepo: logRepo}
}

// Create 新帖强制 pending，作者与时间戳由实体自己写入
func (s *postService) Create(ctx context.Context, actor *model.User, in CreatePostInput) (*model.Post, error) {
	if err := Authorize(actor, ActionCreate, nil); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, &ValidationError{Field: "body", Message: "must not be empty"}
	}

	post := &model.Post{
		ID:       uuid.NewString(),
		Title:    title,
		Body:     in.Body,
		Status:   model.PostPending,
		AuthorID: actor.ID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return appendLog(tx, post.ID, actor.ID, model.ActionCreated, model.CreatedDetails{
			Title:  post.Title,
			Status: post.Status,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, post.ID)
}

func (s *postService) Get(ctx context.Context, actor *model.User, id string) (*model.Post, []*model.PostLog, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if post == nil {
		return nil, nil, &NotFoundError{Resource: "post", ID: id}
	}
	if err := Authorize(actor, ActionView, post); err != nil {
		return nil, nil, err
	}
	logs, err := s.logRepo.ListForPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return post, logs, nil
}

// List author 只见自己的帖子，manager / admin 全量；
// status 非法时不加过滤
func (s *postService) List(ctx context.Context, actor *model.User, in ListPostsInput) ([]*model.Post, int64, error) {
	if err := Authorize(actor, ActionList, nil); err != nil {
		return nil, 0, err
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size < 1 {
		in.Size = 15
	}
	if in.Size > 100 {
		in.Size = 100
	}

	f := repository.ListFilter{
		Offset: (in.Page - 1) * in.Size,
		Limit:  in.Size,
	}
	if actor.Role == model.RoleAuthor {
		f.AuthorID = actor.ID
	}
	if st := model.PostStatus(in.Status); st.Valid() {
		f.Status = st
	}
	return s.postRepo.List(ctx, f)
}

// Update 只改 title / body，状态不限；无实际变更时不落审计。
// 读取、鉴权、变更计算和写入共用一个事务，避免与并发删除 / 更新交错
func (s *postService) Update(ctx context.Context, actor *model.User, id string, in UpdatePostInput) (*model.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := Authorize(actor, ActionUpdate, post); err != nil {
			return err
		}

		updates := map[string]any{}
		changes := map[string]model.FieldChange{}
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if err := validateTitle(title); err != nil {
				return err
			}
			if title != post.Title {
				updates["title"] = title
				changes["title"] = model.FieldChange{Old: post.Title, New: title}
			}
		}
		if in.Body != nil {
			if strings.TrimSpace(*in.Body) == "" {
				return &ValidationError{Field: "body", Message: "must not be empty"}
			}
			if *in.Body != post.Body {
				updates["body"] = *in.Body
				changes["body"] = model.FieldChange{Old: post.Body, New: *in.Body}
			}
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model.Post{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return appendLog(tx, id, actor.ID, model.ActionUpdated, model.UpdatedDetails{Changes: changes})
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, id)
}

func (s *postService) Approve(ctx context.Context, actor *model.User, id string) (*model.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := Authorize(actor, ActionApprove, post); err != nil {
			return err
		}
		if err := claimPending(tx, id, "approve", map[string]any{
			"status":          model.PostApproved,
			"approved_by":     actor.ID,
			"rejected_reason": nil,
		}); err != nil {
			return err
		}
		return appendLog(tx, id, actor.ID, model.ActionApproved, model.ApprovedDetails{
			PreviousStatus: model.PostPending,
			NewStatus:      model.PostApproved,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, id)
}

func (s *postService) Reject(ctx context.Context, actor *model.User, id, reason string) (*model.Post, error) {
	reason = strings.TrimSpace(reason)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := Authorize(actor, ActionReject, post); err != nil {
			return err
		}
		// 理由校验放在存在性与鉴权之后：缺失帖子报 404 而非 422
		if reason == "" {
			return &ValidationError{Field: "reason", Message: "must not be empty"}
		}
		if utf8.RuneCountInString(reason) > maxReasonLen {
			return &ValidationError{Field: "reason", Message: "must be at most 500 characters"}
		}
		if err := claimPending(tx, id, "reject", map[string]any{
			"status":          model.PostRejected,
			"approved_by":     actor.ID,
			"rejected_reason": reason,
		}); err != nil {
			return err
		}
		return appendLog(tx, id, actor.ID, model.ActionRejected, model.RejectedDetails{
			PreviousStatus: model.PostPending,
			NewStatus:      model.PostRejected,
			Reason:         reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, id)
}

// Delete 硬删除；审计条目先于删除写入同一事务
func (s *postService) Delete(ctx context.Context, actor *model.User, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findForUpdate(tx, id)
		if err != nil {
			return err
		}
		if err := Authorize(actor, ActionDelete, post); err != nil {
			return err
		}
		if err := appendLog(tx, id, actor.ID, model.ActionDeleted, model.DeletedDetails{
			Title:  post.Title,
			Status: post.Status,
		}); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

func validateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: "must be at most 255 characters"}
	}
	return nil
}

func findForUpdate(tx *gorm.DB, id string) (*model.Post, error) {
	var p model.Post
	err := tx.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "post", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// claimPending 条件更新抢占 pending 状态：两个审批并发时只有一个能改到行，
// 落空的一方重读当前状态并报 InvalidStateError
func claimPending(tx *gorm.DB, id, op string, updates map[string]any) error {
	res := tx.Model(&model.Post{}).
		Where("id = ? AND status = ?", id, model.PostPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		cur, err := findForUpdate(tx, id)
		if err != nil {
			return err
		}
		return &InvalidStateError{Status: cur.Status, Op: op}
	}
	return nil
}

func appendLog(tx *gorm.DB, postID, userID string, action model.PostAction, details any) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	entry := &model.PostLog{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Action:    action,
		Details:   raw,
		CreatedAt: time.Now(),
	}
	return tx.Create(entry).Error
}
