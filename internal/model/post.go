package model

import "time"

// PostStatus 帖子生命周期状态
type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

// Valid 状态取值是否合法
func (s PostStatus) Valid() bool {
	switch s {
	case PostPending, PostApproved, PostRejected:
		return true
	}
	return false
}

// Post 帖子：创建后 author_id 不再变更；approved_by / rejected_reason
// 仅在审批转移中写入
type Post struct {
	ID             string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Body           string     `gorm:"type:text;not null" json:"body"`
	Status         PostStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_post_status;index:idx_post_author_status" json:"status"`
	AuthorID       string     `gorm:"type:varchar(36);not null;index:idx_post_author_status" json:"author_id"`
	Author         *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ApprovedBy     *string    `gorm:"type:varchar(36)" json:"approved_by,omitempty"`
	Approver       *User      `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	RejectedReason *string    `gorm:"type:text" json:"rejected_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) IsPending() bool  { return p.Status == PostPending }
func (p *Post) IsApproved() bool { return p.Status == PostApproved }
func (p *Post) IsRejected() bool { return p.Status == PostRejected }
