package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PostAction 审计动作
type PostAction string

const (
	ActionCreated  PostAction = "created"
	ActionUpdated  PostAction = "updated"
	ActionApproved PostAction = "approved"
	ActionRejected PostAction = "rejected"
	ActionDeleted  PostAction = "deleted"
)

// PostLog 审计条目，追加后不再修改。
// post_id 故意不建外键：帖子删除后日志保留（孤儿引用用于追溯）
type PostLog struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string          `gorm:"type:varchar(36);not null;index:idx_post_log_post" json:"post_id"`
	UserID    string          `gorm:"type:varchar(36);not null" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action    PostAction      `gorm:"type:varchar(16);not null" json:"action"`
	Details   json.RawMessage `gorm:"type:text" json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

func (PostLog) TableName() string { return "post_logs" }

// FieldChange 更新前后值
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// 每种动作一种 details 结构（封闭集合）

type CreatedDetails struct {
	Title  string     `json:"title"`
	Status PostStatus `json:"status"`
}

type UpdatedDetails struct {
	Changes map[string]FieldChange `json:"changes"`
}

type ApprovedDetails struct {
	PreviousStatus PostStatus `json:"previous_status"`
	NewStatus      PostStatus `json:"new_status"`
}

type RejectedDetails struct {
	PreviousStatus PostStatus `json:"previous_status"`
	NewStatus      PostStatus `json:"new_status"`
	Reason         string     `json:"reason"`
}

type DeletedDetails struct {
	Title  string     `json:"title"`
	Status PostStatus `json:"status"`
}

// DecodeDetails 按动作解出对应的 details 结构
func DecodeDetails(action PostAction, raw json.RawMessage) (any, error) {
	var (
		v   any
		err error
	)
	switch action {
	case ActionCreated:
		d := CreatedDetails{}
		err = json.Unmarshal(raw, &d)
		v = d
	case ActionUpdated:
		d := UpdatedDetails{}
		err = json.Unmarshal(raw, &d)
		v = d
	case ActionApproved:
		d := ApprovedDetails{}
		err = json.Unmarshal(raw, &d)
		v = d
	case ActionRejected:
		d := RejectedDetails{}
		err = json.Unmarshal(raw, &d)
		v = d
	case ActionDeleted:
		d := DeletedDetails{}
		err = json.Unmarshal(raw, &d)
		v = d
	default:
		return nil, fmt.Errorf("unknown post action: %s", action)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
