package model

import "time"

// Role 用户角色（封闭枚举）
type Role string

const (
	RoleAuthor  Role = "author"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid 角色取值是否合法
func (r Role) Valid() bool {
	switch r {
	case RoleAuthor, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanApprove manager 和 admin 可以审批
func (r Role) CanApprove() bool { return r == RoleManager || r == RoleAdmin }

// CanDelete 仅 admin 可以删除
func (r Role) CanDelete() bool { return r == RoleAdmin }

// User 用户
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(16);not null;default:'author'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
