package service

import "github.com/d60-Lab/post-review/internal/model"

// Action 策略判定的动作（封闭枚举）
type Action string

const (
	ActionList    Action = "list"
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

// Authorize 纯判定函数：(actor, action, post) -> 允许 / AuthorizationError。
// list / create 不针对具体帖子，post 传 nil；
// 资源存在性在调用前检查，这里不产生 NotFound
func Authorize(actor *model.User, action Action, post *model.Post) error {
	switch action {
	case ActionList, ActionCreate:
		// 任何已登录用户都可以
		return nil

	case ActionView:
		// author 只能看自己的帖子，manager / admin 全可见
		if actor.Role == model.RoleAuthor && post.AuthorID != actor.ID {
			return &AuthorizationError{Reason: "you can only view your own posts"}
		}
		return nil

	case ActionUpdate:
		// 仅 author 且是帖子作者；manager / admin 不能编辑
		if actor.Role != model.RoleAuthor {
			return &AuthorizationError{Reason: "only authors can edit posts"}
		}
		if post.AuthorID != actor.ID {
			return &AuthorizationError{Reason: "you can only edit your own posts"}
		}
		return nil

	case ActionApprove, ActionReject:
		if !actor.Role.CanApprove() {
			return &AuthorizationError{Reason: "you are not allowed to review posts"}
		}
		// 禁止自审
		if post.AuthorID == actor.ID {
			return &AuthorizationError{Reason: "you cannot review your own post"}
		}
		return nil

	case ActionDelete:
		if !actor.Role.CanDelete() {
			return &AuthorizationError{Reason: "only admins can delete posts"}
		}
		return nil
	}
	return &AuthorizationError{Reason: "unknown action"}
}
