package service

import (
	"errors"
	"fmt"

	"github.com/d60-Lab/post-review/internal/model"
)

// 四类领域错误，边界层据此映射 422 / 403 / 404 / 422；
// 存储层错误不包装成这四类，直接按 500 上抛

// ValidationError 字段级输入错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthorizationError 操作者无权执行该动作
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

// NotFoundError 引用的资源不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidStateError 状态机前置条件不满足
type InvalidStateError struct {
	Status model.PostStatus
	Op     string
}

func (e *InvalidStateError) Error() string {
	past := e.Op
	switch e.Op {
	case "approve":
		past = "approved"
	case "reject":
		past = "rejected"
	}
	return fmt.Sprintf("cannot %s a %s post: only pending posts can be %s", e.Op, e.Status, past)
}

// ErrUnauthenticated token 无效 / 过期 / 已吊销
var ErrUnauthenticated = errors.New("invalid or expired token")
