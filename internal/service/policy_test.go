package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d60-Lab/post-review/internal/model"
)

func TestAuthorize(t *testing.T) {
	author := &model.User{ID: "u-author", Role: model.RoleAuthor}
	otherAuthor := &model.User{ID: "u-author2", Role: model.RoleAuthor}
	manager := &model.User{ID: "u-manager", Role: model.RoleManager}
	admin := &model.User{ID: "u-admin", Role: model.RoleAdmin}
	post := &model.Post{ID: "p1", AuthorID: author.ID, Status: model.PostPending}

	cases := []struct {
		name    string
		actor   *model.User
		action  Action
		post    *model.Post
		allowed bool
	}{
		{"anyone lists", author, ActionList, nil, true},
		{"anyone creates", author, ActionCreate, nil, true},

		{"author views own", author, ActionView, post, true},
		{"author cannot view others", otherAuthor, ActionView, post, false},
		{"manager views any", manager, ActionView, post, true},
		{"admin views any", admin, ActionView, post, true},

		{"author updates own", author, ActionUpdate, post, true},
		{"author cannot update others", otherAuthor, ActionUpdate, post, false},
		{"manager cannot update", manager, ActionUpdate, post, false},
		{"admin cannot update", admin, ActionUpdate, post, false},

		{"manager approves", manager, ActionApprove, post, true},
		{"admin approves", admin, ActionApprove, post, true},
		{"author cannot approve", otherAuthor, ActionApprove, post, false},
		{"manager rejects", manager, ActionReject, post, true},
		{"author cannot reject", otherAuthor, ActionReject, post, false},

		{"admin deletes", admin, ActionDelete, post, true},
		{"manager cannot delete", manager, ActionDelete, post, false},
		{"author cannot delete", author, ActionDelete, post, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.action, tc.post)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.IsType(t, &AuthorizationError{}, err)
			}
		})
	}
}

// 自审禁令对 canApprove 的角色同样生效
func TestAuthorizeSelfReview(t *testing.T) {
	manager := &model.User{ID: "u-m", Role: model.RoleManager}
	admin := &model.User{ID: "u-a", Role: model.RoleAdmin}
	ownByManager := &model.Post{ID: "p1", AuthorID: manager.ID}
	ownByAdmin := &model.Post{ID: "p2", AuthorID: admin.ID}

	assert.IsType(t, &AuthorizationError{}, Authorize(manager, ActionApprove, ownByManager))
	assert.IsType(t, &AuthorizationError{}, Authorize(manager, ActionReject, ownByManager))
	assert.IsType(t, &AuthorizationError{}, Authorize(admin, ActionApprove, ownByAdmin))
	assert.IsType(t, &AuthorizationError{}, Authorize(admin, ActionReject, ownByAdmin))
	// admin 删除自己的帖子不受自审禁令限制
	assert.NoError(t, Authorize(admin, ActionDelete, ownByAdmin))
}

func TestRoleCapabilities(t *testing.T) {
	assert.False(t, model.RoleAuthor.CanApprove())
	assert.True(t, model.RoleManager.CanApprove())
	assert.True(t, model.RoleAdmin.CanApprove())

	assert.False(t, model.RoleAuthor.CanDelete())
	assert.False(t, model.RoleManager.CanDelete())
	assert.True(t, model.RoleAdmin.CanDelete())
}
