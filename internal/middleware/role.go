package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/post-review/internal/model"
	"github.com/d60-Lab/post-review/pkg/response"
)

// RequireRole 路由级角色门槛；具体到帖子的判定仍由策略层负责
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		actor, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}
		if _, ok := allowed[actor.Role]; !ok {
			response.Forbidden(c, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
