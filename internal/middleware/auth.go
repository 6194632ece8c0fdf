package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/post-review/internal/model"
	"github.com/d60-Lab/post-review/internal/service"
	"github.com/d60-Lab/post-review/pkg/logger"
	"github.com/d60-Lab/post-review/pkg/response"
)

const (
	actorKey  = "auth.actor"
	claimsKey = "auth.claims"
)

// Auth Bearer token 认证；通过后把 actor 放进请求上下文，
// 核心操作一律显式传 actor，不读全局身份
func Auth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}
		user, claims, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			// 只有认证失败才回 401；存储层故障按 500 上抛，不伪装成认证结果
			if errors.Is(err, service.ErrUnauthenticated) {
				response.Unauthorized(c, "invalid or expired token")
			} else {
				logger.Error("authenticate failed", zap.Error(err))
				response.InternalError(c, err)
			}
			c.Abort()
			return
		}
		c.Set(actorKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentUser 取当前请求的 actor
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*model.User)
	return u, ok
}

// CurrentClaims 取当前请求的 token 载荷（logout 用）
func CurrentClaims(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*service.Claims)
	return cl, ok
}
