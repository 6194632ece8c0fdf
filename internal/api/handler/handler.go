package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/d60-Lab/post-review/internal/service"
	"github.com/d60-Lab/post-review/pkg/logger"
	"github.com/d60-Lab/post-review/pkg/response"
)

type Handler struct {
	postSvc service.PostService
	authSvc service.AuthService
}

func New(postSvc service.PostService, authSvc service.AuthService) *Handler {
	return &Handler{postSvc: postSvc, authSvc: authSvc}
}

// bindJSON 绑定请求体；binding 标签校验失败映射为 422 字段级信息
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			msgs := make([]string, 0, len(vErrs))
			for _, fe := range vErrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			response.UnprocessableEntity(c, strings.Join(msgs, "; "))
			return false
		}
		response.BadRequest(c, err.Error())
		return false
	}
	return true
}

// fail 领域错误 → 响应码；其余按 500 上抛，不伪装成领域错误
func fail(c *gin.Context, err error) {
	var (
		vErr *service.ValidationError
		aErr *service.AuthorizationError
		nErr *service.NotFoundError
		sErr *service.InvalidStateError
	)
	switch {
	case errors.As(err, &vErr):
		response.UnprocessableEntity(c, vErr.Error())
	case errors.As(err, &aErr):
		response.Forbidden(c, aErr.Error())
	case errors.As(err, &nErr):
		response.NotFound(c, nErr.Error())
	case errors.As(err, &sErr):
		response.UnprocessableEntity(c, sErr.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		response.InternalError(c, err)
	}
}
