package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/post-review/internal/middleware"
	"github.com/d60-Lab/post-review/internal/service"
	"github.com/d60-Lab/post-review/pkg/response"
)

type createPostRequest struct {
	Title string `json:"title" binding:"required,max=255"`
	Body  string `json:"body" binding:"required"`
}

// updatePostRequest 显式列出可改字段，其余键一律拒绝
type updatePostRequest struct {
	Title *string `json:"title" binding:"omitempty,max=255"`
	Body  *string `json:"body"`
}

type rejectPostRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListPosts 帖子列表（按角色收敛可见范围）
// @Summary 帖子列表
// @Tags 帖子
// @Security BearerAuth
// @Param status query string false "状态过滤 pending/approved/rejected"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(15)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing bearer token")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "15"))
	posts, total, err := h.postSvc.List(c.Request.Context(), actor, service.ListPostsInput{
		Status: c.Query("status"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": size, "total": total, "list": posts})
}

// CreatePost 发帖（状态强制 pending）
// @Summary 创建帖子
// @Tags 帖子
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing bearer token")
		return
	}
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.postSvc.Create(c.Request.Context(), actor, service.CreatePostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, post)
}

// GetPost 帖子详情 + 审计轨迹
// @Summary 帖子详情
// @Tags 帖子
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing bearer token")
		return
	}
	post, logs, err := h.postSvc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"post": post, "logs": logs})
}

// UpdatePost 作者编辑标题 / 正文
// @Summary 编辑帖子
// @Tags 帖子
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "帖子ID"
// @Param request body updatePostRequest true "变更字段"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing bearer token")
		return
	}
	var req updatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.postSvc.Update(c.Request.Context(), actor, c.Param("id"), service.UpdatePostInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}

// ApprovePost 审批通过（仅 pending，禁止自审）
// @Summary 审批通过
// @Tags 审批
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts/{id}/approve [post]
func (h *Handler) ApprovePost(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing bearer token")
		return
	}
	post, err := h.postSvc.Approve(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}

// RejectPost 审批驳回（需给出原因）
// @Summary 审批驳回
// @Tags 审批
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "帖子ID"
// @Param request body rejectPostRequest true "驳回原因"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts/{id}/reject [post]
func (h *Handler) RejectPost(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing bearer token")
		return
	}
	var req rejectPostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.postSvc.Reject(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除（admin；审计先行，日志保留）
// @Summary 删除帖子
// @Tags 帖子
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "missing bearer token")
		return
	}
	if err := h.postSvc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
