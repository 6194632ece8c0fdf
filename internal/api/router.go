package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/post-review/config"
	_ "github.com/d60-Lab/post-review/docs"
	"github.com/d60-Lab/post-review/internal/api/handler"
	"github.com/d60-Lab/post-review/internal/middleware"
	"github.com/d60-Lab/post-review/internal/model"
	"github.com/d60-Lab/post-review/internal/service"
)

// NewRouter 组装路由；审批 / 删除路由带角色门槛，
// 帖子级判定在策略层再做一遍
func NewRouter(cfg *config.Config, h *handler.Handler, authSvc service.AuthService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.RateLimit(100, 200),
		gzip.Gzip(gzip.DefaultCompression),
		otelgin.Middleware("post-review"),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	authed := v1.Group("", middleware.Auth(authSvc))
	{
		authed.POST("/auth/logout", h.Logout)
		authed.GET("/auth/me", h.Me)

		posts := authed.Group("/posts")
		{
			posts.GET("", h.ListPosts)
			posts.POST("", h.CreatePost)
			posts.GET("/:id", h.GetPost)
			posts.PUT("/:id", h.UpdatePost)

			review := middleware.RequireRole(model.RoleManager, model.RoleAdmin)
			posts.POST("/:id/approve", review, h.ApprovePost)
			posts.POST("/:id/reject", review, h.RejectPost)

			posts.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeletePost)
		}
	}

	return r
}
