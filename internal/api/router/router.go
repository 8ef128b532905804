package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lixixy/commSysBackend/config"
	"github.com/Lixixy/commSysBackend/internal/api/handler"
	"github.com/Lixixy/commSysBackend/internal/api/middleware"
	"github.com/Lixixy/commSysBackend/internal/model"
	"github.com/Lixixy/commSysBackend/internal/service"
	"github.com/Lixixy/commSysBackend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, svc *service.Service, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RequireRole(svc.User, model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.TokenAuth(svc.Token, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/register-plus", h.Auth.RegisterPlus) // 权限由 Service 层按操作者身份判定

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetProfile)
				users.PUT("/me", h.User.UpdateProfile)
				users.GET("", adminOnly, h.User.List)
				users.GET("/:id", h.User.GetByID)
				users.PUT("/:id/password", h.User.ChangePassword)     // admin 或本人（Service 层鉴权）
				users.PUT("/:id/permission", h.User.ChangePermission) // 授权矩阵由 Service 层判定
				users.DELETE("/:id", h.User.Delete)                   // admin 或本人（Service 层鉴权）
			}

			// 社团模块
			clubs := authorized.Group("/clubs")
			{
				clubs.GET("", h.Club.List)
				clubs.GET("/:id", h.Club.GetByID)
				clubs.GET("/:id/members", h.Club.ListMembers)
				clubs.POST("", adminOnly, h.Club.Create)
				clubs.PUT("/:id/status", adminOnly, h.Club.CloseOpen)
				clubs.POST("/:id/join", h.Club.Join)
				clubs.POST("/exit", h.Club.Exit)
			}

			// 活动模块
			activities := authorized.Group("/activities")
			{
				activities.GET("", h.Activity.List)
				activities.GET("/ongoing", h.Activity.ListOngoing)
				activities.GET("/ended", h.Activity.ListEnded)
				activities.GET("/:id", h.Activity.GetByID)
				activities.POST("", h.Activity.Create) // 社长/指导老师/管理员（Service 层按社团范围鉴权）
				activities.PUT("/:id", h.Activity.Edit)
				activities.POST("/:id/close", h.Activity.Close)
				activities.DELETE("/:id", h.Activity.Delete)
			}

			// 系统配置模块
			configs := authorized.Group("/configs")
			{
				configs.GET("", h.Config.List)
				configs.GET("/groups", h.Config.ListGroups)
				configs.GET("/key/:key", h.Config.GetByKey)
				configs.POST("", adminOnly, h.Config.Create)
				configs.PUT("/:id", adminOnly, h.Config.Update)
				configs.PUT("/key/:key", adminOnly, h.Config.UpdateValue)
				configs.DELETE("/:id", adminOnly, h.Config.Delete)
				configs.POST("/batch-delete", adminOnly, h.Config.DeleteMany)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/users", adminOnly, h.Export.ExportUsers)
				export.GET("/clubs/:id/members", adminOnly, h.Export.ExportClubMembers)
			}
		}
	}

	return r
}
