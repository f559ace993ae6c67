package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TatTrieu/QLTMG/config"
	"github.com/TatTrieu/QLTMG/internal/api/handler"
	"github.com/TatTrieu/QLTMG/internal/api/middleware"
	"github.com/TatTrieu/QLTMG/pkg/jwt"
	"github.com/TatTrieu/QLTMG/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/forgot-password", middleware.RateLimit(rdb, 5, 5*time.Minute), h.Auth.ForgotPassword)
			auth.POST("/verify-otp", h.Auth.VerifyOTP)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)
			authorized.POST("/auth/register", middleware.RoleAuth("admin"), h.Auth.Register)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("admin"), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth("admin"), h.User.GetUser)
				users.PUT("/:id", h.User.UpdateUser) // admin 或本人（Handler 层鉴权）
				users.PUT("/:id/role", middleware.RoleAuth("admin"), h.User.AssignRole)
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.DeactivateUser)
			}

			// 班级模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.ListClasses)
				classes.GET("/:id", h.Class.GetClass)
				classes.POST("", middleware.RoleAuth("admin"), h.Class.CreateClass)
				classes.PUT("/:id", middleware.RoleAuth("admin"), h.Class.UpdateClass)
				classes.PUT("/:id/teacher", middleware.RoleAuth("admin"), h.Class.AssignTeacher)
				classes.DELETE("/:id", middleware.RoleAuth("admin"), h.Class.DeleteClass)
			}

			// 幼儿模块（教师查询范围在 Service 层收敛为本班）
			students := authorized.Group("/students")
			{
				students.GET("", h.Student.ListStudents)
				students.GET("/:id", h.Student.GetStudent)
				students.POST("", middleware.RoleAuth("admin"), h.Student.CreateStudent)
				students.PUT("/:id", middleware.RoleAuth("admin"), h.Student.UpdateStudent)
				students.DELETE("/:id", middleware.RoleAuth("admin"), h.Student.DeleteStudent)
			}

			// 规定模块
			regulations := authorized.Group("/regulations")
			{
				regulations.GET("", h.Regulation.GetRegulations)
				regulations.PUT("", middleware.RoleAuth("admin"), h.Regulation.UpdateRegulations)
			}

			// 点名模块
			attendances := authorized.Group("/attendances")
			{
				attendances.GET("", h.Attendance.GetAttendanceList)
				attendances.POST("", h.Attendance.SaveAttendance)
				attendances.POST("/daily", h.Attendance.SaveDailyAttendance)
			}

			// 学费模块
			tuitions := authorized.Group("/tuitions")
			{
				tuitions.GET("", h.Tuition.GetTuitionSheet)
				tuitions.POST("/init", middleware.RoleAuth("admin"), h.Tuition.InitMonth)
				tuitions.PUT("", middleware.RoleAuth("admin"), h.Tuition.UpdateTuition)
			}

			// 健康模块
			health := authorized.Group("/health")
			{
				health.POST("/checkups", h.Health.AddCheckup)
				health.GET("/comparison", h.Health.GetComparison)
				health.GET("/alerts", h.Health.GetAlerts)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.POST("", middleware.RoleAuth("admin"), h.Notification.CreateNotification)
				notifications.DELETE("/:id", middleware.RoleAuth("admin"), h.Notification.DeleteNotification)
			}

			// 统计模块（仅管理员）
			stats := authorized.Group("/stats", middleware.RoleAuth("admin"))
			{
				stats.GET("/overview", h.Stats.GetOverview)
				stats.GET("/revenue", h.Stats.GetRevenue)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/students", h.Export.ExportStudents)
				export.GET("/health", h.Export.ExportHealth)
				export.GET("/tuitions", h.Export.ExportTuition)
			}
		}
	}

	return r
}
