package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echo-roster/config"
	"echo-roster/internal/api/handler"
	"echo-roster/internal/api/middleware"
	"echo-roster/internal/model"
	"echo-roster/pkg/jwt"
	"echo-roster/pkg/redis"
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
	r.Use(middleware.BodyLimit(1 << 20)) // 1 MiB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	canSchedule := middleware.RoleAuth(model.RoleAdmin, model.RoleScheduler)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			// 登录接口限流，防暴力破解
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetMe)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)

			// 员工模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.ListEmployees)
				employees.GET("/:id", h.Employee.GetEmployee)
				employees.GET("/:id/time-offs", h.TimeOff.ListEmployeeTimeOffs)
				employees.POST("", canSchedule, h.Employee.CreateEmployee)
				employees.PUT("/:id", canSchedule, h.Employee.UpdateEmployee)
				employees.DELETE("/:id", adminOnly, h.Employee.DeleteEmployee)
			}

			// 地点模块
			locations := authorized.Group("/locations")
			{
				locations.GET("", h.Location.ListLocations)
				locations.GET("/:id", h.Location.GetLocation)
				locations.POST("", canSchedule, h.Location.CreateLocation)
				locations.PUT("/:id", canSchedule, h.Location.UpdateLocation)
				locations.DELETE("/:id", adminOnly, h.Location.DeleteLocation)
			}

			// 休假模块
			timeOffs := authorized.Group("/time-offs")
			{
				timeOffs.GET("", h.TimeOff.ListTimeOffs)
				timeOffs.GET("/:id", h.TimeOff.GetTimeOff)
				timeOffs.POST("", h.TimeOff.CreateTimeOff)
				timeOffs.POST("/:id/review", canSchedule, h.TimeOff.ReviewTimeOff)
				timeOffs.DELETE("/:id", canSchedule, h.TimeOff.DeleteTimeOff)
			}

			// 排班规则模块
			scheduleRules := authorized.Group("/schedule-rules")
			{
				scheduleRules.GET("", h.ScheduleRule.ListScheduleRules)
				scheduleRules.GET("/:id", h.ScheduleRule.GetScheduleRule)
				scheduleRules.POST("", canSchedule, h.ScheduleRule.CreateScheduleRule)
				scheduleRules.PUT("/:id", canSchedule, h.ScheduleRule.UpdateScheduleRule)
				scheduleRules.DELETE("/:id", adminOnly, h.ScheduleRule.DeleteScheduleRule)
			}

			// 排班模块
			schedules := authorized.Group("/schedules")
			{
				schedules.POST("/preview", canSchedule, h.Schedule.PreviewSchedule)
				schedules.POST("/generate", canSchedule, h.Schedule.GenerateSchedule)
				schedules.POST("/publish", canSchedule, h.Schedule.PublishSchedule)
				schedules.GET("/week", canSchedule, h.Schedule.ListWeek)
				schedules.GET("/published", h.Schedule.ListPublishedWeek)
				schedules.GET("/gates/oncall-published", h.Schedule.GetOnCallPublishedGate)
				schedules.GET("/gates/echolab", h.Schedule.GetEchoLabGate)
			}

			// 导出模块（仅导出已发布排班）
			export := authorized.Group("/export")
			{
				export.GET("/schedule.xlsx", h.Export.ExportScheduleExcel)
				export.GET("/schedule.ics", h.Export.ExportScheduleICS)
			}
		}
	}

	return r
}
