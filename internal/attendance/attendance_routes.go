package attendance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	jwtSecret string,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware(jwtSecret))
	{
		self := middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionSelf)

		attendance.POST("/check-in",
			self,
			middleware.RateLimitByUser(rate.Limit(1), 3),
			middleware.Idempotency(rdb),
			h.CheckIn,
		)
		attendance.POST("/check-out",
			self,
			middleware.RateLimitByUser(rate.Limit(1), 3),
			middleware.Idempotency(rdb),
			h.CheckOut,
		)
		attendance.GET("/today", self, h.GetTodayStatus)
		attendance.GET("/history", self, h.GetHistory)
		attendance.GET("/statistics", self, h.GetStatistics)
		attendance.GET("/employee/:employeeId",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionReadAll),
			h.GetEmployeeAttendance,
		)
		attendance.GET("/export",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionExport),
			h.Export,
		)
	}
}
