package salary

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	salaries := r.Group("/employees/:id/salary")
	salaries.Use(middleware.AuthMiddleware(jwtSecret))
	{
		salaries.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead),
			handler.Get,
		)
		salaries.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionWrite),
			handler.Upsert,
		)
	}
}
