package payroll

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, jwtSecret string) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(jwtSecret))
	payroll.Use(middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead))
	{
		payroll.GET("/payslip", handler.GetPayslip)
		payroll.GET("/payslip/pdf", handler.DownloadPayslipPDF)
		payroll.GET("/history", handler.GetHistory)
	}
}
