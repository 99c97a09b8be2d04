package payroll

import (
	"fmt"
	"net/http"
	"strings"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/visibility"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if !apperror.IsExpected(err) {
		h.logger.Error("payroll request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// targetEmployee lets ADMIN/HR read any employee; everyone else only
// themselves.
func targetEmployee(p visibility.Principal, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" && requested != p.EmployeeID {
		if !p.IsPrivileged() {
			return "", apperror.ErrForbidden
		}
		return requested, nil
	}
	if p.EmployeeID == "" {
		return "", apperror.ErrProfileNotFound
	}
	return p.EmployeeID, nil
}

func (h *Handler) payslip(c *gin.Context) (Payslip, bool) {
	var q PayslipQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return Payslip{}, false
	}

	employeeID, err := targetEmployee(visibility.PrincipalFromGin(c), q.EmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return Payslip{}, false
	}

	var p Payslip
	if q.Month == 0 && q.Year == 0 {
		p, err = h.service.GetCurrentMonthPayslip(c.Request.Context(), employeeID)
	} else {
		p, err = h.service.GeneratePayslip(c.Request.Context(), employeeID, q.Month, q.Year)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return Payslip{}, false
	}
	return p, true
}

func (h *Handler) GetPayslip(c *gin.Context) {
	p, ok := h.payslip(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, p, nil)
}

func (h *Handler) DownloadPayslipPDF(c *gin.Context) {
	p, ok := h.payslip(c)
	if !ok {
		return
	}

	data, err := RenderPayslipPDF(p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("payslip_%s_%04d-%02d.pdf", p.Employee.EmployeeCode, p.Period.Year, p.Period.Month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, PDFContentType, data)
}

func (h *Handler) GetHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	employeeID, err := targetEmployee(visibility.PrincipalFromGin(c), q.EmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	history, err := h.service.GetPayslipHistory(c.Request.Context(), employeeID, q.Limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, history, nil)
}
