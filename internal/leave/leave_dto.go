package leave

type ApplyLeaveRequest struct {
	// EmployeeID is only honoured for ADMIN/HR applying on behalf of someone.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=PAID SICK UNPAID"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status    string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	LeaveType string `json:"leave_type" binding:"omitempty,oneof=PAID SICK UNPAID CASUAL"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedAt    string  `json:"applied_at"`
	ProcessedBy  *string `json:"processed_by,omitempty"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
}

type StatisticsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
