package attendance

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	EmployeeCode   string  `json:"employee_code,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	CheckIn        string  `json:"check_in"`
	CheckOut       *string `json:"check_out"`
	TotalHours     *string `json:"total_hours"`
	Status         string  `json:"status"`
}

type TodayStatusResponse struct {
	Date        string              `json:"date"`
	Status      string              `json:"status"`
	CanCheckIn  bool                `json:"can_check_in"`
	CanCheckOut bool                `json:"can_check_out"`
	Record      *AttendanceResponse `json:"record,omitempty"`
}

type StatisticsResponse struct {
	TotalRecords   int64   `json:"total_records"`
	PresentCount   int64   `json:"present_count"`
	AverageHours   float64 `json:"average_hours"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// DateRangeQuery is bound from ?from=&to= on list and export routes.
type DateRangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}
