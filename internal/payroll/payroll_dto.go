package payroll

// PayslipQuery binds ?month=&year=&employee_id=. A zero month and year mean
// the current month.
type PayslipQuery struct {
	Month      int    `form:"month"`
	Year       int    `form:"year"`
	EmployeeID string `form:"employee_id"`
}

type HistoryQuery struct {
	Limit      int    `form:"limit"`
	EmployeeID string `form:"employee_id"`
}
