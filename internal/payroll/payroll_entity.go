package payroll

// Payslip is derived on every request and never stored. Currency amounts are
// whole units; DailyWage keeps two decimals.
type Payslip struct {
	Employee   PayslipEmployee `json:"employee"`
	Period     PayslipPeriod   `json:"period"`
	Earnings   Earnings        `json:"earnings"`
	Deductions Deductions      `json:"deductions"`
	Summary    Summary         `json:"summary"`
	Stats      Stats           `json:"stats"`
}

type PayslipEmployee struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Department   string `json:"department,omitempty"`
	Designation  string `json:"designation,omitempty"`
}

type PayslipPeriod struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Earnings struct {
	Basic            int64 `json:"basic"`
	HRA              int64 `json:"hra"`
	SpecialAllowance int64 `json:"special_allowance"`
	Total            int64 `json:"total"`
}

type Deductions struct {
	PF              int64 `json:"pf"`
	ProfessionalTax int64 `json:"professional_tax"`
	LeaveDeduction  int64 `json:"leave_deduction"`
	Total           int64 `json:"total"`
}

type Summary struct {
	GrossEarning   int64 `json:"gross_earning"`
	TotalDeduction int64 `json:"total_deduction"`
	NetPayable     int64 `json:"net_payable"`
}

type Stats struct {
	UnpaidLeaveDays      int     `json:"unpaid_leave_days"`
	TotalWorkingDays     int     `json:"total_working_days"`
	EffectiveWorkingDays int     `json:"effective_working_days"`
	DailyWage            float64 `json:"daily_wage"`
}
