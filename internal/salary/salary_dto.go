package salary

import "github.com/shopspring/decimal"

// UpsertSalaryRequest menerima monthly_wage sebagai angka atau string desimal.
type UpsertSalaryRequest struct {
	MonthlyWage decimal.Decimal `json:"monthly_wage"`
}

type SalaryResponse struct {
	EmployeeID  string `json:"employee_id"`
	MonthlyWage string `json:"monthly_wage"`
	UpdatedAt   string `json:"updated_at"`
}
