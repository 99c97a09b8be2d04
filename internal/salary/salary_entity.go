package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryStructure holds the single monthly wage row of an employee.
type SalaryStructure struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_salary_structures_employee_id"`
	MonthlyWage decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}
