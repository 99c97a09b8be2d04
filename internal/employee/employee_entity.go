package employee

import (
	"strings"
	"time"

	"go-hrms/internal/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_employees_user_id"`
	User   *auth.User `gorm:"foreignKey:UserID"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	// sekali dibuat tidak boleh berubah
	EmployeeCode  string    `gorm:"<-:create;type:varchar(30);uniqueIndex:uq_employees_employee_code;not null"`
	Department    string    `gorm:"type:varchar(100)"`
	Designation   string    `gorm:"type:varchar(100)"`
	DateOfJoining time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
