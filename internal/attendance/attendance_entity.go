package attendance

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const StatusPresent = "PRESENT"

// Values reported by the today status view.
const (
	TodayOnLeave   = "ON_LEAVE"
	TodayPresent   = "PRESENT"
	TodayCompleted = "COMPLETED"
	TodayAbsent    = "ABSENT"
	TodayUnknown   = "UNKNOWN"
)

// AttendanceRecord is one shift. At most one open record (check_out IS NULL)
// exists per employee and date, enforced by uq_attendance_open_per_day.
type AttendanceRecord struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Employee       *employee.Employee  `gorm:"foreignKey:EmployeeID"`
	AttendanceDate time.Time           `gorm:"type:date;not null;index"`
	CheckIn        time.Time           `gorm:"type:timestamptz;not null"`
	CheckOut       *time.Time          `gorm:"type:timestamptz"`
	TotalHours     decimal.NullDecimal `gorm:"type:numeric(6,2)"`
	Status         string              `gorm:"type:varchar(20);not null;default:PRESENT"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (a AttendanceRecord) IsOpen() bool {
	return a.CheckOut == nil
}
