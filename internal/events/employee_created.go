package events

import "time"

const (
	EmployeeCreatedTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType  = "employee.created"
)

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	OccurredAt   time.Time `json:"occurred_at"`
}
