package events

import "time"

const (
	LeaveStatusChangedTopic = "hr.leave.lifecycle.v1"
	LeaveStatusChangedType  = "leave.status_changed"
)

// LeaveStatusChangedEvent is emitted for approvals, rejections and
// self-cancellations (which land on REJECTED).
type LeaveStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveType   string    `json:"leave_type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	Cancelled   bool      `json:"cancelled"`
	ActorUserID string    `json:"actor_user_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
