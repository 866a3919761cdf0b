package events

import "time"

const NotificationRequestedTopic = "leavesync.notification.requested.v1"

const (
	EventLeaveSubmitted         = "leave_submitted"
	EventLeaveDecided           = "leave_decided"
	EventPasswordResetRequested = "password_reset_requested"
)

// NotificationRequestedEvent is a notification intent written to the outbox in
// the same transaction as the change that triggered it. The consumer resolves
// names and addresses at delivery time.
type NotificationRequestedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID uint      `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`

	LeaveID    uint   `json:"leave_id,omitempty"`
	LeaveType  string `json:"leave_type,omitempty"`
	TotalDays  string `json:"total_days,omitempty"`
	Status     string `json:"status,omitempty"`
	ApproverID uint   `json:"approver_id,omitempty"`

	ResetToken string `json:"reset_token,omitempty"`
}
