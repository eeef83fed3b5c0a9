package events

import "time"

const VacationLifecycleTopic = "hr.vacation.lifecycle.v1"

// VacationApprovedEvent is emitted after a manager approves a vacation
// request and the owner's balance has been debited.
type VacationApprovedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	VacationID string    `json:"vacation_id"`
	EmployeeID string    `json:"employee_id"`
	ApprovedBy string    `json:"approved_by"`
	Days       int       `json:"days"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
