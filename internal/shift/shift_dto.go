package shift

import "time"

type CreateShiftRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime    string `json:"end_time" binding:"required,datetime=15:04"`
	Type       string `json:"type" binding:"required,oneof=Morning Afternoon Night"`
}

type CreateSwapRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
	Reason  string `json:"reason" binding:"max=500"`
}

type ShiftResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

type SwapResponse struct {
	ID          string         `json:"id"`
	ShiftID     string         `json:"shift_id"`
	RequesterID string         `json:"requester_id"`
	Reason      string         `json:"reason,omitempty"`
	Status      string         `json:"status"`
	AcceptedBy  *string        `json:"accepted_by,omitempty"`
	AcceptedAt  *time.Time     `json:"accepted_at,omitempty"`
	Shift       *ShiftResponse `json:"shift,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
