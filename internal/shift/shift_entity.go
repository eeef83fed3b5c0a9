package shift

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeMorning   = "Morning"
	TypeAfternoon = "Afternoon"
	TypeNight     = "Night"
)

const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusCancelled = "cancelled"
)

type Shift struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	Date       time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime  string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime    string    `gorm:"type:varchar(5);not null" json:"end_time"`
	Type       string    `gorm:"type:varchar(20);not null" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (Shift) TableName() string {
	return "shifts"
}

// SwapRequest is an offer to give a shift away. Rejections do not resolve the
// request; they only hide it from the rejecting employee's marketplace view.
type SwapRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ShiftID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"shift_id"`
	RequesterID uuid.UUID  `gorm:"type:uuid;not null;index" json:"requester_id"`
	Reason      string     `gorm:"type:varchar(500)" json:"reason,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AcceptedBy  *uuid.UUID `gorm:"type:uuid" json:"accepted_by,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}

func (s *SwapRequest) IsPending() bool {
	return s.Status == SwapStatusPending
}

// SwapRejection marks one employee as uninterested in one swap request. The
// composite key makes a repeated reject a no-op.
type SwapRejection struct {
	SwapRequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time
}

func (SwapRejection) TableName() string {
	return "swap_rejections"
}
