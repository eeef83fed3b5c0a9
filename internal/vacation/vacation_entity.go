package vacation

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	MinRequestDays = 1
	MaxRequestDays = 30
)

type VacationRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	StartDate       time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time  `gorm:"type:date;not null" json:"end_date"`
	Days            int        `gorm:"not null" json:"days"`
	Reason          string     `gorm:"type:varchar(500)" json:"reason,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"-"`
}

func (VacationRequest) TableName() string {
	return "vacation_requests"
}

// IsResolved reports whether the request left the pending state. Resolved
// requests are terminal.
func (v *VacationRequest) IsResolved() bool {
	return v.Status != StatusPending
}
