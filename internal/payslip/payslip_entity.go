package payslip

import (
	"time"

	"github.com/google/uuid"
)

// Payslip rows are immutable once created; corrections are issued as new
// periods, never as updates.
type Payslip struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payslips_employee_period" json:"employee_id"`
	Month       string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_payslips_employee_period" json:"month"`
	Year        int       `gorm:"not null;uniqueIndex:uq_payslips_employee_period" json:"year"`
	GrossSalary float64   `gorm:"type:numeric(12,2);not null" json:"gross_salary"`
	NetSalary   float64   `gorm:"type:numeric(12,2);not null" json:"net_salary"`
	Deductions  float64   `gorm:"type:numeric(12,2);not null" json:"deductions"`
	Bonus       float64   `gorm:"type:numeric(12,2);not null;default:0" json:"bonus"`
	PdfURL      string    `gorm:"type:varchar(500)" json:"pdf_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Payslip) TableName() string {
	return "payslips"
}
