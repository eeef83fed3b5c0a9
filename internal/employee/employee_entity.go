package employee

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Lexio19/employee-hub/internal/access"
)

const DefaultVacationDays = 22

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string    `gorm:"type:varchar(255);not null" json:"-"`

	Position   string    `gorm:"type:varchar(100);not null"`
	Department string    `gorm:"type:varchar(100);not null"`
	HireDate   time.Time `gorm:"not null"`
	Avatar     string    `gorm:"type:text"`
	Role       string    `gorm:"type:varchar(20);not null;default:'employee'"`

	// Annual allotment and the monotonically increasing used counter. Used
	// only ever grows, and only through vacation approval.
	VacationDays     int `gorm:"not null;default:22"`
	UsedVacationDays int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableVacationDays is the balance vacation requests are validated against.
func (e *Employee) AvailableVacationDays() int {
	return e.VacationDays - e.UsedVacationDays
}

func (e *Employee) IsAdmin() bool {
	return e.Role == access.RoleAdmin
}

// DefaultAvatarURL seeds a deterministic placeholder avatar from the display
// name, matching what the frontend renders for accounts without an upload.
func DefaultAvatarURL(name string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", name)
}
