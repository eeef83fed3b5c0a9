// Package access holds the role half of the access-control gate: a static
// permission table over the portal's closed role set, evaluated once per
// request by the authorize middleware. Ownership checks (owner-of-resource)
// need the entity and therefore live in the services.
package access

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// Level is the required-role set for an operation.
type Level int

const (
	// Anyone allows every authenticated employee.
	Anyone Level = iota
	// ManagerOrAdmin restricts to managers and admins.
	ManagerOrAdmin
	// AdminOnly restricts to admins.
	AdminOnly
)

func (l Level) String() string {
	switch l {
	case Anyone:
		return "anyone"
	case ManagerOrAdmin:
		return "manager-or-admin"
	case AdminOnly:
		return "admin-only"
	default:
		return "unknown"
	}
}

// Allows reports whether a role satisfies the level.
func (l Level) Allows(role string) bool {
	switch l {
	case Anyone:
		return role == RoleEmployee || role == RoleManager || role == RoleAdmin
	case ManagerOrAdmin:
		return role == RoleManager || role == RoleAdmin
	case AdminOnly:
		return role == RoleAdmin
	default:
		return false
	}
}

// ValidRole reports whether role is one of the portal's known roles.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager || role == RoleAdmin
}
