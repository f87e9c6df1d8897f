package constants

// Admin-console roles. SUPER_ADMIN manages users and branches; ADMIN runs
// the rental workflow; STAFF is read-mostly branch personnel.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleStaff      = "STAFF"
)

// AllRoles returns every valid role.
func AllRoles() []string {
	return []string{RoleSuperAdmin, RoleAdmin, RoleStaff}
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}
