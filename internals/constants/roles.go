package constants

import "fmt"

const (
	RoleAnonymous  = "anonymous"
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess      = "only admins can access %s"
	ErrOnlySuperAdminsCanAccess = "only super admins can access %s"
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminsCanAccess, feature)
}

// ==========================
// Grouped role slices
// ==========================
var (
	AdminRoles      = []string{RoleAdmin, RoleSuperAdmin}
	SuperAdminRoles = []string{RoleSuperAdmin}
	AdminUserRoles  = []string{RoleAdmin, RoleSuperAdmin}
)

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
