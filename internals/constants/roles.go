package constants

import "fmt"

const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleTeacher    = "teacher"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess   = "❌ Only admins may access %s."
	ErrOnlyFinanceCanAccess  = "❌ Only admins or accountants may access %s."
	ErrOnlyStaffCanAccess    = "❌ Only admins or teachers may access %s."
	ErrOnlyAccountsCanAccess = "❌ Only staff accounts may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAnyStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyAccountsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleAccountant,
		RoleTeacher,
	}

	FinanceRoles = []string{
		RoleAdmin,
		RoleAccountant,
	}

	AttendanceRoles = []string{
		RoleAdmin,
		RoleTeacher,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
