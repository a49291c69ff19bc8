package model

// Role is the typed employee role stored on EmployeeProfile and carried
// in JWT claims. Authorization is decided by the pure predicates below,
// never by probing attributes on a user object.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleCashier      Role = "cashier"
	RoleStockManager Role = "stock_manager"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleCashier, RoleStockManager:
		return true
	}
	return false
}

// IsOwner gates owner-only operations (reports, expenses, user management).
func IsOwner(r Role) bool { return r == RoleOwner }

// CanSell gates the POS surface: cashiers and owners may record sales.
func CanSell(r Role) bool {
	switch r {
	case RoleCashier, RoleOwner:
		return true
	case RoleStockManager:
		return false
	}
	return false
}

// CanManageStock gates purchasing, adjustments, and low-stock alerts.
func CanManageStock(r Role) bool {
	switch r {
	case RoleStockManager, RoleOwner:
		return true
	case RoleCashier:
		return false
	}
	return false
}
