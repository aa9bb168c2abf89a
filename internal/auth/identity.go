package auth

import "github.com/juliomeza/sales-orders-system-sub001/internal/models"

// Identity is the verified caller of a request: user id, role and, for
// CLIENT users, the tenant (customer) they belong to.
type Identity struct {
	UserID     uint
	Role       string
	CustomerID *uint
}

// IsAdmin reports whether the identity holds the unscoped admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// CanAccessCustomer reports whether the identity may read or mutate data
// owned by the given tenant. Admins are unscoped; clients are restricted
// to their own customer.
func (i *Identity) CanAccessCustomer(customerID uint) bool {
	if i.IsAdmin() {
		return true
	}
	return i.CustomerID != nil && *i.CustomerID == customerID
}
