package models

import "time"

// User roles. ADMIN users are unscoped; CLIENT users are bound to the
// customer (tenant) they belong to.
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role" gorm:"not null;default:'CLIENT'"`
	Status     int       `json:"status" gorm:"not null;default:1"`
	CustomerID *uint     `json:"customer_id" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"modified_at"`
}

// IsAdmin reports whether the user holds the unscoped admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
