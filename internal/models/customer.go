package models

import (
	"time"

	"gorm.io/gorm"
)

// Shared active/inactive status codes for customers, projects, users and
// reference entities.
const (
	StatusActive   = 1
	StatusInactive = 2
)

// Customer is the tenant root. Its projects and users have no lifecycle of
// their own: aggregate updates replace those collections wholesale.
type Customer struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	LookupCode string         `json:"lookup_code" gorm:"uniqueIndex;not null"`
	Name       string         `json:"name" gorm:"not null"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	State      string         `json:"state"`
	ZipCode    string         `json:"zip_code"`
	Phone      string         `json:"phone"`
	Email      string         `json:"email"`
	Status     int            `json:"status" gorm:"not null;default:1"`
	CreatedBy  uint           `json:"created_by"`
	ModifiedBy *uint          `json:"modified_by"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"modified_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:CustomerID"`
	Users    []User    `json:"users,omitempty" gorm:"foreignKey:CustomerID"`
}
