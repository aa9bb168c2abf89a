package models

import "time"

// Project belongs to a customer. Within a customer's non-empty project set
// exactly one project carries is_default = true.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CustomerID  uint      `json:"customer_id" gorm:"not null;index"`
	LookupCode  string    `json:"lookup_code" gorm:"not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsDefault   bool      `json:"is_default" gorm:"not null;default:false"`
	Status      int       `json:"status" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"modified_at"`
}
