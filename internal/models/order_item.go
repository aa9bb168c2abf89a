package models

import "time"

// OrderItem line statuses.
const (
	ItemStatusOpen   = 1
	ItemStatusClosed = 2
)

// OrderItem is owned by its Order: lines are created and destroyed only
// as part of the parent order's mutations, never independently.
type OrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	MaterialID uint      `json:"material_id" gorm:"not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Status     int       `json:"status" gorm:"not null;default:1"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"modified_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}
