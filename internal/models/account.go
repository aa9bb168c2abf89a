package models

import (
	"time"

	"gorm.io/gorm"
)

// Account types: an account is a ship-to address, a bill-to address, or both.
const (
	AccountTypeShipTo = "SHIP_TO"
	AccountTypeBillTo = "BILL_TO"
	AccountTypeBoth   = "BOTH"
)

// Account is a customer address used as the ship-to or bill-to side of an
// order. Referenced by orders, never owned by them.
type Account struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	LookupCode  string         `json:"lookup_code" gorm:"uniqueIndex;not null"`
	Name        string         `json:"name" gorm:"not null"`
	AccountType string         `json:"account_type" gorm:"not null;default:'BOTH'"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	ZipCode     string         `json:"zip_code"`
	CustomerID  *uint          `json:"customer_id" gorm:"index"`
	Status      int            `json:"status" gorm:"not null;default:1"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"modified_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
