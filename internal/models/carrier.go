package models

import (
	"time"

	"gorm.io/gorm"
)

type Carrier struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	LookupCode string         `json:"lookup_code" gorm:"uniqueIndex;not null"`
	Name       string         `json:"name" gorm:"not null"`
	Status     int            `json:"status" gorm:"not null;default:1"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"modified_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	Services []CarrierService `json:"services,omitempty" gorm:"foreignKey:CarrierID"`
}

// CarrierService is a shipping service level offered by a carrier.
type CarrierService struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CarrierID  uint           `json:"carrier_id" gorm:"not null;index"`
	LookupCode string         `json:"lookup_code" gorm:"not null"`
	Name       string         `json:"name" gorm:"not null"`
	Status     int            `json:"status" gorm:"not null;default:1"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"modified_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	Carrier *Carrier `json:"carrier,omitempty" gorm:"foreignKey:CarrierID"`
}
