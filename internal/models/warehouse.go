package models

import (
	"time"

	"gorm.io/gorm"
)

type Warehouse struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	LookupCode string         `json:"lookup_code" gorm:"uniqueIndex;not null"`
	Name       string         `json:"name" gorm:"not null"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	State      string         `json:"state"`
	ZipCode    string         `json:"zip_code"`
	Capacity   int            `json:"capacity" gorm:"not null;default:0"`
	Status     int            `json:"status" gorm:"not null;default:1"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"modified_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
