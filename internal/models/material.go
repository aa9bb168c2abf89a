package models

import (
	"time"

	"gorm.io/gorm"
)

type Material struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	LookupCode  string         `json:"lookup_code" gorm:"uniqueIndex;not null"`
	Code        string         `json:"code" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	UOM         string         `json:"uom" gorm:"column:uom;default:'EA'"`
	Status      int            `json:"status" gorm:"not null;default:1"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"modified_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
