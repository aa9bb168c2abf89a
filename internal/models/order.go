package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status codes. The lifecycle only moves forward:
// DRAFT -> SUBMITTED -> PROCESSING -> COMPLETED.
const (
	OrderStatusDraft      = 10
	OrderStatusSubmitted  = 11
	OrderStatusProcessing = 12
	OrderStatusCompleted  = 13
)

type Order struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	OrderNumber          string         `json:"order_number" gorm:"uniqueIndex;not null"`
	Status               int            `json:"status" gorm:"not null;default:10"`
	OrderTypeID          uint           `json:"order_type_id" gorm:"not null"`
	CustomerID           uint           `json:"customer_id" gorm:"not null;index"`
	ShipToAccountID      uint           `json:"ship_to_account_id" gorm:"not null"`
	BillToAccountID      uint           `json:"bill_to_account_id" gorm:"not null"`
	CarrierID            uint           `json:"carrier_id" gorm:"not null"`
	CarrierServiceID     uint           `json:"carrier_service_id" gorm:"not null"`
	WarehouseID          *uint          `json:"warehouse_id"`
	ExpectedDeliveryDate *time.Time     `json:"expected_delivery_date"`
	Notes                string         `json:"notes" gorm:"type:text"`
	Version              int            `json:"version" gorm:"not null;default:1"`
	CreatedBy            uint           `json:"created_by" gorm:"not null"`
	ModifiedBy           *uint          `json:"modified_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"modified_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`

	Customer       *Customer       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ShipToAccount  *Account        `json:"ship_to_account,omitempty" gorm:"foreignKey:ShipToAccountID"`
	BillToAccount  *Account        `json:"bill_to_account,omitempty" gorm:"foreignKey:BillToAccountID"`
	Carrier        *Carrier        `json:"carrier,omitempty" gorm:"foreignKey:CarrierID"`
	CarrierService *CarrierService `json:"carrier_service,omitempty" gorm:"foreignKey:CarrierServiceID"`
	Warehouse      *Warehouse      `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Items          []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// IsDraft reports whether the order is still open for mutation.
func (o *Order) IsDraft() bool {
	return o.Status == OrderStatusDraft
}
