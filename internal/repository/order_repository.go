package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

// ErrVersionConflict is returned when an optimistic-concurrency check fails:
// the order row changed between read and write.
var ErrVersionConflict = errors.New("order was modified by another request")

type OrderListParams struct {
	CustomerID *uint
	Status     *int
	FromDate   *time.Time
	ToDate     *time.Time
	Page       int
	Limit      int
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context, params OrderListParams) ([]models.Order, int64, error)
	// Save applies the scalar fields of order and, when replaceItems is
	// true, wholesale-replaces the order's item set with items. Both run
	// in one transaction guarded by a version compare-and-swap.
	Save(ctx context.Context, order *models.Order, items []models.OrderItem, replaceItems bool) error
	// Delete removes the order's items and the order itself in one
	// transaction, guarded by the same version check.
	Delete(ctx context.Context, order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("ShipToAccount").
		Preload("BillToAccount").
		Preload("Carrier").
		Preload("CarrierService").
		Preload("Warehouse").
		Preload("Items").
		Preload("Items.Material")
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	// gorm persists the order and its Items association in one transaction.
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := preloadOrder(r.db.WithContext(ctx)).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, params OrderListParams) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.FromDate != nil {
		query = query.Where("created_at >= ?", *params.FromDate)
	}
	if params.ToDate != nil {
		query = query.Where("created_at <= ?", *params.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}

	var orders []models.Order
	err := preloadOrder(query).
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) Save(ctx context.Context, order *models.Order, items []models.OrderItem, replaceItems bool) error {
	currentVersion := order.Version
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"order_type_id":          order.OrderTypeID,
			"ship_to_account_id":     order.ShipToAccountID,
			"bill_to_account_id":     order.BillToAccountID,
			"carrier_id":             order.CarrierID,
			"carrier_service_id":     order.CarrierServiceID,
			"warehouse_id":           order.WarehouseID,
			"expected_delivery_date": order.ExpectedDeliveryDate,
			"notes":                  order.Notes,
			"modified_by":            order.ModifiedBy,
			"version":                currentVersion + 1,
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		if replaceItems {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].OrderID = order.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Version = currentVersion + 1
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND version = ?", order.ID, order.Version).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
}
