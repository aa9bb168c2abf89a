package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

type StatusCount struct {
	Status int   `json:"status"`
	Count  int64 `json:"count"`
}

type LabelCount struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type WarehouseLoad struct {
	WarehouseID uint   `json:"warehouse_id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	OrderCount  int64  `json:"order_count"`
}

type WarehouseCustomer struct {
	WarehouseID  uint   `json:"warehouse_id"`
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
}

// StatsRepository serves the read-only rollups. Everything is scoped by
// tenant when customerID is set, global otherwise.
type StatsRepository interface {
	CountOrders(ctx context.Context, customerID *uint) (int64, error)
	OrdersByStatus(ctx context.Context, customerID *uint) ([]StatusCount, error)
	OrderCreationTimes(ctx context.Context, customerID *uint) ([]time.Time, error)
	OrdersByCarrier(ctx context.Context, customerID *uint) ([]LabelCount, error)
	ItemsByMaterial(ctx context.Context, customerID *uint) ([]LabelCount, error)
	WarehouseLoads(ctx context.Context, customerID *uint) ([]WarehouseLoad, error)
	// WarehouseCustomers lists which customers route orders through each
	// warehouse. Admin-only projection.
	WarehouseCustomers(ctx context.Context) ([]WarehouseCustomer, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) scoped(ctx context.Context, customerID *uint) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if customerID != nil {
		query = query.Where("orders.customer_id = ?", *customerID)
	}
	return query
}

func (r *statsRepository) CountOrders(ctx context.Context, customerID *uint) (int64, error) {
	var total int64
	err := r.scoped(ctx, customerID).Count(&total).Error
	return total, err
}

func (r *statsRepository) OrdersByStatus(ctx context.Context, customerID *uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.scoped(ctx, customerID).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status").
		Scan(&rows).Error
	return rows, err
}

// OrderCreationTimes returns raw creation timestamps; the service buckets
// them by month so the query stays portable across databases.
func (r *statsRepository) OrderCreationTimes(ctx context.Context, customerID *uint) ([]time.Time, error) {
	var times []time.Time
	err := r.scoped(ctx, customerID).Pluck("created_at", &times).Error
	return times, err
}

func (r *statsRepository) OrdersByCarrier(ctx context.Context, customerID *uint) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.scoped(ctx, customerID).
		Select("carriers.id as id, carriers.name as label, COUNT(*) as count").
		Joins("JOIN carriers ON carriers.id = orders.carrier_id").
		Group("carriers.id, carriers.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) ItemsByMaterial(ctx context.Context, customerID *uint) ([]LabelCount, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("materials.id as id, materials.lookup_code as label, SUM(order_items.quantity) as count").
		Joins("JOIN materials ON materials.id = order_items.material_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.deleted_at IS NULL")
	if customerID != nil {
		query = query.Where("orders.customer_id = ?", *customerID)
	}
	var rows []LabelCount
	err := query.
		Group("materials.id, materials.lookup_code").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) WarehouseLoads(ctx context.Context, customerID *uint) ([]WarehouseLoad, error) {
	query := r.db.WithContext(ctx).Model(&models.Warehouse{}).
		Select("warehouses.id as warehouse_id, warehouses.name as name, warehouses.capacity as capacity, COUNT(orders.id) as order_count").
		Joins("LEFT JOIN orders ON orders.warehouse_id = warehouses.id AND orders.deleted_at IS NULL")
	if customerID != nil {
		query = query.Where("orders.customer_id = ? OR orders.id IS NULL", *customerID)
	}
	var rows []WarehouseLoad
	err := query.
		Group("warehouses.id, warehouses.name, warehouses.capacity").
		Order("warehouses.name").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) WarehouseCustomers(ctx context.Context) ([]WarehouseCustomer, error) {
	var rows []WarehouseCustomer
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("DISTINCT orders.warehouse_id as warehouse_id, customers.id as customer_id, customers.name as customer_name").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.warehouse_id IS NOT NULL").
		Order("warehouse_id, customer_id").
		Scan(&rows).Error
	return rows, err
}
