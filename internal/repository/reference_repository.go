package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

// ReferenceRepository answers existence questions about the read-mostly
// reference entities an order points at, and serves the plain list reads
// the order wizard needs. No mutations.
type ReferenceRepository interface {
	AccountExists(ctx context.Context, id uint) (bool, error)
	CarrierExists(ctx context.Context, id uint) (bool, error)
	GetCarrierService(ctx context.Context, id uint) (*models.CarrierService, error)
	WarehouseExists(ctx context.Context, id uint) (bool, error)
	CustomerExists(ctx context.Context, id uint) (bool, error)
	// MissingMaterials returns the subset of ids with no material row.
	MissingMaterials(ctx context.Context, ids []uint) ([]uint, error)

	ListCarriers(ctx context.Context) ([]models.Carrier, error)
	ListWarehouses(ctx context.Context) ([]models.Warehouse, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	ListAccounts(ctx context.Context, customerID *uint) ([]models.Account, error)
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) exists(ctx context.Context, model interface{}, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *referenceRepository) AccountExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Account{}, id)
}

func (r *referenceRepository) CarrierExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Carrier{}, id)
}

func (r *referenceRepository) GetCarrierService(ctx context.Context, id uint) (*models.CarrierService, error) {
	var service models.CarrierService
	err := r.db.WithContext(ctx).First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *referenceRepository) WarehouseExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Warehouse{}, id)
}

func (r *referenceRepository) CustomerExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Customer{}, id)
}

func (r *referenceRepository) MissingMaterials(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	err := r.db.WithContext(ctx).Model(&models.Material{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	foundSet := make(map[uint]bool, len(found))
	for _, id := range found {
		foundSet[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !foundSet[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *referenceRepository) ListCarriers(ctx context.Context) ([]models.Carrier, error) {
	var carriers []models.Carrier
	err := r.db.WithContext(ctx).
		Preload("Services").
		Where("status = ?", models.StatusActive).
		Order("name").
		Find(&carriers).Error
	return carriers, err
}

func (r *referenceRepository) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Order("name").
		Find(&warehouses).Error
	return warehouses, err
}

func (r *referenceRepository) ListMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Order("lookup_code").
		Find(&materials).Error
	return materials, err
}

func (r *referenceRepository) ListAccounts(ctx context.Context, customerID *uint) ([]models.Account, error) {
	query := r.db.WithContext(ctx).Where("status = ?", models.StatusActive)
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	var accounts []models.Account
	err := query.Order("name").Find(&accounts).Error
	return accounts, err
}
