package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

type CustomerListParams struct {
	Status  *int
	Keyword string
	Page    int
	Limit   int
}

type CustomerRepository interface {
	// Create persists the customer together with its projects and users
	// in one transaction.
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByLookupCode(ctx context.Context, lookupCode string) (*models.Customer, error)
	List(ctx context.Context, params CustomerListParams) ([]models.Customer, int64, error)
	// Update applies the customer's scalar fields and, where the project
	// or user slice is non-nil, wholesale-replaces that child collection.
	// Everything runs in a single transaction.
	Update(ctx context.Context, customer *models.Customer, projects []models.Project, users []models.User, replaceProjects, replaceUsers bool) error
	// Delete removes projects, users and the customer in one transaction.
	Delete(ctx context.Context, id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	// Projects and Users travel as associations; gorm persists the whole
	// aggregate inside one transaction.
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Preload("Users").
		First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByLookupCode(ctx context.Context, lookupCode string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("lookup_code = ?", lookupCode).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, params CustomerListParams) ([]models.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR lookup_code LIKE ?", kw, kw)
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

	var customers []models.Customer
	err := query.
		Preload("Projects").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&customers).Error
	return customers, total, err
}

func (r *customerRepository) Update(ctx context.Context, customer *models.Customer, projects []models.Project, users []models.User, replaceProjects, replaceUsers bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"lookup_code": customer.LookupCode,
			"name":        customer.Name,
			"address":     customer.Address,
			"city":        customer.City,
			"state":       customer.State,
			"zip_code":    customer.ZipCode,
			"phone":       customer.Phone,
			"email":       customer.Email,
			"status":      customer.Status,
			"modified_by": customer.ModifiedBy,
		}
		res := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		// Wholesale replace: delete every child row, then reinsert the
		// supplied set. Never a merge — omitting a child removes it.
		if replaceProjects {
			if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Project{}).Error; err != nil {
				return err
			}
			for i := range projects {
				projects[i].ID = 0
				projects[i].CustomerID = customer.ID
			}
			if len(projects) > 0 {
				if err := tx.Create(&projects).Error; err != nil {
					return err
				}
			}
		}
		if replaceUsers {
			if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.User{}).Error; err != nil {
				return err
			}
			for i := range users {
				users[i].ID = 0
				users[i].CustomerID = &customer.ID
			}
			if len(users) > 0 {
				if err := tx.Create(&users).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
}
