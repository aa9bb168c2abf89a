package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// EmailsInUse returns which of the given emails already belong to a
	// user outside the excluded customer. Email is unique system-wide.
	EmailsInUse(ctx context.Context, emails []string, excludeCustomerID *uint) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) EmailsInUse(ctx context.Context, emails []string, excludeCustomerID *uint) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("email IN ?", emails)
	if excludeCustomerID != nil {
		query = query.Where("customer_id IS NULL OR customer_id <> ?", *excludeCustomerID)
	}
	var inUse []string
	err := query.Pluck("email", &inUse).Error
	return inUse, err
}
