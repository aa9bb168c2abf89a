package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/apperrors"
	"github.com/juliomeza/sales-orders-system-sub001/internal/auth"
	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

type ProjectInput struct {
	LookupCode  string `json:"lookup_code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
}

type UserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// Role is accepted but ignored: users created through the aggregate
	// are always tenant-scoped clients.
	Role   string `json:"role"`
	Status *int   `json:"status"`
}

type CreateCustomerRequest struct {
	LookupCode string         `json:"lookup_code"`
	Name       string         `json:"name"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	State      string         `json:"state"`
	ZipCode    string         `json:"zip_code"`
	Phone      string         `json:"phone"`
	Email      string         `json:"email"`
	Projects   []ProjectInput `json:"projects"`
	Users      []UserInput    `json:"users"`
}

// UpdateCustomerRequest merges scalar fields partially; a non-nil Projects
// or Users slice wholesale-replaces that child collection (an empty slice
// removes every child).
type UpdateCustomerRequest struct {
	LookupCode *string         `json:"lookup_code"`
	Name       *string         `json:"name"`
	Address    *string         `json:"address"`
	City       *string         `json:"city"`
	State      *string         `json:"state"`
	ZipCode    *string         `json:"zip_code"`
	Phone      *string         `json:"phone"`
	Email      *string         `json:"email"`
	Status     *int            `json:"status"`
	Projects   *[]ProjectInput `json:"projects"`
	Users      *[]UserInput    `json:"users"`
}

type CustomerListQuery struct {
	Status  *int
	Keyword string
	Page    int
	Limit   int
}

// CustomerService owns the customer aggregate: validate everything first,
// then persist the customer and its replaced child collections in one
// transaction.
type CustomerService interface {
	Create(ctx context.Context, req CreateCustomerRequest, identity *auth.Identity) (*models.Customer, error)
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context, query CustomerListQuery) ([]models.Customer, int64, error)
	Update(ctx context.Context, id uint, req UpdateCustomerRequest, identity *auth.Identity) (*models.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	customerRepo    repository.CustomerRepository
	userRepo        repository.UserRepository
	defaultPassword string
	log             *logger.Logger
}

func NewCustomerService(customerRepo repository.CustomerRepository, userRepo repository.UserRepository, defaultPassword string, log *logger.Logger) CustomerService {
	return &customerService{
		customerRepo:    customerRepo,
		userRepo:        userRepo,
		defaultPassword: defaultPassword,
		log:             log.With("service", "CustomerService"),
	}
}

func (s *customerService) Create(ctx context.Context, req CreateCustomerRequest, identity *auth.Identity) (*models.Customer, error) {
	var details []string
	if strings.TrimSpace(req.LookupCode) == "" {
		details = append(details, "lookup_code is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, "name is required")
	}
	details = append(details, validateUserInputs(req.Users)...)
	if len(details) > 0 {
		return nil, apperrors.NewValidation(details...)
	}

	if _, err := s.customerRepo.GetByLookupCode(ctx, req.LookupCode); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("customer with lookup code %q already exists", req.LookupCode))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.checkEmailsAvailable(ctx, req.Users, nil); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		LookupCode: req.LookupCode,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		Phone:      req.Phone,
		Email:      req.Email,
		Status:     models.StatusActive,
		CreatedBy:  identity.UserID,
	}
	customer.Projects = buildProjects(req.Projects)
	users, err := s.buildUsers(req.Users)
	if err != nil {
		return nil, err
	}
	customer.Users = users

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.log.Info("customer created", "customer_id", customer.ID, "lookup_code", customer.LookupCode,
		"projects", len(customer.Projects), "users", len(customer.Users))
	return s.customerRepo.GetByID(ctx, customer.ID)
}

func (s *customerService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Customer")
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context, query CustomerListQuery) ([]models.Customer, int64, error) {
	return s.customerRepo.List(ctx, repository.CustomerListParams{
		Status:  query.Status,
		Keyword: query.Keyword,
		Page:    query.Page,
		Limit:   query.Limit,
	})
}

func (s *customerService) Update(ctx context.Context, id uint, req UpdateCustomerRequest, identity *auth.Identity) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Customer")
		}
		return nil, err
	}

	if req.LookupCode != nil && *req.LookupCode != customer.LookupCode {
		if _, err := s.customerRepo.GetByLookupCode(ctx, *req.LookupCode); err == nil {
			return nil, apperrors.NewConflict(fmt.Sprintf("customer with lookup code %q already exists", *req.LookupCode))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		customer.LookupCode = *req.LookupCode
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.ZipCode != nil {
		customer.ZipCode = *req.ZipCode
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Status != nil {
		customer.Status = *req.Status
	}
	customer.ModifiedBy = &identity.UserID

	var projects []models.Project
	replaceProjects := req.Projects != nil
	if replaceProjects {
		projects = buildProjects(*req.Projects)
	}

	var users []models.User
	replaceUsers := req.Users != nil
	if replaceUsers {
		if details := validateUserInputs(*req.Users); len(details) > 0 {
			return nil, apperrors.NewValidation(details...)
		}
		if err := s.checkEmailsAvailable(ctx, *req.Users, &customer.ID); err != nil {
			return nil, err
		}
		users, err = s.buildUsers(*req.Users)
		if err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Update(ctx, customer, projects, users, replaceProjects, replaceUsers); err != nil {
		return nil, err
	}
	s.log.Info("customer updated", "customer_id", customer.ID,
		"projects_replaced", replaceProjects, "users_replaced", replaceUsers)
	return s.customerRepo.GetByID(ctx, customer.ID)
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Customer")
		}
		return err
	}
	if err := s.customerRepo.Delete(ctx, customer.ID); err != nil {
		return err
	}
	s.log.Info("customer deleted", "customer_id", customer.ID, "lookup_code", customer.LookupCode)
	return nil
}

// buildProjects converts the inputs and enforces the default-project
// invariant: in a non-empty set exactly one entry ends up default. When
// no entry claims it the first is promoted; extra claimants are demoted.
func buildProjects(inputs []ProjectInput) []models.Project {
	projects := make([]models.Project, 0, len(inputs))
	defaultSeen := false
	for _, in := range inputs {
		isDefault := in.IsDefault && !defaultSeen
		if isDefault {
			defaultSeen = true
		}
		projects = append(projects, models.Project{
			LookupCode:  in.LookupCode,
			Name:        in.Name,
			Description: in.Description,
			IsDefault:   isDefault,
			Status:      models.StatusActive,
		})
	}
	if len(projects) > 0 && !defaultSeen {
		projects[0].IsDefault = true
	}
	return projects
}

func validateUserInputs(inputs []UserInput) []string {
	var details []string
	for i, in := range inputs {
		if strings.TrimSpace(in.Email) == "" {
			details = append(details, fmt.Sprintf("users[%d].email is required", i))
		}
	}
	return details
}

func (s *customerService) checkEmailsAvailable(ctx context.Context, inputs []UserInput, excludeCustomerID *uint) error {
	emails := make([]string, 0, len(inputs))
	for _, in := range inputs {
		emails = append(emails, in.Email)
	}
	inUse, err := s.userRepo.EmailsInUse(ctx, emails, excludeCustomerID)
	if err != nil {
		return err
	}
	if len(inUse) > 0 {
		return apperrors.NewConflict("email already in use: " + strings.Join(inUse, ", "))
	}
	return nil
}

// buildUsers hashes the supplied password, or the system placeholder when
// none is given, and forces the tenant-scoped role regardless of input.
func (s *customerService) buildUsers(inputs []UserInput) ([]models.User, error) {
	users := make([]models.User, 0, len(inputs))
	for _, in := range inputs {
		password := in.Password
		if password == "" {
			password = s.defaultPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		status := models.StatusActive
		if in.Status != nil {
			status = *in.Status
		}
		users = append(users, models.User{
			Email:     in.Email,
			Password:  string(hashed),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      models.RoleClient,
			Status:    status,
		})
	}
	return users, nil
}
