package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/apperrors"
	"github.com/juliomeza/sales-orders-system-sub001/internal/auth"
	"github.com/juliomeza/sales-orders-system-sub001/internal/cache"
	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

const dateLayout = "2006-01-02"

type OrderItemInput struct {
	MaterialID uint `json:"material_id"`
	Quantity   int  `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderTypeID          uint             `json:"order_type_id"`
	CustomerID           uint             `json:"customer_id"`
	ShipToAccountID      uint             `json:"ship_to_account_id"`
	BillToAccountID      uint             `json:"bill_to_account_id"`
	CarrierID            uint             `json:"carrier_id"`
	CarrierServiceID     uint             `json:"carrier_service_id"`
	WarehouseID          *uint            `json:"warehouse_id"`
	ExpectedDeliveryDate string           `json:"expected_delivery_date"`
	Notes                string           `json:"notes"`
	Items                []OrderItemInput `json:"items"`
}

// UpdateOrderRequest carries partial-update semantics for scalars (nil
// means untouched) and full-replace semantics for the item collection.
type UpdateOrderRequest struct {
	OrderTypeID          *uint             `json:"order_type_id"`
	ShipToAccountID      *uint             `json:"ship_to_account_id"`
	BillToAccountID      *uint             `json:"bill_to_account_id"`
	CarrierID            *uint             `json:"carrier_id"`
	CarrierServiceID     *uint             `json:"carrier_service_id"`
	WarehouseID          *uint             `json:"warehouse_id"`
	ExpectedDeliveryDate *string           `json:"expected_delivery_date"`
	Notes                *string           `json:"notes"`
	Items                *[]OrderItemInput `json:"items"`
}

type OrderListQuery struct {
	Status   *int
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	Limit    int
}

// OrderService owns the order state machine and the create/update/delete
// contracts for orders and their line items.
type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest, identity *auth.Identity) (*models.Order, error)
	GetByID(ctx context.Context, id uint, identity *auth.Identity) (*models.Order, error)
	List(ctx context.Context, query OrderListQuery, identity *auth.Identity) ([]models.Order, int64, error)
	Update(ctx context.Context, id uint, req UpdateOrderRequest, identity *auth.Identity) (*models.Order, error)
	Delete(ctx context.Context, id uint, identity *auth.Identity) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	validator ReferenceValidator
	cache     *cache.Client
	log       *logger.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, validator ReferenceValidator, cacheClient *cache.Client, log *logger.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		validator: validator,
		cache:     cacheClient,
		log:       log.With("service", "OrderService"),
	}
}

// generateOrderNumber builds a human-readable, time-derived order number.
// Uniqueness is enforced by the storage layer; the random suffix makes a
// collision within the same second negligible.
func generateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("SO-%s-%s", time.Now().Format("20060102150405"), suffix)
}

func (s *orderService) Create(ctx context.Context, req CreateOrderRequest, identity *auth.Identity) (*models.Order, error) {
	var missing []string
	if req.OrderTypeID == 0 {
		missing = append(missing, "order_type_id is required")
	}
	if req.ShipToAccountID == 0 {
		missing = append(missing, "ship_to_account_id is required")
	}
	if req.BillToAccountID == 0 {
		missing = append(missing, "bill_to_account_id is required")
	}
	if req.CarrierID == 0 {
		missing = append(missing, "carrier_id is required")
	}
	if req.CarrierServiceID == 0 {
		missing = append(missing, "carrier_service_id is required")
	}
	if len(req.Items) == 0 {
		missing = append(missing, "items must contain at least one entry")
	}

	// Clients always create orders for their own tenant; admins must say
	// which customer the order belongs to.
	customerID := req.CustomerID
	if !identity.IsAdmin() {
		if identity.CustomerID == nil {
			return nil, apperrors.NewAuthorization("user is not associated with a customer")
		}
		customerID = *identity.CustomerID
	} else if customerID == 0 {
		missing = append(missing, "customer_id is required")
	}

	for i, item := range req.Items {
		if item.MaterialID == 0 {
			missing = append(missing, fmt.Sprintf("items[%d].material_id is required", i))
		}
		if item.Quantity <= 0 {
			missing = append(missing, fmt.Sprintf("items[%d].quantity must be greater than zero", i))
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidation(missing...)
	}

	details, deliveryDate, err := s.validateReferences(ctx, referenceInput{
		shipTo:       req.ShipToAccountID,
		billTo:       req.BillToAccountID,
		carrier:      req.CarrierID,
		service:      req.CarrierServiceID,
		warehouse:    req.WarehouseID,
		items:        req.Items,
		deliveryDate: req.ExpectedDeliveryDate,
	})
	if err != nil {
		return nil, err
	}
	if identity.IsAdmin() {
		ok, err := s.validator.CustomerExists(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			details = append(details, "Customer not found")
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidation(details...)
	}

	order := &models.Order{
		OrderNumber:          generateOrderNumber(),
		Status:               models.OrderStatusDraft,
		OrderTypeID:          req.OrderTypeID,
		CustomerID:           customerID,
		ShipToAccountID:      req.ShipToAccountID,
		BillToAccountID:      req.BillToAccountID,
		CarrierID:            req.CarrierID,
		CarrierServiceID:     req.CarrierServiceID,
		WarehouseID:          req.WarehouseID,
		ExpectedDeliveryDate: deliveryDate,
		Notes:                req.Notes,
		Version:              1,
		CreatedBy:            identity.UserID,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			Status:     models.ItemStatusOpen,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, customerID)
	s.log.Info("order created", "order_id", order.ID, "order_number", order.OrderNumber, "customer_id", customerID)

	return s.orderRepo.GetByID(ctx, order.ID)
}

func (s *orderService) GetByID(ctx context.Context, id uint, identity *auth.Identity) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, err
	}
	if !identity.CanAccessCustomer(order.CustomerID) {
		return nil, apperrors.NewAuthorization("access denied")
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, query OrderListQuery, identity *auth.Identity) ([]models.Order, int64, error) {
	params := repository.OrderListParams{
		Status:   query.Status,
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
		Page:     query.Page,
		Limit:    query.Limit,
	}
	if !identity.IsAdmin() {
		params.CustomerID = identity.CustomerID
	}
	return s.orderRepo.List(ctx, params)
}

func (s *orderService) Update(ctx context.Context, id uint, req UpdateOrderRequest, identity *auth.Identity) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, err
	}
	if !order.IsDraft() {
		return nil, apperrors.NewValidation("Only draft orders can be updated")
	}
	if !identity.CanAccessCustomer(order.CustomerID) {
		return nil, apperrors.NewAuthorization("access denied")
	}

	// Apply partial scalar semantics before validating so the checks run
	// against the values that would be persisted.
	if req.OrderTypeID != nil {
		order.OrderTypeID = *req.OrderTypeID
	}
	if req.ShipToAccountID != nil {
		order.ShipToAccountID = *req.ShipToAccountID
	}
	if req.BillToAccountID != nil {
		order.BillToAccountID = *req.BillToAccountID
	}
	if req.CarrierID != nil {
		order.CarrierID = *req.CarrierID
	}
	if req.CarrierServiceID != nil {
		order.CarrierServiceID = *req.CarrierServiceID
	}
	if req.WarehouseID != nil {
		order.WarehouseID = req.WarehouseID
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	var details []string
	var items []models.OrderItem
	replaceItems := req.Items != nil
	if replaceItems {
		if len(*req.Items) == 0 {
			details = append(details, "items must contain at least one entry")
		}
		for i, item := range *req.Items {
			if item.MaterialID == 0 {
				details = append(details, fmt.Sprintf("items[%d].material_id is required", i))
			}
			if item.Quantity <= 0 {
				details = append(details, fmt.Sprintf("items[%d].quantity must be greater than zero", i))
			}
			items = append(items, models.OrderItem{
				MaterialID: item.MaterialID,
				Quantity:   item.Quantity,
				Status:     models.ItemStatusOpen,
			})
		}
	}

	deliveryDate := ""
	if req.ExpectedDeliveryDate != nil {
		deliveryDate = *req.ExpectedDeliveryDate
	}
	var itemInputs []OrderItemInput
	if replaceItems {
		itemInputs = *req.Items
	}
	refDetails, parsedDate, err := s.validateReferences(ctx, referenceInput{
		shipTo:       order.ShipToAccountID,
		billTo:       order.BillToAccountID,
		carrier:      order.CarrierID,
		service:      order.CarrierServiceID,
		warehouse:    order.WarehouseID,
		items:        itemInputs,
		deliveryDate: deliveryDate,
	})
	if err != nil {
		return nil, err
	}
	details = append(details, refDetails...)
	if len(details) > 0 {
		return nil, apperrors.NewValidation(details...)
	}
	if req.ExpectedDeliveryDate != nil {
		order.ExpectedDeliveryDate = parsedDate
	}
	order.ModifiedBy = &identity.UserID

	if err := s.orderRepo.Save(ctx, order, items, replaceItems); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperrors.NewConflict("order was modified concurrently, reload and retry")
		}
		return nil, err
	}
	s.invalidateStats(ctx, order.CustomerID)
	s.log.Info("order updated", "order_id", order.ID, "items_replaced", replaceItems)

	return s.orderRepo.GetByID(ctx, order.ID)
}

func (s *orderService) Delete(ctx context.Context, id uint, identity *auth.Identity) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Order")
		}
		return err
	}
	if !order.IsDraft() {
		return apperrors.NewValidation("Only draft orders can be deleted")
	}
	if !identity.CanAccessCustomer(order.CustomerID) {
		return apperrors.NewAuthorization("access denied")
	}

	if err := s.orderRepo.Delete(ctx, order); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return apperrors.NewConflict("order was modified concurrently, reload and retry")
		}
		return err
	}
	s.invalidateStats(ctx, order.CustomerID)
	s.log.Info("order deleted", "order_id", order.ID, "order_number", order.OrderNumber)
	return nil
}

type referenceInput struct {
	shipTo       uint
	billTo       uint
	carrier      uint
	service      uint
	warehouse    *uint
	items        []OrderItemInput
	deliveryDate string
}

// validateReferences runs the exhaustive reference pass plus the date
// parse and returns every failure message together.
func (s *orderService) validateReferences(ctx context.Context, in referenceInput) ([]string, *time.Time, error) {
	materialIDs := make([]uint, 0, len(in.items))
	for _, item := range in.items {
		if item.MaterialID != 0 {
			materialIDs = append(materialIDs, item.MaterialID)
		}
	}
	details, err := s.validator.ValidateOrderReferences(ctx, OrderReferences{
		ShipToAccountID:  in.shipTo,
		BillToAccountID:  in.billTo,
		CarrierID:        in.carrier,
		CarrierServiceID: in.service,
		WarehouseID:      in.warehouse,
		MaterialIDs:      materialIDs,
	})
	if err != nil {
		return nil, nil, err
	}

	var deliveryDate *time.Time
	if in.deliveryDate != "" {
		parsed, parseErr := time.Parse(dateLayout, in.deliveryDate)
		if parseErr != nil {
			details = append(details, "expected_delivery_date must be a valid date (YYYY-MM-DD)")
		} else {
			deliveryDate = &parsed
		}
	}
	return details, deliveryDate, nil
}

func (s *orderService) invalidateStats(ctx context.Context, customerID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOrderStats(ctx, customerID); err != nil {
		s.log.Warn("failed to invalidate stats cache", "customer_id", customerID, "error", err)
	}
}
