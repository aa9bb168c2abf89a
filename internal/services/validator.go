package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

// OrderReferences holds every foreign key an order mutation supplies.
type OrderReferences struct {
	ShipToAccountID  uint
	BillToAccountID  uint
	CarrierID        uint
	CarrierServiceID uint
	WarehouseID      *uint
	MaterialIDs      []uint
}

// ReferenceValidator checks that every reference in a mutation payload
// resolves to an existing row. Validation is exhaustive: all references
// are checked and every failure is reported together, so the caller can
// fix all problems in one round-trip.
type ReferenceValidator interface {
	ValidateOrderReferences(ctx context.Context, refs OrderReferences) ([]string, error)
	CustomerExists(ctx context.Context, id uint) (bool, error)
}

type referenceValidator struct {
	refRepo repository.ReferenceRepository
}

func NewReferenceValidator(refRepo repository.ReferenceRepository) ReferenceValidator {
	return &referenceValidator{refRepo: refRepo}
}

func (v *referenceValidator) ValidateOrderReferences(ctx context.Context, refs OrderReferences) ([]string, error) {
	var failures []string

	if refs.ShipToAccountID != 0 {
		ok, err := v.refRepo.AccountExists(ctx, refs.ShipToAccountID)
		if err != nil {
			return nil, err
		}
		if !ok {
			failures = append(failures, "Ship to account not found")
		}
	}
	if refs.BillToAccountID != 0 {
		ok, err := v.refRepo.AccountExists(ctx, refs.BillToAccountID)
		if err != nil {
			return nil, err
		}
		if !ok {
			failures = append(failures, "Bill to account not found")
		}
	}

	carrierOK := true
	if refs.CarrierID != 0 {
		ok, err := v.refRepo.CarrierExists(ctx, refs.CarrierID)
		if err != nil {
			return nil, err
		}
		if !ok {
			carrierOK = false
			failures = append(failures, "Carrier not found")
		}
	}
	if refs.CarrierServiceID != 0 {
		service, err := v.refRepo.GetCarrierService(ctx, refs.CarrierServiceID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			failures = append(failures, "Carrier service not found")
		} else if carrierOK && refs.CarrierID != 0 && service.CarrierID != refs.CarrierID {
			failures = append(failures, "Carrier service does not belong to the selected carrier")
		}
	}

	if refs.WarehouseID != nil {
		ok, err := v.refRepo.WarehouseExists(ctx, *refs.WarehouseID)
		if err != nil {
			return nil, err
		}
		if !ok {
			failures = append(failures, "Warehouse not found")
		}
	}

	if len(refs.MaterialIDs) > 0 {
		missing, err := v.refRepo.MissingMaterials(ctx, refs.MaterialIDs)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			ids := make([]string, len(missing))
			for i, id := range missing {
				ids[i] = fmt.Sprintf("%d", id)
			}
			failures = append(failures, "Materials not found: "+strings.Join(ids, ", "))
		}
	}

	return failures, nil
}

func (v *referenceValidator) CustomerExists(ctx context.Context, id uint) (bool, error) {
	return v.refRepo.CustomerExists(ctx, id)
}
