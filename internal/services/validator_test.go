package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

func TestValidateOrderReferencesAllValid(t *testing.T) {
	db := openTestDB(t)
	f := seedReferenceData(t, db)
	v := NewReferenceValidator(repository.NewReferenceRepository(db))

	failures, err := v.ValidateOrderReferences(context.Background(), OrderReferences{
		ShipToAccountID:  f.shipTo.ID,
		BillToAccountID:  f.billTo.ID,
		CarrierID:        f.carrier.ID,
		CarrierServiceID: f.carrierService.ID,
		WarehouseID:      &f.warehouse.ID,
		MaterialIDs:      []uint{f.materials[0].ID, f.materials[1].ID},
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
}

func TestValidateOrderReferencesReportsEveryFailure(t *testing.T) {
	db := openTestDB(t)
	seedReferenceData(t, db)
	v := NewReferenceValidator(repository.NewReferenceRepository(db))

	missingWarehouse := uint(70707)
	failures, err := v.ValidateOrderReferences(context.Background(), OrderReferences{
		ShipToAccountID:  10101,
		BillToAccountID:  20202,
		CarrierID:        30303,
		CarrierServiceID: 40404,
		WarehouseID:      &missingWarehouse,
		MaterialIDs:      []uint{50505, 60606},
	})
	require.NoError(t, err)

	assert.Contains(t, failures, "Ship to account not found")
	assert.Contains(t, failures, "Bill to account not found")
	assert.Contains(t, failures, "Carrier not found")
	assert.Contains(t, failures, "Carrier service not found")
	assert.Contains(t, failures, "Warehouse not found")
	assert.Contains(t, failures, "Materials not found: 50505, 60606")
	assert.Len(t, failures, 6)
}

func TestValidateCarrierServiceOwnership(t *testing.T) {
	db := openTestDB(t)
	f := seedReferenceData(t, db)
	v := NewReferenceValidator(repository.NewReferenceRepository(db))

	// Service exists but belongs to a different carrier.
	failures, err := v.ValidateOrderReferences(context.Background(), OrderReferences{
		CarrierID:        f.otherCarrier.ID,
		CarrierServiceID: f.carrierService.ID,
	})
	require.NoError(t, err)
	assert.Contains(t, failures, "Carrier service does not belong to the selected carrier")
	assert.Len(t, failures, 1)
}

func TestValidateMixedValidAndInvalid(t *testing.T) {
	db := openTestDB(t)
	f := seedReferenceData(t, db)
	v := NewReferenceValidator(repository.NewReferenceRepository(db))

	failures, err := v.ValidateOrderReferences(context.Background(), OrderReferences{
		ShipToAccountID:  f.shipTo.ID,
		BillToAccountID:  20202,
		CarrierID:        f.carrier.ID,
		CarrierServiceID: f.carrierService.ID,
		MaterialIDs:      []uint{f.materials[0].ID, 99999},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Bill to account not found",
		"Materials not found: 99999",
	}, failures)
}

func TestCustomerExists(t *testing.T) {
	db := openTestDB(t)
	f := seedReferenceData(t, db)
	v := NewReferenceValidator(repository.NewReferenceRepository(db))

	ok, err := v.CustomerExists(context.Background(), f.customerA.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.CustomerExists(context.Background(), 99999)
	require.NoError(t, err)
	assert.False(t, ok)
}
