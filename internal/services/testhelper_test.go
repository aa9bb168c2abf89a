package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/juliomeza/sales-orders-system-sub001/internal/auth"
	"github.com/juliomeza/sales-orders-system-sub001/internal/database"
	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

var testDBCounter int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache database keeps every pooled connection on the
	// same in-memory store.
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fixture struct {
	customerA      *models.Customer
	customerB      *models.Customer
	shipTo         *models.Account
	billTo         *models.Account
	carrier        *models.Carrier
	carrierService *models.CarrierService
	otherCarrier   *models.Carrier
	warehouse      *models.Warehouse
	materials      []models.Material
}

func seedReferenceData(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{}

	f.customerA = &models.Customer{LookupCode: "ACME", Name: "Acme Corp", Status: models.StatusActive}
	f.customerB = &models.Customer{LookupCode: "GLOBEX", Name: "Globex Inc", Status: models.StatusActive}
	require.NoError(t, db.Create(f.customerA).Error)
	require.NoError(t, db.Create(f.customerB).Error)

	f.shipTo = &models.Account{LookupCode: "ACME-SHIP", Name: "Acme Dock 1", AccountType: models.AccountTypeShipTo, CustomerID: &f.customerA.ID, Status: models.StatusActive}
	f.billTo = &models.Account{LookupCode: "ACME-BILL", Name: "Acme HQ", AccountType: models.AccountTypeBillTo, CustomerID: &f.customerA.ID, Status: models.StatusActive}
	require.NoError(t, db.Create(f.shipTo).Error)
	require.NoError(t, db.Create(f.billTo).Error)

	f.carrier = &models.Carrier{LookupCode: "UPS", Name: "UPS", Status: models.StatusActive}
	require.NoError(t, db.Create(f.carrier).Error)
	f.carrierService = &models.CarrierService{CarrierID: f.carrier.ID, LookupCode: "UPS-GND", Name: "Ground", Status: models.StatusActive}
	require.NoError(t, db.Create(f.carrierService).Error)
	f.otherCarrier = &models.Carrier{LookupCode: "FEDEX", Name: "FedEx", Status: models.StatusActive}
	require.NoError(t, db.Create(f.otherCarrier).Error)

	f.warehouse = &models.Warehouse{LookupCode: "WH-1", Name: "Main Warehouse", Capacity: 100, Status: models.StatusActive}
	require.NoError(t, db.Create(f.warehouse).Error)

	f.materials = []models.Material{
		{LookupCode: "MAT-A", Code: "A-1", Status: models.StatusActive},
		{LookupCode: "MAT-B", Code: "B-1", Status: models.StatusActive},
	}
	require.NoError(t, db.Create(&f.materials).Error)

	return f
}

func adminIdentity() *auth.Identity {
	return &auth.Identity{UserID: 1, Role: models.RoleAdmin}
}

func clientIdentity(customerID uint) *auth.Identity {
	return &auth.Identity{UserID: 2, Role: models.RoleClient, CustomerID: &customerID}
}

func nopLogger() *logger.Logger {
	return logger.NewNop()
}
