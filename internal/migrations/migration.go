package migrations

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
)

// Seed creates the default admin account and a starter set of reference
// data on an empty database. Safe to run on every boot: it only inserts
// when the corresponding table is empty.
func Seed(db *gorm.DB, log *logger.Logger, defaultPassword string) error {
	if err := seedAdminUser(db, log, defaultPassword); err != nil {
		return err
	}
	return seedReferenceData(db, log)
}

func seedAdminUser(db *gorm.DB, log *logger.Logger, defaultPassword string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:     "admin@example.com",
		Password:  string(hashed),
		FirstName: "System",
		LastName:  "Administrator",
		Role:      models.RoleAdmin,
		Status:    models.StatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Info("seeded default admin user", "email", admin.Email)
	return nil
}

func seedReferenceData(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&models.Carrier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	carriers := []models.Carrier{
		{LookupCode: "UPS", Name: "United Parcel Service", Status: models.StatusActive, Services: []models.CarrierService{
			{LookupCode: "UPS-GND", Name: "UPS Ground", Status: models.StatusActive},
			{LookupCode: "UPS-2DA", Name: "UPS 2nd Day Air", Status: models.StatusActive},
		}},
		{LookupCode: "FEDEX", Name: "FedEx", Status: models.StatusActive, Services: []models.CarrierService{
			{LookupCode: "FDX-GND", Name: "FedEx Ground", Status: models.StatusActive},
			{LookupCode: "FDX-PRI", Name: "FedEx Priority Overnight", Status: models.StatusActive},
		}},
	}
	if err := db.Create(&carriers).Error; err != nil {
		return err
	}

	warehouses := []models.Warehouse{
		{LookupCode: "WH-EAST", Name: "East Coast Distribution", City: "Newark", State: "NJ", Capacity: 500, Status: models.StatusActive},
		{LookupCode: "WH-WEST", Name: "West Coast Distribution", City: "Oakland", State: "CA", Capacity: 350, Status: models.StatusActive},
	}
	if err := db.Create(&warehouses).Error; err != nil {
		return err
	}

	materials := []models.Material{
		{LookupCode: "MAT-PALLET", Code: "PLT-48", Description: "Standard 48x40 pallet", UOM: "EA", Status: models.StatusActive},
		{LookupCode: "MAT-BOX-M", Code: "BOX-M", Description: "Medium shipping box", UOM: "EA", Status: models.StatusActive},
		{LookupCode: "MAT-WRAP", Code: "WRP-01", Description: "Stretch wrap roll", UOM: "RL", Status: models.StatusActive},
	}
	if err := db.Create(&materials).Error; err != nil {
		return err
	}

	log.Info("seeded reference data",
		"carriers", len(carriers), "warehouses", len(warehouses), "materials", len(materials))
	return nil
}
