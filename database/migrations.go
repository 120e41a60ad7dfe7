package database

import (
	"log"

	"github.com/google/uuid"

	"fleetrental/utils"
)

// RunMigrations runs all database migrations
func RunMigrations() error {
	log.Println("Running database migrations...")

	// AutoMigrate will create tables if they don't exist
	if err := DB.AutoMigrate(
		&User{},
		&Customer{},
		&Vehicle{},
		&Contract{},
		&ContractVehicle{},
		&Inspection{},
		&DamageItem{},
		&Cost{},
		&Supplier{},
		&Part{},
		&PurchaseOrder{},
		&PurchaseOrderItem{},
		&Payment{},
		&Notification{},
	); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultAdmin creates a default admin if none exists
func SeedDefaultAdmin() {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("Failed to check existing admin: %v", err)
		return
	}

	if count == 0 {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			log.Printf("Failed to hash default admin password: %v", err)
			return
		}

		admin := User{
			TenantID:     uuid.NewString(),
			Name:         "Fleet Admin",
			Email:        "admin@fleetrental.local",
			PasswordHash: hash,
			Role:         RoleAdmin,
			Phone:        "0000000000",
		}

		if err := DB.Create(&admin).Error; err != nil {
			log.Printf("Failed to create admin: %v", err)
		} else {
			log.Println("Default admin user created successfully")
		}
	}
}
