package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleetrental/database"
)

const testTenant = "11111111-1111-1111-1111-111111111111"

// newTestDB opens an in-memory SQLite database with the full schema. The pool
// is pinned to one connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&database.User{},
		&database.Customer{},
		&database.Vehicle{},
		&database.Contract{},
		&database.ContractVehicle{},
		&database.Inspection{},
		&database.DamageItem{},
		&database.Cost{},
		&database.Notification{},
	)
	require.NoError(t, err)

	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name, document string) *database.Customer {
	t.Helper()
	customer := &database.Customer{TenantID: testTenant, Name: name, Document: document}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedVehicle(t *testing.T, db *gorm.DB, plate, status string) *database.Vehicle {
	t.Helper()
	vehicle := &database.Vehicle{TenantID: testTenant, Plate: plate, Status: status}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

func seedContract(t *testing.T, db *gorm.DB, customerID uint, vehicleID *uint, start, end time.Time, status string) *database.Contract {
	t.Helper()
	contract := &database.Contract{
		TenantID:   testTenant,
		Number:     "CT-TEST",
		CustomerID: customerID,
		VehicleID:  vehicleID,
		StartDate:  start,
		EndDate:    end,
		Status:     status,
	}
	require.NoError(t, db.Create(contract).Error)
	return contract
}

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}
