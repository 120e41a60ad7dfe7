package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleetrental/database"
)

const testTenant = "22222222-2222-2222-2222-222222222222"

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
		&database.Cost{},
		&database.Notification{},
	)
	require.NoError(t, err)

	return db
}

func seedRecurringContract(t *testing.T, db *gorm.DB, recurrenceType string, recurrenceDay int, dailyRate float64) *database.Contract {
	t.Helper()
	contract := &database.Contract{
		TenantID:       testTenant,
		Number:         "CT-REC",
		CustomerID:     1,
		DailyRate:      dailyRate,
		StartDate:      time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		Status:         database.ContractStatusActive,
		RecurrenceType: &recurrenceType,
		RecurrenceDay:  &recurrenceDay,
	}
	require.NoError(t, db.Create(contract).Error)
	return contract
}

func TestGenerateRecurringCosts(t *testing.T) {
	t.Run("MonthlyContractBillsOncePerMonth", func(t *testing.T) {
		db := newTestDB(t)
		contract := seedRecurringContract(t, db, database.RecurrenceMonthly, 5, 100)

		now := time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)

		created, err := GenerateRecurringCosts(db, now)
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		// Re-running within the same period inserts nothing
		created, err = GenerateRecurringCosts(db, now.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Zero(t, created)

		var cost database.Cost
		require.NoError(t, db.Where("contract_id = ?", contract.ID).First(&cost).Error)
		assert.Equal(t, database.CostCategoryRecurring, cost.Category)
		assert.Equal(t, database.CostOriginAutomatic, cost.Origin)
		assert.Equal(t, "2026-08", cost.PeriodKey)
		assert.InDelta(t, 3000.0, cost.Amount, 0.001)

		// A new month is a new period
		created, err = GenerateRecurringCosts(db, time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 1, created)
	})

	t.Run("BillingDayNotReachedYet", func(t *testing.T) {
		db := newTestDB(t)
		seedRecurringContract(t, db, database.RecurrenceMonthly, 20, 100)

		created, err := GenerateRecurringCosts(db, time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Zero(t, created)
	})

	t.Run("WeeklyAmount", func(t *testing.T) {
		db := newTestDB(t)
		contract := seedRecurringContract(t, db, database.RecurrenceWeekly, 0, 50)

		created, err := GenerateRecurringCosts(db, time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		var cost database.Cost
		require.NoError(t, db.Where("contract_id = ?", contract.ID).First(&cost).Error)
		assert.InDelta(t, 350.0, cost.Amount, 0.001)
		assert.Contains(t, cost.PeriodKey, "2026-W")
	})

	t.Run("NonRecurringContractsSkipped", func(t *testing.T) {
		db := newTestDB(t)
		contract := &database.Contract{
			TenantID:   testTenant,
			Number:     "CT-PLAIN",
			CustomerID: 1,
			StartDate:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			Status:     database.ContractStatusActive,
		}
		require.NoError(t, db.Create(contract).Error)

		created, err := GenerateRecurringCosts(db, time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Zero(t, created)
	})

	t.Run("FinalizedContractsSkipped", func(t *testing.T) {
		db := newTestDB(t)
		contract := seedRecurringContract(t, db, database.RecurrenceMonthly, 1, 100)
		require.NoError(t, db.Model(contract).Update("status", database.ContractStatusFinalized).Error)

		created, err := GenerateRecurringCosts(db, time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Zero(t, created)
	})
}

func TestSendContractExpiryReminders(t *testing.T) {
	now := time.Date(2026, time.August, 28, 9, 0, 0, 0, time.UTC)

	seedStaff := func(t *testing.T, db *gorm.DB) (database.User, database.User) {
		admin := database.User{TenantID: testTenant, Name: "Admin", Role: database.RoleAdmin}
		manager := database.User{TenantID: testTenant, Name: "Manager", Role: database.RoleManager}
		require.NoError(t, db.Create(&admin).Error)
		require.NoError(t, db.Create(&manager).Error)
		return admin, manager
	}

	t.Run("ExpiringContractNotifiesStaffOnce", func(t *testing.T) {
		db := newTestDB(t)
		seedStaff(t, db)

		contract := &database.Contract{
			TenantID:   testTenant,
			Number:     "CT-EXP",
			CustomerID: 1,
			StartDate:  now.AddDate(0, -1, 0),
			EndDate:    now.Add(48 * time.Hour),
			Status:     database.ContractStatusActive,
		}
		require.NoError(t, db.Create(contract).Error)

		created, err := SendContractExpiryReminders(db, now)
		require.NoError(t, err)
		assert.Equal(t, 2, created)

		// Second pass is a no-op
		created, err = SendContractExpiryReminders(db, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, created)
	})

	t.Run("FarEndDateIgnored", func(t *testing.T) {
		db := newTestDB(t)
		seedStaff(t, db)

		contract := &database.Contract{
			TenantID:   testTenant,
			Number:     "CT-FAR",
			CustomerID: 1,
			StartDate:  now.AddDate(0, -1, 0),
			EndDate:    now.AddDate(0, 1, 0),
			Status:     database.ContractStatusActive,
		}
		require.NoError(t, db.Create(contract).Error)

		created, err := SendContractExpiryReminders(db, now)
		require.NoError(t, err)
		assert.Zero(t, created)
	})

	t.Run("AlreadyEndedIgnored", func(t *testing.T) {
		db := newTestDB(t)
		seedStaff(t, db)

		contract := &database.Contract{
			TenantID:   testTenant,
			Number:     "CT-PAST",
			CustomerID: 1,
			StartDate:  now.AddDate(0, -2, 0),
			EndDate:    now.Add(-24 * time.Hour),
			Status:     database.ContractStatusActive,
		}
		require.NoError(t, db.Create(contract).Error)

		created, err := SendContractExpiryReminders(db, now)
		require.NoError(t, err)
		assert.Zero(t, created)
	})
}
