package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrental/database"
)

func TestCheckConflicts(t *testing.T) {
	db := newTestDB(t)

	customer := seedCustomer(t, db, "Jordan Motors", "98765432")
	v1 := seedVehicle(t, db, "AAA-0001", database.VehicleStatusInUse)
	v2 := seedVehicle(t, db, "BBB-0002", database.VehicleStatusAvailable)

	existing := seedContract(t, db, customer.ID, &v1.ID,
		day(2026, time.May, 1), day(2026, time.May, 10), database.ContractStatusActive)

	t.Run("EmptyVehicleListIsNoConflict", func(t *testing.T) {
		result, err := CheckConflicts(db, testTenant, nil,
			day(2026, time.May, 1), day(2026, time.May, 10), 0)
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
		assert.Empty(t, result.Conflicts)
	})

	t.Run("ZeroIDsAreDropped", func(t *testing.T) {
		result, err := CheckConflicts(db, testTenant, []uint{0, 0},
			day(2026, time.May, 1), day(2026, time.May, 10), 0)
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
	})

	t.Run("OverlapDetectedWithDetails", func(t *testing.T) {
		result, err := CheckConflicts(db, testTenant, []uint{v1.ID},
			day(2026, time.May, 5), day(2026, time.May, 20), 0)
		require.NoError(t, err)
		require.True(t, result.HasConflict)
		require.Len(t, result.Conflicts, 1)

		detail := result.Conflicts[0]
		assert.Equal(t, existing.ID, detail.ContractID)
		assert.Equal(t, "CT-TEST", detail.ContractNumber)
		assert.Equal(t, v1.ID, detail.VehicleID)
		assert.Equal(t, "AAA-0001", detail.VehiclePlate)
		assert.Equal(t, "Jordan Motors", detail.CustomerName)
		assert.Equal(t, "98765432", detail.CustomerDocument)
	})

	t.Run("SameDayBoundaryConflicts", func(t *testing.T) {
		// New range starts on the day the existing contract ends
		result, err := CheckConflicts(db, testTenant, []uint{v1.ID},
			day(2026, time.May, 10), day(2026, time.May, 15), 0)
		require.NoError(t, err)
		assert.True(t, result.HasConflict)
	})

	t.Run("DisjointRangeDoesNotConflict", func(t *testing.T) {
		result, err := CheckConflicts(db, testTenant, []uint{v1.ID},
			day(2026, time.May, 11), day(2026, time.May, 15), 0)
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
	})

	t.Run("DuplicateIDsReportOnce", func(t *testing.T) {
		result, err := CheckConflicts(db, testTenant, []uint{v1.ID, v1.ID, v1.ID},
			day(2026, time.May, 5), day(2026, time.May, 6), 0)
		require.NoError(t, err)
		assert.Len(t, result.Conflicts, 1)
	})

	t.Run("ExcludedContractIgnored", func(t *testing.T) {
		result, err := CheckConflicts(db, testTenant, []uint{v1.ID},
			day(2026, time.May, 5), day(2026, time.May, 6), existing.ID)
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
	})

	t.Run("UnrelatedVehicleDoesNotConflict", func(t *testing.T) {
		result, err := CheckConflicts(db, testTenant, []uint{v2.ID},
			day(2026, time.May, 5), day(2026, time.May, 6), 0)
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
	})

	t.Run("CancelledContractDoesNotConflict", func(t *testing.T) {
		v3 := seedVehicle(t, db, "CCC-0003", database.VehicleStatusAvailable)
		seedContract(t, db, customer.ID, &v3.ID,
			day(2026, time.May, 1), day(2026, time.May, 10), database.ContractStatusCancelled)

		result, err := CheckConflicts(db, testTenant, []uint{v3.ID},
			day(2026, time.May, 5), day(2026, time.May, 6), 0)
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
	})

	t.Run("MultiVehicleContractConflictPerVehicle", func(t *testing.T) {
		v4 := seedVehicle(t, db, "EEE-0005", database.VehicleStatusInUse)
		v5 := seedVehicle(t, db, "FFF-0006", database.VehicleStatusInUse)

		multi := &database.Contract{
			TenantID:             testTenant,
			Number:               "CT-MULTI",
			CustomerID:           customer.ID,
			StartDate:            day(2026, time.July, 1),
			EndDate:              day(2026, time.July, 31),
			Status:               database.ContractStatusActive,
			UsesMultipleVehicles: true,
		}
		require.NoError(t, db.Create(multi).Error)
		for _, id := range []uint{v4.ID, v5.ID} {
			require.NoError(t, db.Create(&database.ContractVehicle{
				TenantID: testTenant, ContractID: multi.ID, VehicleID: id,
			}).Error)
		}

		result, err := CheckConflicts(db, testTenant, []uint{v4.ID, v5.ID},
			day(2026, time.July, 10), day(2026, time.July, 12), 0)
		require.NoError(t, err)
		assert.Len(t, result.Conflicts, 2)
	})

	t.Run("EndBeforeStartRejected", func(t *testing.T) {
		_, err := CheckConflicts(db, testTenant, []uint{v1.ID},
			day(2026, time.May, 10), day(2026, time.May, 5), 0)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}
