package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrental/database"
)

func TestListAvailableVehicles(t *testing.T) {
	db := newTestDB(t)

	customer := seedCustomer(t, db, "Acme Rentals", "12345678")
	v1 := seedVehicle(t, db, "AAA-0001", database.VehicleStatusInUse)
	v2 := seedVehicle(t, db, "BBB-0002", database.VehicleStatusAvailable)
	v3 := seedVehicle(t, db, "CCC-0003", database.VehicleStatusAvailable)
	seedVehicle(t, db, "DDD-0004", database.VehicleStatusInactive)

	// v1 is held by an active contract for the first half of March
	held := seedContract(t, db, customer.ID, &v1.ID,
		day(2026, time.March, 1), day(2026, time.March, 15), database.ContractStatusActive)

	t.Run("OverlappingVehicleExcluded", func(t *testing.T) {
		vehicles, err := ListAvailableVehicles(db, testTenant,
			day(2026, time.March, 10), day(2026, time.March, 20), 0)
		require.NoError(t, err)

		plates := platesOf(vehicles)
		assert.Equal(t, []string{"BBB-0002", "CCC-0003"}, plates)
	})

	t.Run("BoundaryDayStillOverlaps", func(t *testing.T) {
		// Requesting a range that starts on the contract's end day
		vehicles, err := ListAvailableVehicles(db, testTenant,
			day(2026, time.March, 15), day(2026, time.March, 20), 0)
		require.NoError(t, err)
		assert.NotContains(t, platesOf(vehicles), "AAA-0001")
	})

	t.Run("DisjointRangeIncludesVehicle", func(t *testing.T) {
		vehicles, err := ListAvailableVehicles(db, testTenant,
			day(2026, time.March, 16), day(2026, time.March, 20), 0)
		require.NoError(t, err)
		assert.Contains(t, platesOf(vehicles), "AAA-0001")
	})

	t.Run("ExcludeContractReleasesItsVehicle", func(t *testing.T) {
		vehicles, err := ListAvailableVehicles(db, testTenant,
			day(2026, time.March, 10), day(2026, time.March, 20), held.ID)
		require.NoError(t, err)
		assert.Contains(t, platesOf(vehicles), "AAA-0001")
	})

	t.Run("InactiveVehicleNeverListed", func(t *testing.T) {
		vehicles, err := ListAvailableVehicles(db, testTenant,
			day(2026, time.June, 1), day(2026, time.June, 5), 0)
		require.NoError(t, err)
		assert.NotContains(t, platesOf(vehicles), "DDD-0004")
	})

	t.Run("MultiVehicleContractHoldsItsVehicles", func(t *testing.T) {
		multi := &database.Contract{
			TenantID:             testTenant,
			Number:               "CT-MULTI",
			CustomerID:           customer.ID,
			StartDate:            day(2026, time.April, 1),
			EndDate:              day(2026, time.April, 10),
			Status:               database.ContractStatusActive,
			UsesMultipleVehicles: true,
		}
		require.NoError(t, db.Create(multi).Error)
		require.NoError(t, db.Create(&database.ContractVehicle{
			TenantID: testTenant, ContractID: multi.ID, VehicleID: v2.ID,
		}).Error)
		require.NoError(t, db.Create(&database.ContractVehicle{
			TenantID: testTenant, ContractID: multi.ID, VehicleID: v3.ID,
		}).Error)

		vehicles, err := ListAvailableVehicles(db, testTenant,
			day(2026, time.April, 5), day(2026, time.April, 6), 0)
		require.NoError(t, err)

		plates := platesOf(vehicles)
		assert.NotContains(t, plates, "BBB-0002")
		assert.NotContains(t, plates, "CCC-0003")
		assert.Contains(t, plates, "AAA-0001")
	})

	t.Run("StartNotBeforeEndRejected", func(t *testing.T) {
		_, err := ListAvailableVehicles(db, testTenant,
			day(2026, time.March, 10), day(2026, time.March, 10), 0)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "date_range", vErr.Field)
	})

	t.Run("ZeroDatesRejected", func(t *testing.T) {
		_, err := ListAvailableVehicles(db, testTenant, time.Time{}, day(2026, time.March, 10), 0)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func platesOf(vehicles []database.Vehicle) []string {
	plates := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		plates = append(plates, v.Plate)
	}
	return plates
}
