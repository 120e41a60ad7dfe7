package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetrental/cache"
	"fleetrental/database"
)

// AdminDashboard returns key fleet statistics for the tenant. The result is
// cached for the configured TTL.
func AdminDashboard(c *gin.Context) {
	tenant := tenantID(c)
	key := "dashboard:" + tenant

	if cached, found := cache.Get(key); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	var totalVehicles, availableVehicles, vehiclesInUse int64
	var activeContracts, totalCustomers, pendingCosts int64
	var paidRevenue float64

	counts := []struct {
		dest  *int64
		model interface{}
		where []interface{}
	}{
		{&totalVehicles, &database.Vehicle{}, []interface{}{"tenant_id = ?", tenant}},
		{&availableVehicles, &database.Vehicle{}, []interface{}{"tenant_id = ? AND status = ?", tenant, database.VehicleStatusAvailable}},
		{&vehiclesInUse, &database.Vehicle{}, []interface{}{"tenant_id = ? AND status = ?", tenant, database.VehicleStatusInUse}},
		{&activeContracts, &database.Contract{}, []interface{}{"tenant_id = ? AND status = ?", tenant, database.ContractStatusActive}},
		{&totalCustomers, &database.Customer{}, []interface{}{"tenant_id = ?", tenant}},
		{&pendingCosts, &database.Cost{}, []interface{}{"tenant_id = ? AND status = ?", tenant, database.CostStatusPending}},
	}
	for _, count := range counts {
		query := database.DB.Model(count.model).Where(count.where[0], count.where[1:]...)
		if err := query.Count(count.dest).Error; err != nil {
			handleServiceError(c, err)
			return
		}
	}

	err := database.DB.Model(&database.Cost{}).
		Where("tenant_id = ? AND status = ?", tenant, database.CostStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paidRevenue).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	stats := gin.H{
		"stats": gin.H{
			"totalVehicles":     totalVehicles,
			"availableVehicles": availableVehicles,
			"vehiclesInUse":     vehiclesInUse,
			"activeContracts":   activeContracts,
			"totalCustomers":    totalCustomers,
			"pendingCosts":      pendingCosts,
			"paidRevenue":       paidRevenue,
		},
	}

	cache.Set(key, stats)
	c.JSON(http.StatusOK, stats)
}
