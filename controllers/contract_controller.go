package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetrental/database"
	"fleetrental/services"
)

// CreateContract creates a new rental contract. The contract starts active
// and its vehicle(s) are put in use immediately.
func CreateContract(c *gin.Context) {
	var input services.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	contract, err := services.CreateContract(database.DB, tenantID(c), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// GetContracts lists the tenant's contracts, optionally filtered by status
// or customer
func GetContracts(c *gin.Context) {
	query := database.DB.
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicles.Vehicle").
		Where("tenant_id = ?", tenantID(c))

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var contracts []database.Contract
	if err := query.Order("created_at DESC").Find(&contracts).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// GetContractByID returns one contract with its customer and vehicles
func GetContractByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var contract database.Contract
	err := database.DB.
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicles.Vehicle").
		Where("tenant_id = ?", tenantID(c)).
		First(&contract, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// UpdateContract applies a partial update, keeping vehicle statuses in sync
// and deriving costs when the contract is finalized through a status change
func UpdateContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var upd services.ContractUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	contract, err := services.UpdateContract(database.DB, tenantID(c), id, upd)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// FinalizeContract moves an active contract to finalized, generating excess
// kilometer and missing fuel costs from the latest inspections
func FinalizeContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := services.FinalizeContract(database.DB, tenantID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract finalized", "contract": contract})
}

// CancelContract moves an active contract to cancelled and releases its
// vehicles
func CancelContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contract, err := services.CancelContract(database.DB, tenantID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract cancelled", "contract": contract})
}

// DeleteContract removes a contract; its vehicles always return to available
func DeleteContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := services.DeleteContract(database.DB, tenantID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// ConflictCheckRequest contains the data for a conflict check
type ConflictCheckRequest struct {
	VehicleIDs        []uint    `json:"vehicle_ids"`
	StartDate         time.Time `json:"start_date" binding:"required"`
	EndDate           time.Time `json:"end_date" binding:"required"`
	ExcludeContractID uint      `json:"exclude_contract_id"`
}

// CheckContractConflicts reports the active contracts overlapping the given
// range for the given vehicles. A contract ending on the same day another
// starts counts as a conflict; clients surface this to the user rather than
// adjusting the dates silently.
func CheckContractConflicts(c *gin.Context) {
	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	result, err := services.CheckConflicts(database.DB, tenantID(c), req.VehicleIDs, req.StartDate, req.EndDate, req.ExcludeContractID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
