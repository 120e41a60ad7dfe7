package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetrental/database"
)

// CostRequest contains the data for manual cost creation
type CostRequest struct {
	Description string     `json:"description" binding:"required"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Category    string     `json:"category" binding:"required,oneof=excess_km fuel maintenance recurring damage other"`
	ContractID  *uint      `json:"contract_id"`
	VehicleID   *uint      `json:"vehicle_id"`
	CustomerID  *uint      `json:"customer_id"`
	DueDate     *time.Time `json:"due_date"`
}

// CreateCost records a manual cost entry. Automatic costs (excess km, fuel,
// recurring) are only ever created by contract finalization and the
// recurring-costs job.
func CreateCost(c *gin.Context) {
	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	cost := database.Cost{
		TenantID:    tenantID(c),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Status:      database.CostStatusPending,
		Origin:      database.CostOriginManual,
		ContractID:  req.ContractID,
		VehicleID:   req.VehicleID,
		CustomerID:  req.CustomerID,
		DueDate:     req.DueDate,
	}

	if err := database.DB.Create(&cost).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cost)
}

// GetCosts lists costs, optionally filtered by status, category or contract
func GetCosts(c *gin.Context) {
	query := database.DB.
		Preload("Contract").
		Preload("Vehicle").
		Preload("Customer").
		Where("tenant_id = ?", tenantID(c))

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if contractID := c.Query("contract_id"); contractID != "" {
		query = query.Where("contract_id = ?", contractID)
	}

	var costs []database.Cost
	if err := query.Order("created_at DESC").Find(&costs).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, costs)
}

// GetCostByID returns one cost
func GetCostByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var cost database.Cost
	err := database.DB.
		Preload("Contract").
		Preload("Vehicle").
		Preload("Customer").
		Where("tenant_id = ?", tenantID(c)).
		First(&cost, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cost)
}

// AuthorizeCost moves a pending cost to authorized
func AuthorizeCost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var cost database.Cost
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&cost, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if cost.Status != database.CostStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending costs can be authorized"})
		return
	}

	if err := database.DB.Model(&cost).Update("status", database.CostStatusAuthorized).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost authorized", "cost": cost})
}

// MarkCostPaid moves an authorized cost to paid without going through the
// payment gateway (cash, transfer)
func MarkCostPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var cost database.Cost
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&cost, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if cost.Status != database.CostStatusAuthorized {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only authorized costs can be marked paid"})
		return
	}

	if err := database.DB.Model(&cost).Update("status", database.CostStatusPaid).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost marked as paid", "cost": cost})
}

// DeleteCost removes a cost entry. Automatic entries cannot be deleted, only
// their source contract can.
func DeleteCost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var cost database.Cost
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&cost, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if cost.Origin == database.CostOriginAutomatic {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Automatically generated costs cannot be deleted"})
		return
	}

	if err := database.DB.Delete(&cost).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost deleted"})
}
