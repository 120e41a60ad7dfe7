package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetrental/database"
)

// PartRequest contains the data for inventory part creation and update
type PartRequest struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku" binding:"required"`
	Quantity     int     `json:"quantity"`
	MinimumStock int     `json:"minimum_stock"`
	UnitCost     float64 `json:"unit_cost"`
	SupplierID   *uint   `json:"supplier_id"`
}

// CreatePart registers a new inventory part
func CreatePart(c *gin.Context) {
	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	part := database.Part{
		TenantID:     tenantID(c),
		Name:         req.Name,
		SKU:          req.SKU,
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		UnitCost:     req.UnitCost,
		SupplierID:   req.SupplierID,
	}

	if err := database.DB.Create(&part).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, part)
}

// GetParts lists inventory parts; low_stock=true filters to parts at or
// below their minimum stock
func GetParts(c *gin.Context) {
	query := database.DB.Preload("Supplier").Where("tenant_id = ?", tenantID(c))
	if c.Query("low_stock") == "true" {
		query = query.Where("quantity <= minimum_stock")
	}

	var parts []database.Part
	if err := query.Order("name ASC").Find(&parts).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, parts)
}

// GetPartByID returns a single part
func GetPartByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var part database.Part
	err := database.DB.Preload("Supplier").Where("tenant_id = ?", tenantID(c)).First(&part, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, part)
}

// UpdatePart updates a part's attributes
func UpdatePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var part database.Part
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&part, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	part.Name = req.Name
	part.SKU = req.SKU
	part.Quantity = req.Quantity
	part.MinimumStock = req.MinimumStock
	part.UnitCost = req.UnitCost
	part.SupplierID = req.SupplierID

	if err := database.DB.Save(&part).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, part)
}

// DeletePart removes a part from inventory
func DeletePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var part database.Part
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&part, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := database.DB.Delete(&part).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Part deleted"})
}
