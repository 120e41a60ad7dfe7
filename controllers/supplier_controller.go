package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetrental/database"
)

// SupplierRequest contains the data for supplier creation and update
type SupplierRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
}

// CreateSupplier registers a new supplier
func CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	supplier := database.Supplier{
		TenantID: tenantID(c),
		Name:     req.Name,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: active,
	}

	if err := database.DB.Create(&supplier).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers lists the tenant's suppliers
func GetSuppliers(c *gin.Context) {
	var suppliers []database.Supplier
	err := database.DB.Where("tenant_id = ?", tenantID(c)).Order("name ASC").Find(&suppliers).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// GetSupplierByID returns a single supplier
func GetSupplierByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var supplier database.Supplier
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&supplier, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier updates a supplier's attributes
func UpdateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var supplier database.Supplier
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&supplier, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	supplier.Name = req.Name
	supplier.Document = req.Document
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&supplier).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier
func DeleteSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var supplier database.Supplier
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&supplier, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := database.DB.Delete(&supplier).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}
