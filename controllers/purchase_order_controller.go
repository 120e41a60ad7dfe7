package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleetrental/database"
	"fleetrental/utils"
)

// PurchaseOrderItemRequest is one line of a purchase order
type PurchaseOrderItemRequest struct {
	PartID    uint    `json:"part_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unit_price"`
}

// PurchaseOrderRequest contains the data for purchase order creation
type PurchaseOrderRequest struct {
	SupplierID uint                       `json:"supplier_id" binding:"required"`
	Notes      string                     `json:"notes"`
	Items      []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseOrder creates a draft purchase order with its items
func CreatePurchaseOrder(c *gin.Context) {
	var req PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	tenant := tenantID(c)

	var supplier database.Supplier
	if err := database.DB.Where("tenant_id = ?", tenant).First(&supplier, req.SupplierID).Error; err != nil {
		handleServiceError(c, err)
		return
	}
	if !supplier.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier is not active"})
		return
	}

	order := database.PurchaseOrder{
		TenantID:   tenant,
		SupplierID: req.SupplierID,
		Status:     database.PurchaseOrderStatusDraft,
		Notes:      req.Notes,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, database.PurchaseOrderItem{
			PartID:    item.PartID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating purchase order"})
		return
	}

	order.Number = utils.GenerateDocumentNumber("PO", order.ID)
	if err := tx.Model(&order).Update("number", order.Number).Error; err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error assigning order number"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetPurchaseOrders lists purchase orders, optionally filtered by status
func GetPurchaseOrders(c *gin.Context) {
	query := database.DB.
		Preload("Supplier").
		Preload("Items.Part").
		Where("tenant_id = ?", tenantID(c))

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []database.PurchaseOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetPurchaseOrderByID returns a single purchase order with its items
func GetPurchaseOrderByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var order database.PurchaseOrder
	err := database.DB.
		Preload("Supplier").
		Preload("Items.Part").
		Where("tenant_id = ?", tenantID(c)).
		First(&order, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdatePurchaseOrderStatusRequest contains the requested status transition
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft ordered received cancelled"`
}

// UpdatePurchaseOrderStatus transitions a purchase order. Moving into
// received increments part stock; the previous-status guard makes the
// increment happen exactly once.
func UpdatePurchaseOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdatePurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var order database.PurchaseOrder
	err := database.DB.Preload("Items").Where("tenant_id = ?", tenantID(c)).First(&order, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if order.Status == database.PurchaseOrderStatusReceived || order.Status == database.PurchaseOrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Purchase order is " + order.Status + " and cannot change status"})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	previousStatus := order.Status
	if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating purchase order"})
		return
	}

	if req.Status == database.PurchaseOrderStatusReceived && previousStatus != database.PurchaseOrderStatusReceived {
		for _, item := range order.Items {
			err := tx.Model(&database.Part{}).
				Where("id = ?", item.PartID).
				Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
			if err != nil {
				tx.Rollback()
				log.Printf("Database error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating stock"})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order updated"})
}
