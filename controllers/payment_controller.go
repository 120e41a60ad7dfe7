package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/razorpay/razorpay-go"

	"fleetrental/config"
	"fleetrental/database"
)

// CostPaymentRequest contains data for creating a payment order for a cost
type CostPaymentRequest struct {
	CostID uint `json:"cost_id" binding:"required"`
}

// PaymentVerificationRequest contains data for verifying a completed payment
type PaymentVerificationRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	OrderID   string `json:"order_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	CostID    uint   `json:"cost_id" binding:"required"`
}

// GenerateCostPayment creates a Razorpay order for an authorized cost
func GenerateCostPayment(c *gin.Context) {
	var req CostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	tenant := tenantID(c)

	var cost database.Cost
	if err := database.DB.Where("tenant_id = ?", tenant).First(&cost, req.CostID).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	if cost.Status != database.CostStatusAuthorized {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment can only be generated for authorized costs"})
		return
	}

	// Initialize Razorpay client
	client := razorpay.NewClient(config.AppConfig.RazorpayKey, config.AppConfig.RazorpaySecret)

	// Amount in the smallest currency unit
	amountInCents := int64(cost.Amount * 100)

	data := map[string]interface{}{
		"amount":   amountInCents,
		"currency": "BRL",
		"receipt":  fmt.Sprintf("cost_%d", cost.ID),
		"notes": map[string]interface{}{
			"tenant_id": tenant,
			"cost_id":   cost.ID,
			"category":  cost.Category,
		},
	}

	providerOrder, err := client.Order.Create(data, nil)
	if err != nil {
		log.Printf("Razorpay order creation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating payment order"})
		return
	}

	orderID, _ := providerOrder["id"].(string)
	payment := database.Payment{
		TenantID:      tenant,
		CostID:        cost.ID,
		Amount:        cost.Amount,
		Status:        database.PaymentStatusPending,
		ProviderOrder: orderID,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider_order_id": orderID,
		"amount":            cost.Amount,
		"currency":          "BRL",
		"key":               config.AppConfig.RazorpayKey,
		"cost_id":           cost.ID,
	})
}

// VerifyCostPayment verifies a completed Razorpay payment and marks the cost
// paid
func VerifyCostPayment(c *gin.Context) {
	var req PaymentVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	// Verify the signature: HMAC-SHA256 of "order_id|payment_id"
	payload := req.OrderID + "|" + req.PaymentID
	mac := hmac.New(sha256.New, []byte(config.AppConfig.RazorpaySecret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
		return
	}

	tenant := tenantID(c)

	var payment database.Payment
	err := database.DB.
		Where("tenant_id = ? AND cost_id = ? AND provider_order = ?", tenant, req.CostID, req.OrderID).
		First(&payment).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	updates := map[string]interface{}{
		"status":          database.PaymentStatusPaid,
		"transaction_id":  req.PaymentID,
		"payment_details": fmt.Sprintf(`{"razorpay_order_id": %q, "razorpay_payment_id": %q}`, req.OrderID, req.PaymentID),
	}
	if err := tx.Model(&payment).Updates(updates).Error; err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating payment"})
		return
	}

	err = tx.Model(&database.Cost{}).
		Where("tenant_id = ? AND id = ?", tenant, req.CostID).
		Update("status", database.CostStatusPaid).Error
	if err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cost"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully"})
}

// GetPayments lists the tenant's payment records
func GetPayments(c *gin.Context) {
	var payments []database.Payment
	err := database.DB.
		Preload("Cost").
		Where("tenant_id = ?", tenantID(c)).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
