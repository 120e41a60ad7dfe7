package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetrental/database"
)

// CustomerRequest contains the data for customer creation and update
type CustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
}

// CreateCustomer registers a new customer
func CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	customer := database.Customer{
		TenantID: tenantID(c),
		Name:     req.Name,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists the tenant's customers
func GetCustomers(c *gin.Context) {
	var customers []database.Customer
	err := database.DB.Where("tenant_id = ?", tenantID(c)).Order("name ASC").Find(&customers).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomerByID returns one customer
func GetCustomerByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var customer database.Customer
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&customer, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates a customer's attributes
func UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var customer database.Customer
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&customer, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	customer.Name = req.Name
	customer.Document = req.Document
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.City = req.City
	customer.State = req.State
	customer.ZipCode = req.ZipCode

	if err := database.DB.Save(&customer).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer
func DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var customer database.Customer
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&customer, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
