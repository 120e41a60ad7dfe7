package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetrental/database"
	"fleetrental/services"
)

// VehicleRequest contains the data for vehicle creation and update
type VehicleRequest struct {
	Plate          string  `json:"plate" binding:"required"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model" binding:"required"`
	Year           int     `json:"year"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	Mileage        int     `json:"mileage"`
	InitialMileage int     `json:"initial_mileage"`
	TankCapacity   float64 `json:"tank_capacity"`
	DailyRate      float64 `json:"daily_rate"`
}

// CreateVehicle registers a new vehicle in the fleet
func CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	status := req.Status
	if status == "" {
		status = database.VehicleStatusAvailable
	}

	vehicle := database.Vehicle{
		TenantID:       tenantID(c),
		Plate:          req.Plate,
		Brand:          req.Brand,
		VehicleModel:   req.Model,
		Year:           req.Year,
		Type:           req.Type,
		Status:         status,
		Mileage:        req.Mileage,
		InitialMileage: req.InitialMileage,
		TankCapacity:   req.TankCapacity,
		DailyRate:      req.DailyRate,
	}

	if err := database.DB.Create(&vehicle).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles lists the tenant's vehicles, optionally filtered by status
func GetVehicles(c *gin.Context) {
	query := database.DB.Where("tenant_id = ?", tenantID(c))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var vehicles []database.Vehicle
	if err := query.Order("plate ASC").Find(&vehicles).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicleByID returns one vehicle
func GetVehicleByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var vehicle database.Vehicle
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&vehicle, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle updates a vehicle's attributes
func UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	var vehicle database.Vehicle
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&vehicle, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	vehicle.Plate = req.Plate
	vehicle.Brand = req.Brand
	vehicle.VehicleModel = req.Model
	vehicle.Year = req.Year
	vehicle.Type = req.Type
	vehicle.Mileage = req.Mileage
	vehicle.InitialMileage = req.InitialMileage
	vehicle.TankCapacity = req.TankCapacity
	vehicle.DailyRate = req.DailyRate
	if req.Status != "" {
		vehicle.Status = req.Status
	}

	if err := database.DB.Save(&vehicle).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle from the fleet
func DeleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var vehicle database.Vehicle
	err := database.DB.Where("tenant_id = ?", tenantID(c)).First(&vehicle, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := database.DB.Delete(&vehicle).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// GetAvailableVehicles lists vehicles with no active contract overlapping the
// requested date range. An optional exclude_contract_id keeps a contract
// being edited from conflicting with itself.
func GetAvailableVehicles(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing start date"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing end date"})
		return
	}

	var excludeContractID uint
	if raw := c.Query("exclude_contract_id"); raw != "" {
		var parsed uint64
		if parsed, err = parseUintParam(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exclude_contract_id"})
			return
		}
		excludeContractID = uint(parsed)
	}

	vehicles, err := services.ListAvailableVehicles(database.DB, tenantID(c), start, end, excludeContractID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}
