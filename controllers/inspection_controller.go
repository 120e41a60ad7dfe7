package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetrental/cache"
	"fleetrental/database"
)

// DamageItemRequest is one damage found during an inspection
type DamageItemRequest struct {
	Location       string `json:"location" binding:"required"`
	DamageType     string `json:"damage_type" binding:"required"`
	Severity       string `json:"severity" binding:"required,oneof=low medium high"`
	RequiresRepair bool   `json:"requires_repair"`
	PhotoURL       string `json:"photo_url"`
}

// InspectionRequest contains the data for inspection creation
type InspectionRequest struct {
	VehicleID   uint                `json:"vehicle_id" binding:"required"`
	ContractID  *uint               `json:"contract_id"`
	Type        string              `json:"type" binding:"required,oneof=check_in check_out"`
	Mileage     int                 `json:"mileage" binding:"required"`
	FuelLevel   float64             `json:"fuel_level" binding:"min=0,max=1"`
	Notes       string              `json:"notes"`
	PhotoURL    string              `json:"photo_url"`
	InspectedAt *time.Time          `json:"inspected_at"`
	Damages     []DamageItemRequest `json:"damages"`
}

// CreateInspection records a vehicle inspection with its damage items in one
// transaction and updates the vehicle's mileage
func CreateInspection(c *gin.Context) {
	var req InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	tenant := tenantID(c)

	var vehicle database.Vehicle
	if err := database.DB.Where("tenant_id = ?", tenant).First(&vehicle, req.VehicleID).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	inspectedAt := time.Now()
	if req.InspectedAt != nil {
		inspectedAt = *req.InspectedAt
	}

	inspectorID := currentUserID(c)
	inspection := database.Inspection{
		TenantID:    tenant,
		VehicleID:   req.VehicleID,
		ContractID:  req.ContractID,
		InspectorID: &inspectorID,
		Type:        req.Type,
		Mileage:     req.Mileage,
		FuelLevel:   req.FuelLevel,
		Notes:       req.Notes,
		PhotoURL:    req.PhotoURL,
		InspectedAt: inspectedAt,
	}
	for _, d := range req.Damages {
		inspection.Damages = append(inspection.Damages, database.DamageItem{
			Location:       d.Location,
			DamageType:     d.DamageType,
			Severity:       d.Severity,
			RequiresRepair: d.RequiresRepair,
			PhotoURL:       d.PhotoURL,
		})
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := tx.Create(&inspection).Error; err != nil {
		tx.Rollback()
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating inspection"})
		return
	}

	if req.Mileage > vehicle.Mileage {
		if err := tx.Model(&vehicle).Update("mileage", req.Mileage).Error; err != nil {
			tx.Rollback()
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating vehicle mileage"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	// Statistics are memoized; drop the stale entry
	cache.Delete(statisticsCacheKey(tenant))

	c.JSON(http.StatusCreated, inspection)
}

// GetInspections lists inspections, optionally filtered by vehicle or
// contract
func GetInspections(c *gin.Context) {
	query := database.DB.
		Preload("Damages").
		Preload("Vehicle").
		Where("tenant_id = ?", tenantID(c))

	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if contractID := c.Query("contract_id"); contractID != "" {
		query = query.Where("contract_id = ?", contractID)
	}

	var inspections []database.Inspection
	if err := query.Order("inspected_at DESC").Find(&inspections).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, inspections)
}

// GetInspectionByID returns one inspection with its damages
func GetInspectionByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var inspection database.Inspection
	err := database.DB.
		Preload("Damages").
		Preload("Vehicle").
		Where("tenant_id = ?", tenantID(c)).
		First(&inspection, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, inspection)
}

// InspectionStatistics is the typed result of the statistics query
type InspectionStatistics struct {
	TotalInspections int     `json:"total_inspections"`
	CheckIns         int     `json:"check_ins"`
	CheckOuts        int     `json:"check_outs"`
	AverageFuelLevel float64 `json:"average_fuel_level"`
	TotalDamages     int     `json:"total_damages"`
	PendingRepairs   int     `json:"pending_repairs"`
}

// GetInspectionStatistics aggregates inspection counts, average fuel level
// and damage totals for the tenant. Results are cached for the configured
// TTL; creating an inspection invalidates the entry.
func GetInspectionStatistics(c *gin.Context) {
	tenant := tenantID(c)
	key := statisticsCacheKey(tenant)

	if cached, found := cache.Get(key); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	var stats InspectionStatistics

	row := database.LegacyDB.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN type = 'check_in' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN type = 'check_out' THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(fuel_level), 0)
		FROM inspections
		WHERE tenant_id = $1 AND deleted_at IS NULL`, tenant)
	if err := row.Scan(&stats.TotalInspections, &stats.CheckIns, &stats.CheckOuts, &stats.AverageFuelLevel); err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	row = database.LegacyDB.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN damage_items.requires_repair THEN 1 ELSE 0 END), 0)
		FROM damage_items
		JOIN inspections ON inspections.id = damage_items.inspection_id
		WHERE inspections.tenant_id = $1
		  AND inspections.deleted_at IS NULL
		  AND damage_items.deleted_at IS NULL`, tenant)
	if err := row.Scan(&stats.TotalDamages, &stats.PendingRepairs); err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	cache.Set(key, stats)
	c.JSON(http.StatusOK, stats)
}

func statisticsCacheKey(tenant string) string {
	return fmt.Sprintf("inspection_statistics:%s", tenant)
}
