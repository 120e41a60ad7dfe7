package services

import (
	"time"

	"gorm.io/gorm"

	"fleetrental/database"
)

// ListAvailableVehicles returns every vehicle of the tenant with no active
// contract overlapping [start, end]. excludeContractID is ignored during the
// scan so a contract being edited does not conflict with itself; pass zero
// when not editing. Read-only.
func ListAvailableVehicles(db *gorm.DB, tenantID string, start, end time.Time, excludeContractID uint) ([]database.Vehicle, error) {
	if start.IsZero() || end.IsZero() {
		return nil, &ValidationError{Field: "date_range", Message: "start and end dates are required"}
	}
	if !start.Before(end) {
		return nil, &ValidationError{Field: "date_range", Message: "start date must be before end date"}
	}

	// Vehicles held by overlapping single-vehicle contracts
	busySingle := db.Model(&database.Contract{}).
		Select("vehicle_id").
		Where("tenant_id = ? AND status = ? AND uses_multiple_vehicles = ? AND vehicle_id IS NOT NULL", tenantID, database.ContractStatusActive, false).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Where("id <> ?", excludeContractID)

	// Vehicles held by overlapping multi-vehicle contracts
	busyMulti := db.Model(&database.ContractVehicle{}).
		Select("contract_vehicles.vehicle_id").
		Joins("JOIN contracts ON contracts.id = contract_vehicles.contract_id AND contracts.deleted_at IS NULL").
		Where("contracts.tenant_id = ? AND contracts.status = ?", tenantID, database.ContractStatusActive).
		Where("contracts.start_date <= ? AND contracts.end_date >= ?", end, start).
		Where("contracts.id <> ?", excludeContractID)

	var vehicles []database.Vehicle
	err := db.
		Where("tenant_id = ? AND status <> ?", tenantID, database.VehicleStatusInactive).
		Where("id NOT IN (?)", busySingle).
		Where("id NOT IN (?)", busyMulti).
		Order("plate ASC").
		Find(&vehicles).Error
	if err != nil {
		return nil, persistence("list available vehicles", err)
	}

	return vehicles, nil
}
