package services

import (
	"time"

	"gorm.io/gorm"

	"fleetrental/database"
)

// ConflictDetail describes one overlapping active contract with enough
// information to render a conflict report.
type ConflictDetail struct {
	ContractID       uint      `json:"contract_id"`
	ContractNumber   string    `json:"contract_number"`
	VehicleID        uint      `json:"vehicle_id"`
	VehiclePlate     string    `json:"vehicle_plate"`
	CustomerName     string    `json:"customer_name"`
	CustomerDocument string    `json:"customer_document"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
}

// ConflictCheckResult is the normal return value of a conflict check. A
// detected conflict is not an error; the caller resolves it, typically by
// presenting the list to the user.
type ConflictCheckResult struct {
	HasConflict bool             `json:"has_conflict"`
	Conflicts   []ConflictDetail `json:"conflicts"`
}

// CheckConflicts returns the active contracts of the tenant that overlap
// [start, end] for any of the given vehicles, excluding excludeContractID.
//
// Two intervals [s1,e1] and [s2,e2] conflict when s1 <= e2 AND e1 >= s2, so a
// contract ending on day X and another starting on day X overlap. Callers are
// expected to warn users about this boundary rule rather than work around it.
func CheckConflicts(db *gorm.DB, tenantID string, vehicleIDs []uint, start, end time.Time, excludeContractID uint) (ConflictCheckResult, error) {
	result := ConflictCheckResult{Conflicts: []ConflictDetail{}}

	ids := normalizeVehicleIDs(vehicleIDs)
	if len(ids) == 0 {
		return result, nil
	}

	if start.IsZero() || end.IsZero() {
		return result, &ValidationError{Field: "date_range", Message: "start and end dates are required"}
	}
	if end.Before(start) {
		return result, &ValidationError{Field: "date_range", Message: "end date must not be before start date"}
	}

	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var contracts []database.Contract
	err := db.
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicles.Vehicle").
		Where("tenant_id = ? AND status = ?", tenantID, database.ContractStatusActive).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Where("id <> ?", excludeContractID).
		Find(&contracts).Error
	if err != nil {
		return result, persistence("check contract conflicts", err)
	}

	for _, contract := range contracts {
		if contract.UsesMultipleVehicles {
			for _, cv := range contract.Vehicles {
				if wanted[cv.VehicleID] {
					result.Conflicts = append(result.Conflicts, newConflictDetail(contract, cv.VehicleID, cv.Vehicle.Plate))
				}
			}
			continue
		}

		if contract.VehicleID != nil && wanted[*contract.VehicleID] {
			plate := ""
			if contract.Vehicle != nil {
				plate = contract.Vehicle.Plate
			}
			result.Conflicts = append(result.Conflicts, newConflictDetail(contract, *contract.VehicleID, plate))
		}
	}

	result.HasConflict = len(result.Conflicts) > 0
	return result, nil
}

func newConflictDetail(contract database.Contract, vehicleID uint, plate string) ConflictDetail {
	return ConflictDetail{
		ContractID:       contract.ID,
		ContractNumber:   contract.Number,
		VehicleID:        vehicleID,
		VehiclePlate:     plate,
		CustomerName:     contract.Customer.Name,
		CustomerDocument: contract.Customer.Document,
		StartDate:        contract.StartDate,
		EndDate:          contract.EndDate,
	}
}

// normalizeVehicleIDs deduplicates and drops zero ids, preserving order
func normalizeVehicleIDs(vehicleIDs []uint) []uint {
	seen := make(map[uint]bool, len(vehicleIDs))
	ids := make([]uint, 0, len(vehicleIDs))
	for _, id := range vehicleIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
