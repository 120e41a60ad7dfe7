package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fleetrental/database"
	"fleetrental/utils"
)

// Fuel charges assume a fixed tank size regardless of the vehicle's recorded
// TankCapacity field. See the inspection data model notes before changing.
const assumedTankCapacityLiters = 50.0

// ContractVehicleInput is one vehicle line of a multi-vehicle contract
type ContractVehicleInput struct {
	VehicleID uint    `json:"vehicle_id" binding:"required"`
	DailyRate float64 `json:"daily_rate"`
}

// ContractInput contains the data for contract creation
type ContractInput struct {
	Number               string                 `json:"number"`
	CustomerID           uint                   `json:"customer_id" binding:"required"`
	VehicleID            *uint                  `json:"vehicle_id"`
	DailyRate            float64                `json:"daily_rate"`
	StartDate            time.Time              `json:"start_date" binding:"required"`
	EndDate              time.Time              `json:"end_date" binding:"required"`
	KmLimit              int                    `json:"km_limit"`
	PricePerExcessKm     float64                `json:"price_per_excess_km"`
	PricePerLiter        float64                `json:"price_per_liter"`
	UsesMultipleVehicles bool                   `json:"uses_multiple_vehicles"`
	RecurrenceType       *string                `json:"recurrence_type"`
	RecurrenceDay        *int                   `json:"recurrence_day"`
	AutoRenew            *bool                  `json:"auto_renew"`
	Notes                string                 `json:"notes"`
	Vehicles             []ContractVehicleInput `json:"vehicles"`
}

// ContractUpdate contains the mutable fields of a contract; nil means "leave
// unchanged"
type ContractUpdate struct {
	Status           *string    `json:"status"`
	VehicleID        *uint      `json:"vehicle_id"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	DailyRate        *float64   `json:"daily_rate"`
	KmLimit          *int       `json:"km_limit"`
	PricePerExcessKm *float64   `json:"price_per_excess_km"`
	PricePerLiter    *float64   `json:"price_per_liter"`
	AutoRenew        *bool      `json:"auto_renew"`
	Notes            *string    `json:"notes"`
}

// CreateContract creates an active contract for the tenant and puts its
// vehicle(s) in use. Conflict checking is a separate, advisory step
// (CheckConflicts); creation does not enforce it.
func CreateContract(db *gorm.DB, tenantID string, input ContractInput) (*database.Contract, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, &ValidationError{Field: "end_date", Message: "end date must not be before start date"}
	}
	if input.UsesMultipleVehicles && len(input.Vehicles) == 0 {
		return nil, &ValidationError{Field: "vehicles", Message: "a multi-vehicle contract needs at least one vehicle"}
	}
	if err := validateRecurrence(input.RecurrenceType, input.RecurrenceDay); err != nil {
		return nil, err
	}

	contract := database.Contract{
		TenantID:             tenantID,
		Number:               input.Number,
		CustomerID:           input.CustomerID,
		DailyRate:            input.DailyRate,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		Status:               database.ContractStatusActive,
		KmLimit:              input.KmLimit,
		PricePerExcessKm:     input.PricePerExcessKm,
		PricePerLiter:        input.PricePerLiter,
		UsesMultipleVehicles: input.UsesMultipleVehicles,
		RecurrenceType:       input.RecurrenceType,
		RecurrenceDay:        input.RecurrenceDay,
		AutoRenew:            input.AutoRenew,
		Notes:                input.Notes,
	}
	if !input.UsesMultipleVehicles {
		contract.VehicleID = input.VehicleID
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, persistence("begin transaction", tx.Error)
	}

	if err := tx.Create(&contract).Error; err != nil {
		tx.Rollback()
		return nil, persistence("create contract", err)
	}

	if contract.Number == "" {
		contract.Number = utils.GenerateDocumentNumber("CT", contract.ID)
		if err := tx.Model(&contract).Update("number", contract.Number).Error; err != nil {
			tx.Rollback()
			return nil, persistence("assign contract number", err)
		}
	}

	if input.UsesMultipleVehicles {
		for _, v := range input.Vehicles {
			cv := database.ContractVehicle{
				TenantID:   tenantID,
				ContractID: contract.ID,
				VehicleID:  v.VehicleID,
				DailyRate:  v.DailyRate,
			}
			if err := tx.Create(&cv).Error; err != nil {
				tx.Rollback()
				return nil, persistence("create contract vehicle", err)
			}
		}
	}

	vehicleIDs, err := contractVehicleIDs(tx, &contract)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := setVehiclesStatus(tx, tenantID, vehicleIDs, database.VehicleStatusInUse); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, persistence("commit contract creation", err)
	}

	return loadContract(db, tenantID, contract.ID)
}

// UpdateContract applies a partial update to a contract, keeping vehicle
// statuses in sync and deriving finalization costs when the contract moves
// into the finalized state. The whole sequence runs in one transaction.
func UpdateContract(db *gorm.DB, tenantID string, contractID uint, upd ContractUpdate) (*database.Contract, error) {
	contract, err := loadContract(db, tenantID, contractID)
	if err != nil {
		return nil, err
	}

	prevStatus := contract.Status
	newStatus := prevStatus
	if upd.Status != nil {
		newStatus = *upd.Status
		if !validContractStatus(newStatus) {
			return nil, &ValidationError{Field: "status", Message: "unknown contract status: " + newStatus}
		}
	}

	// Finalized and cancelled are terminal
	if prevStatus != database.ContractStatusActive && newStatus != prevStatus {
		return nil, &ValidationError{Field: "status", Message: "contract is " + prevStatus + " and cannot change status"}
	}

	if upd.StartDate != nil {
		contract.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		contract.EndDate = *upd.EndDate
	}
	if contract.EndDate.Before(contract.StartDate) {
		return nil, &ValidationError{Field: "end_date", Message: "end date must not be before start date"}
	}

	// A vehicle change only makes sense on a contract that stays active;
	// finalization and cancellation settle against the vehicle actually used.
	if upd.VehicleID != nil && !contract.UsesMultipleVehicles &&
		newStatus != database.ContractStatusActive &&
		(contract.VehicleID == nil || *contract.VehicleID != *upd.VehicleID) {
		return nil, &ValidationError{Field: "vehicle_id", Message: "cannot change vehicle while finalizing or cancelling a contract"}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, persistence("begin transaction", tx.Error)
	}

	// Vehicle swap on a single-vehicle contract that stays active releases
	// the previous vehicle and occupies the new one.
	vehicleChanged := false
	if upd.VehicleID != nil && !contract.UsesMultipleVehicles {
		oldID := contract.VehicleID
		if oldID == nil || *oldID != *upd.VehicleID {
			vehicleChanged = true
			if oldID != nil {
				if err := setVehiclesStatus(tx, tenantID, []uint{*oldID}, database.VehicleStatusAvailable); err != nil {
					tx.Rollback()
					return nil, err
				}
			}
			if err := setVehiclesStatus(tx, tenantID, []uint{*upd.VehicleID}, database.VehicleStatusInUse); err != nil {
				tx.Rollback()
				return nil, err
			}
			contract.VehicleID = upd.VehicleID
		}
	}

	if upd.DailyRate != nil {
		contract.DailyRate = *upd.DailyRate
	}
	if upd.KmLimit != nil {
		contract.KmLimit = *upd.KmLimit
	}
	if upd.PricePerExcessKm != nil {
		contract.PricePerExcessKm = *upd.PricePerExcessKm
	}
	if upd.PricePerLiter != nil {
		contract.PricePerLiter = *upd.PricePerLiter
	}
	if upd.AutoRenew != nil {
		contract.AutoRenew = upd.AutoRenew
	}
	if upd.Notes != nil {
		contract.Notes = *upd.Notes
	}
	contract.Status = newStatus

	if err := tx.Save(contract).Error; err != nil {
		tx.Rollback()
		return nil, persistence("update contract", err)
	}

	// Status-only changes sync every associated vehicle; a swap already
	// handled its own pair above.
	if upd.Status != nil && !vehicleChanged {
		vehicleIDs, err := contractVehicleIDs(tx, contract)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		target := database.VehicleStatusAvailable
		if newStatus == database.ContractStatusActive {
			target = database.VehicleStatusInUse
		}
		if err := setVehiclesStatus(tx, tenantID, vehicleIDs, target); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Derived costs are created exactly once, on the transition into
	// finalized.
	if newStatus == database.ContractStatusFinalized && prevStatus != database.ContractStatusFinalized {
		if err := deriveFinalizationCosts(tx, contract); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := notifyTenantStaff(tx, tenantID, "Contract finalized",
			fmt.Sprintf("Contract %s has been finalized.", contract.Number), "contract", contract.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, persistence("commit contract update", err)
	}

	return loadContract(db, tenantID, contract.ID)
}

// FinalizeContract moves an active contract to finalized
func FinalizeContract(db *gorm.DB, tenantID string, contractID uint) (*database.Contract, error) {
	status := database.ContractStatusFinalized
	return UpdateContract(db, tenantID, contractID, ContractUpdate{Status: &status})
}

// CancelContract moves an active contract to cancelled
func CancelContract(db *gorm.DB, tenantID string, contractID uint) (*database.Contract, error) {
	status := database.ContractStatusCancelled
	return UpdateContract(db, tenantID, contractID, ContractUpdate{Status: &status})
}

// DeleteContract removes a contract. Its vehicles always return to available,
// whatever the contract status was.
func DeleteContract(db *gorm.DB, tenantID string, contractID uint) error {
	contract, err := loadContract(db, tenantID, contractID)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return persistence("begin transaction", tx.Error)
	}

	vehicleIDs, err := contractVehicleIDs(tx, contract)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := setVehiclesStatus(tx, tenantID, vehicleIDs, database.VehicleStatusAvailable); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("contract_id = ?", contract.ID).Delete(&database.ContractVehicle{}).Error; err != nil {
		tx.Rollback()
		return persistence("delete contract vehicles", err)
	}
	if err := tx.Delete(contract).Error; err != nil {
		tx.Rollback()
		return persistence("delete contract", err)
	}

	if err := tx.Commit().Error; err != nil {
		return persistence("commit contract deletion", err)
	}
	return nil
}

// deriveFinalizationCosts inserts pending excess-km and missing-fuel costs
// for every vehicle on the contract, based on each vehicle's most recent
// inspection. Vehicles without an inspection produce no costs.
func deriveFinalizationCosts(tx *gorm.DB, contract *database.Contract) error {
	vehicleIDs, err := contractVehicleIDs(tx, contract)
	if err != nil {
		return err
	}

	for _, vehicleID := range vehicleIDs {
		var vehicle database.Vehicle
		if err := tx.Where("tenant_id = ?", contract.TenantID).First(&vehicle, vehicleID).Error; err != nil {
			return persistence("load vehicle for cost derivation", err)
		}

		var inspection database.Inspection
		err := tx.Where("tenant_id = ? AND vehicle_id = ?", contract.TenantID, vehicleID).
			Order("inspected_at DESC, id DESC").
			First(&inspection).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return persistence("load latest inspection", err)
		}

		traveled := inspection.Mileage - vehicle.InitialMileage
		if contract.KmLimit > 0 && traveled > contract.KmLimit {
			excess := traveled - contract.KmLimit
			cost := newDerivedCost(contract, vehicleID,
				database.CostCategoryExcessKm,
				fmt.Sprintf("Excess mileage on %s: %d km over the %d km limit", vehicle.Plate, excess, contract.KmLimit),
				float64(excess)*contract.PricePerExcessKm)
			if err := tx.Create(&cost).Error; err != nil {
				return persistence("create excess km cost", err)
			}
		}

		if inspection.FuelLevel < 1.0 && contract.PricePerLiter > 0 {
			missingLiters := (1.0 - inspection.FuelLevel) * assumedTankCapacityLiters
			cost := newDerivedCost(contract, vehicleID,
				database.CostCategoryFuel,
				fmt.Sprintf("Missing fuel on %s: %.1f liters", vehicle.Plate, missingLiters),
				missingLiters*contract.PricePerLiter)
			if err := tx.Create(&cost).Error; err != nil {
				return persistence("create fuel cost", err)
			}
		}
	}

	return nil
}

func newDerivedCost(contract *database.Contract, vehicleID uint, category, description string, amount float64) database.Cost {
	contractID := contract.ID
	customerID := contract.CustomerID
	vID := vehicleID
	return database.Cost{
		TenantID:    contract.TenantID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Status:      database.CostStatusPending,
		Origin:      database.CostOriginAutomatic,
		ContractID:  &contractID,
		VehicleID:   &vID,
		CustomerID:  &customerID,
	}
}

// contractVehicleIDs returns every vehicle associated with the contract: the
// ContractVehicle rows for multi-vehicle contracts, otherwise the single
// vehicle reference.
func contractVehicleIDs(tx *gorm.DB, contract *database.Contract) ([]uint, error) {
	if contract.UsesMultipleVehicles {
		var ids []uint
		err := tx.Model(&database.ContractVehicle{}).
			Where("contract_id = ?", contract.ID).
			Pluck("vehicle_id", &ids).Error
		if err != nil {
			return nil, persistence("list contract vehicles", err)
		}
		return ids, nil
	}
	if contract.VehicleID != nil {
		return []uint{*contract.VehicleID}, nil
	}
	return nil, nil
}

func setVehiclesStatus(tx *gorm.DB, tenantID string, vehicleIDs []uint, status string) error {
	if len(vehicleIDs) == 0 {
		return nil
	}
	err := tx.Model(&database.Vehicle{}).
		Where("tenant_id = ? AND id IN ?", tenantID, vehicleIDs).
		Update("status", status).Error
	if err != nil {
		return persistence("update vehicle status", err)
	}
	return nil
}

// notifyTenantStaff writes a notification row for every admin and manager of
// the tenant, inside the caller's transaction
func notifyTenantStaff(tx *gorm.DB, tenantID, title, message, relatedType string, relatedID uint) error {
	var staff []database.User
	err := tx.Where("tenant_id = ? AND role IN ?", tenantID, []string{database.RoleAdmin, database.RoleManager}).
		Find(&staff).Error
	if err != nil {
		return persistence("list tenant staff", err)
	}

	for _, user := range staff {
		id := relatedID
		notification := database.Notification{
			TenantID:    tenantID,
			UserID:      user.ID,
			Title:       title,
			Message:     message,
			Type:        relatedType,
			RelatedID:   &id,
			RelatedType: relatedType,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return persistence("create notification", err)
		}
	}
	return nil
}

func loadContract(db *gorm.DB, tenantID string, contractID uint) (*database.Contract, error) {
	var contract database.Contract
	err := db.
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicles.Vehicle").
		Where("tenant_id = ?", tenantID).
		First(&contract, contractID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, persistence("load contract", err)
	}
	return &contract, nil
}

func validContractStatus(status string) bool {
	switch status {
	case database.ContractStatusActive, database.ContractStatusFinalized, database.ContractStatusCancelled:
		return true
	}
	return false
}

func validateRecurrence(recurrenceType *string, recurrenceDay *int) error {
	if recurrenceType == nil {
		if recurrenceDay != nil {
			return &ValidationError{Field: "recurrence_day", Message: "recurrence day requires a recurrence type"}
		}
		return nil
	}
	switch *recurrenceType {
	case database.RecurrenceMonthly, database.RecurrenceWeekly, database.RecurrenceYearly:
	default:
		return &ValidationError{Field: "recurrence_type", Message: "unknown recurrence type: " + *recurrenceType}
	}
	if recurrenceDay == nil {
		return &ValidationError{Field: "recurrence_day", Message: "recurrence day is required with a recurrence type"}
	}
	return nil
}
