package jobs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"fleetrental/database"
	"fleetrental/utils"
)

// GenerateRecurringCosts materializes one pending cost per billing period for
// every active contract with recurrence settings. A PeriodKey on the cost row
// keeps the job idempotent: re-running it within the same period inserts
// nothing.
func (jr *JobRunner) GenerateRecurringCosts() {
	jr.runWithRecovery("GenerateRecurringCosts", func() {
		count, err := GenerateRecurringCosts(jr.db, time.Now())
		if err != nil {
			log.Printf("Failed to generate recurring costs: %v", err)
			return
		}
		log.Printf("Generated %d recurring costs", count)
	})
}

// GenerateRecurringCosts runs a generation pass for the given reference time
// and returns how many costs were inserted
func GenerateRecurringCosts(db *gorm.DB, now time.Time) (int, error) {
	var contracts []database.Contract
	err := db.
		Where("status = ? AND recurrence_type IS NOT NULL", database.ContractStatusActive).
		Find(&contracts).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range contracts {
		contract := &contracts[i]
		if contract.RecurrenceDay == nil || !recurrenceDue(contract, now) {
			continue
		}

		periodKey := utils.PeriodKey(*contract.RecurrenceType, now)

		var existing int64
		err := db.Model(&database.Cost{}).
			Where("contract_id = ? AND category = ? AND period_key = ?",
				contract.ID, database.CostCategoryRecurring, periodKey).
			Count(&existing).Error
		if err != nil {
			return created, err
		}
		if existing > 0 {
			continue
		}

		contractID := contract.ID
		customerID := contract.CustomerID
		dueDate := now
		cost := database.Cost{
			TenantID:    contract.TenantID,
			Description: fmt.Sprintf("Recurring charge for contract %s (%s)", contract.Number, periodKey),
			Amount:      periodAmount(contract),
			Category:    database.CostCategoryRecurring,
			Status:      database.CostStatusPending,
			Origin:      database.CostOriginAutomatic,
			ContractID:  &contractID,
			VehicleID:   contract.VehicleID,
			CustomerID:  &customerID,
			DueDate:     &dueDate,
			PeriodKey:   periodKey,
		}
		if err := db.Create(&cost).Error; err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// recurrenceDue reports whether the contract's billing day has been reached
// within the current period
func recurrenceDue(contract *database.Contract, now time.Time) bool {
	day := *contract.RecurrenceDay
	switch *contract.RecurrenceType {
	case database.RecurrenceWeekly:
		return int(now.Weekday()) >= day
	case database.RecurrenceYearly:
		return now.YearDay() >= day
	default: // monthly
		return now.Day() >= day
	}
}

// periodAmount is the rental charge for one billing period, derived from the
// contract's daily rate
func periodAmount(contract *database.Contract) float64 {
	rate := contract.DailyRate
	switch *contract.RecurrenceType {
	case database.RecurrenceWeekly:
		return rate * 7
	case database.RecurrenceYearly:
		return rate * 365
	default: // monthly
		return rate * 30
	}
}
