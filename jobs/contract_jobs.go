package jobs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"fleetrental/database"
)

// SendContractExpiryReminders notifies tenant staff about active contracts
// ending within the next three days. One reminder per contract.
func (jr *JobRunner) SendContractExpiryReminders() {
	jr.runWithRecovery("SendContractExpiryReminders", func() {
		count, err := SendContractExpiryReminders(jr.db, time.Now())
		if err != nil {
			log.Printf("Failed to send contract expiry reminders: %v", err)
			return
		}
		log.Printf("Sent %d contract expiry reminders", count)
	})
}

// SendContractExpiryReminders runs a reminder pass for the given reference
// time and returns how many notifications were created
func SendContractExpiryReminders(db *gorm.DB, now time.Time) (int, error) {
	horizon := now.Add(72 * time.Hour)

	var contracts []database.Contract
	err := db.
		Where("status = ? AND end_date >= ? AND end_date <= ?", database.ContractStatusActive, now, horizon).
		Find(&contracts).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range contracts {
		contract := &contracts[i]

		var existing int64
		err := db.Model(&database.Notification{}).
			Where("related_id = ? AND related_type = ?", contract.ID, "contract_expiry").
			Count(&existing).Error
		if err != nil {
			return created, err
		}
		if existing > 0 {
			continue
		}

		var staff []database.User
		err = db.Where("tenant_id = ? AND role IN ?", contract.TenantID,
			[]string{database.RoleAdmin, database.RoleManager}).
			Find(&staff).Error
		if err != nil {
			return created, err
		}

		for _, user := range staff {
			contractID := contract.ID
			notification := database.Notification{
				TenantID:    contract.TenantID,
				UserID:      user.ID,
				Title:       "Contract ending soon",
				Message:     fmt.Sprintf("Contract %s ends on %s.", contract.Number, contract.EndDate.Format("2006-01-02")),
				Type:        "contract",
				RelatedID:   &contractID,
				RelatedType: "contract_expiry",
			}
			if err := db.Create(&notification).Error; err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}
