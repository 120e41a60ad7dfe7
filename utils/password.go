package utils

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash compares a plain-text password with its bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateDocumentNumber builds a human-readable document number like
// CT-20260829-42 for contracts and purchase orders
func GenerateDocumentNumber(prefix string, id uint) string {
	timestamp := time.Now().Format("20060102")
	return prefix + "-" + timestamp + "-" + strconv.FormatUint(uint64(id), 10)
}

// PeriodKey returns the idempotency key of a recurring billing period
func PeriodKey(recurrenceType string, t time.Time) string {
	switch recurrenceType {
	case "weekly":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case "yearly":
		return t.Format("2006")
	default: // monthly
		return t.Format("2006-01")
	}
}
