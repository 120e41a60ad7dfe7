package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrental/config"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestGenerateDocumentNumber(t *testing.T) {
	number := GenerateDocumentNumber("CT", 42)
	assert.Regexp(t, `^CT-\d{8}-42$`, number)

	number = GenerateDocumentNumber("PO", 7)
	assert.Regexp(t, `^PO-\d{8}-7$`, number)
}

func TestPeriodKey(t *testing.T) {
	ref := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-08", PeriodKey("monthly", ref))
	assert.Equal(t, "2026", PeriodKey("yearly", ref))
	assert.Equal(t, "2026-W35", PeriodKey("weekly", ref))

	// Unknown types fall back to monthly keys
	assert.Equal(t, "2026-08", PeriodKey("", ref))
}

func TestJWTRoundTrip(t *testing.T) {
	config.InitConfig()

	token, err := GenerateJWT(7, "tenant-abc", "manager@example.com", "manager", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "tenant-abc", claims.TenantID)
	assert.Equal(t, "manager@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
}

func TestJWTExpired(t *testing.T) {
	config.InitConfig()

	token, err := GenerateJWT(7, "tenant-abc", "manager@example.com", "manager", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTTampered(t *testing.T) {
	config.InitConfig()

	token, err := GenerateJWT(7, "tenant-abc", "manager@example.com", "manager", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)
}
