package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "")
	t.Setenv("PLATFORM_PERCENTAGE", "")
	t.Setenv("QR_NAMESPACE", "")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.JWT.JWTExpiresIn)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiresIn)
	assert.True(t, cfg.Pricing.PlatformPercentage.Equal(decimal.NewFromFloat(15.0)))
	assert.Equal(t, "casaroja", cfg.Pricing.QRNamespace)
	assert.Equal(t, "CLP", cfg.Pricing.Currency)
}

func TestLoadJWTExpiriesFromEnvSeconds(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "900")
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "3600")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.JWT.JWTExpiresIn)
	assert.Equal(t, time.Hour, cfg.JWT.RefreshExpiresIn)
}
