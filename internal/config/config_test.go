package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL": "postgres://localhost/shipledger",
		"REDIS_URL":    "redis://localhost:6379/0",
		"JWT_SECRET":   "secret",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(baseEnv())
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "LGS", cfg.Invoice.Prefix)
	require.Equal(t, 15, cfg.Invoice.PaymentTermsDays)
	require.Equal(t, "83.5", cfg.Invoice.DefaultFxRate.String())
	require.Equal(t, "Asia/Kolkata", cfg.Location.String())
	require.Equal(t, "18", cfg.Tariff.TaxPercent.String())
	require.Equal(t, "996719", cfg.Tariff.HSNSAC)
	require.Equal(t, 15*time.Minute, cfg.RateLimit.LoginWindow)
	require.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	require.True(t, cfg.Audit.Enabled)
	require.False(t, cfg.DBAutoMigrate)
}

func TestLoadOverrides(t *testing.T) {
	env := baseEnv()
	env["PORT"] = ":9090"
	env["INVOICE_PREFIX"] = "SLG"
	env["FX_DEFAULT_INR_PER_USD"] = "84.125"
	env["SELLER_ADDRESS"] = "Plot 4, FTWZ | Panvel | Raigad 410206"
	env["DB_AUTO_MIGRATE"] = "true"
	env["TIMEZONE"] = "UTC"
	cfg, err := LoadForTests(env)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, "SLG", cfg.Invoice.Prefix)
	require.Equal(t, "84.125", cfg.Invoice.DefaultFxRate.String())
	require.Equal(t, []string{"Plot 4, FTWZ", "Panvel", "Raigad 410206"}, cfg.Seller.AddressLines)
	require.True(t, cfg.DBAutoMigrate)
	require.Equal(t, time.UTC, cfg.Location)
}

func TestLoadRequiresSecrets(t *testing.T) {
	env := baseEnv()
	env["JWT_SECRET"] = ""
	_, err := LoadForTests(env)
	require.ErrorContains(t, err, "JWT_SECRET is required")
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	env := baseEnv()
	env["FX_DEFAULT_INR_PER_USD"] = "0"
	env["RATE_LIMIT_LOGIN_WINDOW"] = "soon"
	env["INVOICE_PAYMENT_TERMS_DAYS"] = "thirty"
	_, err := LoadForTests(env)
	require.ErrorContains(t, err, "FX_DEFAULT_INR_PER_USD")
	require.ErrorContains(t, err, "RATE_LIMIT_LOGIN_WINDOW")
	require.ErrorContains(t, err, "INVOICE_PAYMENT_TERMS_DAYS")
}
