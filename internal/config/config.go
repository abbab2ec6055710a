package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	AccessTokenTTL     time.Duration
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	ShutdownTimeout    time.Duration

	DBAutoMigrate  bool
	MigrationsPath string

	Obs Obs

	// Location stamps invoice dates and selects the financial year.
	Location *time.Location
	Invoice  Invoice
	Tariff   Tariff
	Seller   Seller

	RateLimit      RateLimit
	IdempotencyTTL time.Duration
	Audit          Audit
}

// Audit toggles the write audit trail.
type Audit struct {
	Enabled      bool
	SamplingRate float64
}

// Obs configures logging, metrics and tracing.
type Obs struct {
	LogFormat         string
	LogLevel          string
	MetricsEnabled    bool
	MetricsNamespace  string
	MetricsBuckets    string
	TracingEnabled    bool
	TracingExporter   string
	OTLPEndpoint      string
	SamplingRatio     float64
	ReadyDBTimeout    time.Duration
	ReadyRedisTimeout time.Duration
}

// Invoice holds numbering and billing defaults.
type Invoice struct {
	Prefix           string
	PaymentTermsDays int
	DefaultFxRate    decimal.Decimal
}

// Tariff prices the default invoice lines.
type Tariff struct {
	InboundHandlingUSD  decimal.Decimal
	OutboundHandlingUSD decimal.Decimal
	TransportINR        decimal.Decimal
	ODCSurchargeINR     decimal.Decimal
	TaxPercent          decimal.Decimal
	HSNSAC              string
}

// Seller is the issuing company printed on invoices.
type Seller struct {
	Name          string
	AddressLines  []string
	GSTIN         string
	PAN           string
	State         string
	StateCode     string
	Email         string
	Phone         string
	BankName      string
	AccountNumber string
	IFSC          string
}

// RateLimit configures the Redis backed limiters and the ulule API limit.
type RateLimit struct {
	APIRate      string
	LoginMax     int
	LoginWindow  time.Duration
	ExportMax    int
	ExportWindow time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	p := parser{k: k}
	cfg := &Config{
		AppEnv:             p.str("APP_ENV", "development"),
		Port:               p.str("PORT", "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		JWTSecret:          k.String("JWT_SECRET"),
		JWTIssuer:          p.str("JWT_ISSUER", "shipledger"),
		JWTAudience:        p.str("JWT_AUDIENCE", "shipledger-console"),
		AccessTokenTTL:     p.duration("ACCESS_TOKEN_TTL", "12h"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS"), ","),
		MaxBodyBytes:       int64(p.integer("HTTP_MAX_BODY_BYTES", 1<<20)),
		ShutdownTimeout:    p.duration("HTTP_SHUTDOWN_TIMEOUT", "15s"),
		DBAutoMigrate:      parseBool(k.String("DB_AUTO_MIGRATE")),
		MigrationsPath:     p.str("DB_MIGRATIONS_PATH", "file://db/migrations"),
		Obs: Obs{
			LogFormat:         p.str("OBS_LOG_FORMAT", "json"),
			LogLevel:          p.str("OBS_LOG_LEVEL", "info"),
			MetricsEnabled:    p.boolean("OBS_ENABLE_PROMETHEUS", true),
			MetricsNamespace:  p.str("OBS_METRICS_NAMESPACE", "shipledger"),
			MetricsBuckets:    k.String("OBS_METRICS_BUCKETS_MS"),
			TracingEnabled:    p.boolean("OBS_ENABLE_TRACING", false),
			TracingExporter:   p.str("OBS_TRACING_EXPORTER", "otlp"),
			OTLPEndpoint:      k.String("OBS_OTLP_ENDPOINT"),
			SamplingRatio:     p.float("OBS_TRACING_SAMPLING_RATIO", 1),
			ReadyDBTimeout:    p.duration("HEALTH_READY_DB_TIMEOUT", "500ms"),
			ReadyRedisTimeout: p.duration("HEALTH_READY_REDIS_TIMEOUT", "300ms"),
		},
		Invoice: Invoice{
			Prefix:           p.str("INVOICE_PREFIX", "LGS"),
			PaymentTermsDays: p.integer("INVOICE_PAYMENT_TERMS_DAYS", 15),
			DefaultFxRate:    p.decimal("FX_DEFAULT_INR_PER_USD", "83.50"),
		},
		Tariff: Tariff{
			InboundHandlingUSD:  p.decimal("TARIFF_INBOUND_HANDLING_USD_PER_CBM", "12"),
			OutboundHandlingUSD: p.decimal("TARIFF_OUTBOUND_HANDLING_USD_PER_CBM", "15"),
			TransportINR:        p.decimal("TARIFF_TRANSPORT_INR", "4500"),
			ODCSurchargeINR:     p.decimal("TARIFF_ODC_SURCHARGE_INR", "1500"),
			TaxPercent:          p.decimal("TARIFF_TAX_PERCENT", "18"),
			HSNSAC:              p.str("TARIFF_HSN_SAC", "996719"),
		},
		Seller: Seller{
			Name:          p.str("SELLER_NAME", "ShipLedger Logistics Pvt Ltd"),
			AddressLines:  splitAndTrim(k.String("SELLER_ADDRESS"), "|"),
			GSTIN:         k.String("SELLER_GSTIN"),
			PAN:           k.String("SELLER_PAN"),
			State:         p.str("SELLER_STATE", "Maharashtra"),
			StateCode:     p.str("SELLER_STATE_CODE", "27"),
			Email:         k.String("SELLER_EMAIL"),
			Phone:         k.String("SELLER_PHONE"),
			BankName:      k.String("SELLER_BANK_NAME"),
			AccountNumber: k.String("SELLER_BANK_ACCOUNT"),
			IFSC:          k.String("SELLER_BANK_IFSC"),
		},
		RateLimit: RateLimit{
			APIRate:      p.str("RATE_LIMIT_API", "300-M"),
			LoginMax:     p.integer("RATE_LIMIT_LOGIN_MAX", 5),
			LoginWindow:  p.duration("RATE_LIMIT_LOGIN_WINDOW", "15m"),
			ExportMax:    p.integer("RATE_LIMIT_EXPORT_MAX", 30),
			ExportWindow: p.duration("RATE_LIMIT_EXPORT_WINDOW", "1m"),
		},
		IdempotencyTTL: p.duration("IDEMPOTENCY_TTL", "24h"),
		Audit: Audit{
			Enabled:      p.boolean("AUDIT_ENABLED", true),
			SamplingRate: p.float("AUDIT_SAMPLING_RATE", 1),
		},
	}

	loc, err := time.LoadLocation(p.str("TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	cfg.Location = loc

	if cfg.DatabaseURL == "" {
		p.errs = append(p.errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.RedisURL == "" {
		p.errs = append(p.errs, errors.New("REDIS_URL is required"))
	}
	if cfg.JWTSecret == "" {
		p.errs = append(p.errs, errors.New("JWT_SECRET is required"))
	}
	if !cfg.Invoice.DefaultFxRate.IsPositive() {
		p.errs = append(p.errs, errors.New("FX_DEFAULT_INR_PER_USD must be greater than zero"))
	}
	if cfg.Invoice.PaymentTermsDays < 0 {
		p.errs = append(p.errs, errors.New("INVOICE_PAYMENT_TERMS_DAYS must not be negative"))
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// parser reads typed values and collects malformed ones instead of silently
// falling back.
type parser struct {
	k    *koanf.Koanf
	errs []error
}

func (p *parser) raw(key string) string {
	return strings.TrimSpace(p.k.String(key))
}

func (p *parser) str(key, fallback string) string {
	if v := p.raw(key); v != "" {
		return v
	}
	return fallback
}

func (p *parser) duration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(p.str(key, fallback))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
	}
	return d
}

func (p *parser) integer(key string, fallback int) int {
	v := p.raw(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := p.raw(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func (p *parser) boolean(key string, fallback bool) bool {
	if p.raw(key) == "" {
		return fallback
	}
	return parseBool(p.raw(key))
}

func (p *parser) decimal(key, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(p.str(key, fallback))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return decimal.RequireFromString(fallback)
	}
	return d
}

func splitAndTrim(value, sep string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
