package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/payroll_engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string `validate:"required,numeric"`
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string `validate:"required"`

	JWTSecret string `validate:"required,min=16"`
	JWTIssuer string `validate:"required"`

	// RedisAddr is empty when no Redis is available; the FX cache, the distributed rate
	// limiter and async transitions are then disabled.
	RedisAddr          string
	FXCacheTTL         time.Duration `validate:"gt=0"`
	RateLimit          string        `validate:"required"`
	CORSAllowedOrigins []string      `validate:"required,min=1"`

	PayrollWorkers    int `validate:"gte=1,lte=64"`
	ConversionFactors domain.ConversionFactors
}

var validate = validator.New()

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	factors := domain.DefaultConversionFactors()
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", insecureJWTSecret)
	viper.SetDefault("JWT_ISSUER", "payroll-engine")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("FX_CACHE_TTL", "15m")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("PAYROLL_WORKERS", 4)
	viper.SetDefault("PAYROLL_HOURS_PER_DAY", factors.HoursPerDay.String())
	viper.SetDefault("PAYROLL_DAYS_PER_WEEK", factors.DaysPerWeek.String())
	viper.SetDefault("PAYROLL_WEEKS_PER_MONTH", factors.WeeksPerMonth.String())
	viper.SetDefault("PAYROLL_MONTHS_PER_YEAR", factors.MonthsPerYear.String())

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		JWTIssuer:      viper.GetString("JWT_ISSUER"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		PayrollWorkers: viper.GetInt("PAYROLL_WORKERS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}
	if cfg.JWTSecret == insecureJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := viper.GetString("FX_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid value for FX_CACHE_TTL (%q): %w", ttlStr, err)
	}
	cfg.FXCacheTTL = ttl

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	for key, dst := range map[string]*decimal.Decimal{
		"PAYROLL_HOURS_PER_DAY":   &factors.HoursPerDay,
		"PAYROLL_DAYS_PER_WEEK":   &factors.DaysPerWeek,
		"PAYROLL_WEEKS_PER_MONTH": &factors.WeeksPerMonth,
		"PAYROLL_MONTHS_PER_YEAR": &factors.MonthsPerYear,
	} {
		raw := viper.GetString(key)
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
		}
		*dst = v
	}
	if err := factors.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payroll conversion factors: %w", err)
	}
	cfg.ConversionFactors = factors

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
