package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Currency mixing policies for balance queries.
const (
	MixingReject      = "reject"
	MixingPerCurrency = "per_currency"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Accounting core settings.
	DefaultCurrency       string
	EntryNumberPrefix     string
	AllowForcedYearClose  bool
	BalanceCurrencyMixing string

	// Rate limiting, expressed in ulule/limiter format, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env
// file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("ENTRY_NUMBER_PREFIX", "JE-")
	viper.SetDefault("ALLOW_FORCED_YEAR_CLOSE", false)
	viper.SetDefault("BALANCE_CURRENCY_MIXING", MixingReject)
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           viper.GetString("PGSQL_URL"),
		Port:                  viper.GetString("PORT"),
		IsProduction:          viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:         viper.GetBool("ENABLE_DB_CHECK"),
		DefaultCurrency:       viper.GetString("DEFAULT_CURRENCY"),
		EntryNumberPrefix:     viper.GetString("ENTRY_NUMBER_PREFIX"),
		AllowForcedYearClose:  viper.GetBool("ALLOW_FORCED_YEAR_CLOSE"),
		BalanceCurrencyMixing: viper.GetString("BALANCE_CURRENCY_MIXING"),
		RateLimit:             viper.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter ISO code, got %q", cfg.DefaultCurrency)
	}

	switch cfg.BalanceCurrencyMixing {
	case MixingReject, MixingPerCurrency:
	default:
		return nil, fmt.Errorf("BALANCE_CURRENCY_MIXING must be %q or %q, got %q", MixingReject, MixingPerCurrency, cfg.BalanceCurrencyMixing)
	}

	return cfg, nil
}
