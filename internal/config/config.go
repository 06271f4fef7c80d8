package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/shipping"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

// Config holds point-of-sale settings.
type Config struct {
	Currency     currency.Unit
	Fees         shipping.FeePolicy
	BusinessDate domain.Date
	// SeedPath names a YAML seed file; empty means the built-in seed.
	SeedPath string
	LogLevel zapcore.Level
}

// fileConfig mirrors the keys accepted in the POS_CONFIG file.
type fileConfig struct {
	Currency                *string `yaml:"currency"`
	ShippingRate            *string `yaml:"shipping_rate"`
	MinimumFee              *string `yaml:"minimum_fee"`
	WaiveFeeWithoutShipment *bool   `yaml:"waive_fee_without_shipment"`
	BusinessDate            *string `yaml:"business_date"`
	SeedPath                *string `yaml:"seed_path"`
	LogLevel                *string `yaml:"log_level"`
}

// Load builds the configuration from defaults, then the YAML file named by
// POS_CONFIG if set, then individual environment variables.
func Load() (*Config, error) {
	values := map[string]string{
		"currency":      "USD",
		"shipping_rate": "0.05",
		"minimum_fee":   "10.00",
		"waive_fee":     "false",
		"business_date": domain.DateOf(time.Now()).String(),
		"seed_path":     "",
		"log_level":     "info",
	}

	if path := os.Getenv("POS_CONFIG"); path != "" {
		if err := overlayFile(path, values); err != nil {
			return nil, fmt.Errorf("overlayFile: %w", err)
		}
	}

	overlayEnv(values, map[string]string{
		"currency":      "POS_CURRENCY",
		"shipping_rate": "POS_SHIPPING_RATE",
		"minimum_fee":   "POS_MINIMUM_FEE",
		"waive_fee":     "POS_WAIVE_FEE_WITHOUT_SHIPMENT",
		"business_date": "POS_BUSINESS_DATE",
		"seed_path":     "POS_SEED_PATH",
		"log_level":     "LOG_LEVEL",
	})

	return parse(values)
}

func overlayFile(path string, values map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	set := func(key string, v *string) {
		if v != nil {
			values[key] = *v
		}
	}
	set("currency", fc.Currency)
	set("shipping_rate", fc.ShippingRate)
	set("minimum_fee", fc.MinimumFee)
	set("business_date", fc.BusinessDate)
	set("seed_path", fc.SeedPath)
	set("log_level", fc.LogLevel)
	if fc.WaiveFeeWithoutShipment != nil {
		values["waive_fee"] = strconv.FormatBool(*fc.WaiveFeeWithoutShipment)
	}

	return nil
}

func overlayEnv(values map[string]string, keys map[string]string) {
	for key, env := range keys {
		if v := os.Getenv(env); v != "" {
			values[key] = v
		}
	}
}

func parse(values map[string]string) (*Config, error) {
	unit, err := currency.ParseISO(values["currency"])
	if err != nil {
		return nil, fmt.Errorf("currency[%s] is not valid: %w", values["currency"], err)
	}

	rate, err := decimal.NewFromString(values["shipping_rate"])
	if err != nil || rate.IsNegative() {
		return nil, fmt.Errorf("shipping rate[%s] is not valid", values["shipping_rate"])
	}

	minimum, err := decimal.NewFromString(values["minimum_fee"])
	if err != nil || minimum.IsNegative() {
		return nil, fmt.Errorf("minimum fee[%s] is not valid", values["minimum_fee"])
	}

	waive, err := strconv.ParseBool(values["waive_fee"])
	if err != nil {
		return nil, fmt.Errorf("waive fee flag[%s] is not valid: %w", values["waive_fee"], err)
	}

	date, err := domain.ParseDate(values["business_date"])
	if err != nil {
		return nil, fmt.Errorf("domain.ParseDate: %w", err)
	}

	level, err := zapcore.ParseLevel(values["log_level"])
	if err != nil {
		return nil, fmt.Errorf("zapcore.ParseLevel: %w", err)
	}

	return &Config{
		Currency: unit,
		Fees: shipping.FeePolicy{
			RatePerGram:          rate,
			MinimumFee:           minimum,
			WaiveWithoutShipment: waive,
		},
		BusinessDate: date,
		SeedPath:     values["seed_path"],
		LogLevel:     level,
	}, nil
}
