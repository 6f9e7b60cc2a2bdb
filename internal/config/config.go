package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the API. Values come from the process
// environment (a .env file is loaded beforehand by godotenv/autoload).
type Config struct {
	Port int `mapstructure:"PORT"`

	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint   string `mapstructure:"DYNAMODB_ENDPOINT"`

	ServicesTable string `mapstructure:"SERVICES_TABLE"`
	OrdersTable   string `mapstructure:"ORDERS_TABLE"`
	PaymentsTable string `mapstructure:"PAYMENTS_TABLE"`

	PaymentGatewayMock     bool   `mapstructure:"PAYMENT_GATEWAY_MOCK"`
	MercadoPagoAccessToken string `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	PaymentNotificationURL string `mapstructure:"PAYMENT_NOTIFICATION_URL"`
	// PaymentSignalSecret guards POST /admin/payments/:id/result; empty disables it.
	PaymentSignalSecret string `mapstructure:"PAYMENT_SIGNAL_SECRET"`

	BaseCurrency string `mapstructure:"BASE_CURRENCY"`
	// CurrencyRates is "CODE=rate,CODE=rate"; rate is units of CODE per one base unit.
	CurrencyRates string `mapstructure:"CURRENCY_RATES"`

	OrderIDPrefix string `mapstructure:"ORDER_ID_PREFIX"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CatalogTTL    time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	KafkaBrokers     string `mapstructure:"KAFKA_BROKERS"`
	OrderEventsTopic string `mapstructure:"ORDER_EVENTS_TOPIC"`
}

var defaults = map[string]any{
	"PORT":                     8080,
	"AWS_REGION":               "us-east-1",
	"AWS_ACCESS_KEY_ID":        "local",
	"AWS_SECRET_ACCESS_KEY":    "local",
	"DYNAMODB_ENDPOINT":        "",
	"SERVICES_TABLE":           "services",
	"ORDERS_TABLE":             "orders",
	"PAYMENTS_TABLE":           "payments",
	"PAYMENT_GATEWAY_MOCK":     false,
	"MERCADOPAGO_ACCESS_TOKEN": "",
	"PAYMENT_NOTIFICATION_URL": "",
	"PAYMENT_SIGNAL_SECRET":    "",
	"BASE_CURRENCY":            "PLN",
	"CURRENCY_RATES":           "EUR=0.23,USD=0.25",
	"ORDER_ID_PREFIX":          "ORD",
	"REDIS_ADDR":               "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"CATALOG_CACHE_TTL":        "5m",
	"KAFKA_BROKERS":            "",
	"ORDER_EVENTS_TOPIC":       "orders.events",
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(cfg.BaseCurrency))
	if cfg.BaseCurrency == "" {
		return Config{}, fmt.Errorf("BASE_CURRENCY cannot be empty")
	}
	if _, err := cfg.DisplayRates(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DisplayRates parses CurrencyRates into a code -> rate table.
func (c Config) DisplayRates() (map[string]decimal.Decimal, error) {
	rates := map[string]decimal.Decimal{}
	for _, pair := range strings.Split(c.CurrencyRates, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid CURRENCY_RATES entry %q", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive", code)
		}
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return rates, nil
}

// Brokers splits KafkaBrokers; empty means event publishing is disabled.
func (c Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
