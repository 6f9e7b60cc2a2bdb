package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BASE_CURRENCY", "")
	t.Setenv("CURRENCY_RATES", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("PAYMENT_SIGNAL_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.BaseCurrency != "PLN" || cfg.OrdersTable != "orders" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CatalogTTL != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %v", cfg.CatalogTTL)
	}
	if cfg.PaymentSignalSecret != "" {
		t.Fatalf("signal secret must default to empty, got %q", cfg.PaymentSignalSecret)
	}
	if len(cfg.Brokers()) != 0 {
		t.Fatalf("expected no brokers, got %v", cfg.Brokers())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_CURRENCY", " pln ")
	t.Setenv("CURRENCY_RATES", "eur=0.2300, USD=0.25")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
	t.Setenv("PAYMENT_SIGNAL_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.BaseCurrency != "PLN" || !cfg.PaymentGatewayMock || cfg.PaymentSignalSecret != "s3cret" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	rates, err := cfg.DisplayRates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates["EUR"].String() != "0.23" || rates["USD"].String() != "0.25" {
		t.Fatalf("unexpected rates: %v", rates)
	}
	if b := cfg.Brokers(); len(b) != 2 || b[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %v", b)
	}
}

func TestDisplayRates_Invalid(t *testing.T) {
	for _, raw := range []string{"EUR", "EUR=abc", "EUR=0", "EUR=-1"} {
		if _, err := (Config{CurrencyRates: raw}).DisplayRates(); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
