package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"agency_configurator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestEncodeOrderEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	e := entities.NewOrderEvent(entities.OrderEventPaid, entities.Order{
		ID:         "ORD-20240501-100000-0001",
		ServiceID:  "svc-website",
		Status:     entities.OrderStatusPaid,
		TotalPrice: decimal.RequireFromString("1800"),
		Currency:   "PLN",
	}, at)

	msg, err := encodeOrderEvent(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(msg.Key) != "ORD-20240501-100000-0001" {
		t.Fatalf("unexpected key %q", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != "order.paid" {
		t.Fatalf("unexpected headers %+v", msg.Headers)
	}

	var body map[string]any
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if body["type"] != "order.paid" || body["status"] != "paid" || body["total_price"] != "1800" {
		t.Fatalf("unexpected payload %s", msg.Value)
	}
	if !msg.Time.Equal(at) {
		t.Fatalf("unexpected time %v", msg.Time)
	}
}

func TestNoopOrderEventPublisher(t *testing.T) {
	if err := (NoopOrderEventPublisher{}).PublishOrderEvent(context.Background(), entities.OrderEvent{OrderID: "ORD-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
