package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func TestServiceItem_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	in := entities.Service{
		ID:                   "svc-website",
		Name:                 "Website",
		Category:             "web",
		BasePrice:            decimal.RequireFromString("1000"),
		DeliveryTimeBaseDays: 10,
		Status:               entities.ServiceStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
		Steps: []entities.ConfigStep{{
			ID: "scope",
			Options: []entities.ConfigOption{
				{ID: "Package", Type: entities.OptionTypeSelect, Choices: []entities.Choice{
					{Value: "Pro", PriceAdjustment: decimal.RequireFromString("500.10"), DeliveryTimeAdjustment: 3},
				}},
				{ID: "RushDelivery", Type: entities.OptionTypeCheckbox, PriceAdjustment: decimal.RequireFromString("300"), DeliveryTimeAdjustment: -5},
			},
		}},
	}

	av, err := attributevalue.MarshalMap(toServiceItem(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bp, ok := av["base_price"].(*types.AttributeValueMemberS); !ok || bp.Value != "1000" {
		t.Fatalf("base_price must be stored as a string, got %#v", av["base_price"])
	}

	out, err := unmarshalService(av)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	opt := out.Steps[0].Options[0]
	if opt.Type != entities.OptionTypeSelect || !opt.Choices[0].PriceAdjustment.Equal(decimal.RequireFromString("500.1")) {
		t.Fatalf("unexpected option %+v", opt)
	}
	if out.Steps[0].Options[1].DeliveryTimeAdjustment != -5 || !out.CreatedAt.Equal(now) {
		t.Fatalf("unexpected service %+v", out)
	}
}

func TestServiceItem_BadPrice(t *testing.T) {
	_, err := fromServiceItem(serviceItem{ID: "svc", BasePrice: "abc"})
	if err == nil {
		t.Fatalf("expected error for malformed price")
	}
}

func TestOrderItem_RoundTrip(t *testing.T) {
	in := entities.Order{
		ID:        "ORD-20240501-100000-0001",
		ServiceID: "svc-website",
		Configuration: entities.Configuration{
			"Package":      entities.TextValue("Pro"),
			"RushDelivery": entities.BoolValue(true),
		},
		ContactInfo:      entities.ContactInfo{Name: "Ada", Email: " Ada@Example.com "},
		TotalPrice:       decimal.RequireFromString("1800.00"),
		DeliveryTimeDays: 8,
		Currency:         "PLN",
		Status:           entities.OrderStatusSubmitted,
	}

	it := toOrderItem(in)
	if it.ContactEmail != "ada@example.com" {
		t.Fatalf("contact_email must be normalised, got %q", it.ContactEmail)
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := unmarshalOrder(av)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Configuration["RushDelivery"].IsChecked() || out.Configuration["Package"].Text != "Pro" {
		t.Fatalf("unexpected configuration %+v", out.Configuration)
	}
	if !out.TotalPrice.Equal(decimal.NewFromInt(1800)) || out.DeliveryTimeDays != 8 {
		t.Fatalf("unexpected totals %s/%d", out.TotalPrice, out.DeliveryTimeDays)
	}
}

func TestPaymentItem_RoundTrip(t *testing.T) {
	in := entities.Payment{
		ID:                 "pay-1",
		OrderID:            "ORD-1",
		Amount:             decimal.RequireFromString("414.00"),
		Currency:           "PLN",
		ClientHandle:       "pref-1",
		Status:             entities.PaymentStatusSucceeded,
		ProviderPaymentID:  "123",
		ProviderPayloadRaw: []byte(`{"status":"approved"}`),
	}

	av, err := attributevalue.MarshalMap(toPaymentItem(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := av["checkout_url"]; ok {
		t.Fatalf("empty checkout_url must be omitted")
	}
	out, err := unmarshalPayment(av)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(out.ProviderPayloadRaw) != `{"status":"approved"}` || !out.Amount.Equal(decimal.NewFromInt(414)) {
		t.Fatalf("unexpected payment %+v", out)
	}
}

func TestWrapConditional(t *testing.T) {
	cfe := &types.ConditionalCheckFailedException{}
	if err := wrapConditional(fmt.Errorf("put: %w", cfe), interfaces.ErrAlreadyExists); !errors.Is(err, interfaces.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	other := errors.New("throttled")
	if err := wrapConditional(other, interfaces.ErrAlreadyExists); err != other {
		t.Fatalf("unrelated errors must pass through, got %v", err)
	}
}

func TestMergeNames(t *testing.T) {
	got := mergeNames(map[string]string{"#status": "status"}, map[string]string{"#id": "id"})
	if len(got) != 2 || got["#id"] != "id" || got["#status"] != "status" {
		t.Fatalf("unexpected names %v", got)
	}
}
