package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agency_configurator/internal/adapter/http/handlers/mocks"
	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(t *testing.T) (*gin.Engine, *mocks.MockIPaymentUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc)

	r := gin.New()
	r.POST("/v1/orders/:order_id/payments", h.CreatePayment)
	r.GET("/v1/orders/:order_id/payments", h.ListPayments)
	r.POST("/v1/payments/webhook", h.Webhook)
	r.POST("/v1/admin/payments/:payment_id/result", RequireSharedSecret(PaymentSignalSecretHeader, testSignalSecret), h.ApplyResult)
	return r, uc
}

const testSignalSecret = "s3cret"

func doSignal(r *gin.Engine, path, body, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(PaymentSignalSecretHeader, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_CreatePayment(t *testing.T) {
	t.Run("order not payable", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().CreateIntent(gomock.Any(), "ORD-1").Return(entities.Payment{}, usecase.ErrOrderNotPayable)

		w := doJSON(r, http.MethodPost, "/v1/orders/ORD-1/payments", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().CreateIntent(gomock.Any(), "ORD-1").Return(entities.Payment{}, usecase.ErrPaymentGatewayNotConfigured)

		w := doJSON(r, http.MethodPost, "/v1/orders/ORD-1/payments", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().CreateIntent(gomock.Any(), "ORD-1").Return(entities.Payment{
			ID:           "pay-2",
			OrderID:      "ORD-1",
			Amount:       decimal.NewFromInt(1800),
			Currency:     "PLN",
			ClientHandle: "pref-2",
			Status:       entities.PaymentStatusPending,
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/orders/ORD-1/payments", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-2" || body["amount"] != "1800" || body["status"] != "pending" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	r, uc := newPaymentRouter(t)
	uc.EXPECT().ListByOrderID(gomock.Any(), "ORD-0").Return(nil, nil)
	uc.EXPECT().ListByOrderID(gomock.Any(), "ORD-1").Return([]entities.Payment{{ID: "pay-2"}, {ID: "pay-1"}}, nil)

	if w := doJSON(r, http.MethodGet, "/v1/orders/ORD-0/payments", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/v1/orders/ORD-1/payments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 2 || body[0]["payment_id"] != "pay-2" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPaymentHandler_Webhook(t *testing.T) {
	t.Run("payment notification", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().HandleProviderNotification(gomock.Any(), "123").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusSucceeded}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook", `{"type":"payment","action":"payment.updated","data":{"id":"123"}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("numeric id", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().HandleProviderNotification(gomock.Any(), "98765").Return(entities.Payment{ID: "pay-1"}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook", `{"type":"payment","data":{"id":98765}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("legacy query", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().HandleProviderNotification(gomock.Any(), "555").Return(entities.Payment{ID: "pay-1"}, nil)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook?topic=payment&id=555", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("other topic ignored", func(t *testing.T) {
		r, _ := newPaymentRouter(t)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook", `{"type":"merchant_order","data":{"id":"1"}}`)
		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", w.Code)
		}
	})

	t.Run("chunked body", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().HandleProviderNotification(gomock.Any(), "321").Return(entities.Payment{ID: "pay-1"}, nil)

		body := io.MultiReader(strings.NewReader(`{"type":"payment",`), strings.NewReader(`"data":{"id":"321"}}`))
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", body)
		req.Header.Set("Content-Type", "application/json")
		if req.ContentLength != -1 {
			t.Fatalf("expected unknown content length, got %d", req.ContentLength)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("empty chunked body falls back to query", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().HandleProviderNotification(gomock.Any(), "555").Return(entities.Payment{ID: "pay-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook?topic=payment&id=555", io.MultiReader())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().HandleProviderNotification(gomock.Any(), "123").Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		w := doJSON(r, http.MethodPost, "/v1/payments/webhook", `{"type":"payment","data":{"id":"123"}}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_ApplyResult_RequiresSecret(t *testing.T) {
	t.Run("anonymous success is refused", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doSignal(r, "/v1/admin/payments/pay-1/result", `{"outcome":"success"}`, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "UNAUTHORIZED" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("wrong secret is refused", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doSignal(r, "/v1/admin/payments/pay-1/result", `{"outcome":"success"}`, "guess")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unset secret disables the route", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		ctrl := gomock.NewController(t)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl))
		r := gin.New()
		r.POST("/v1/admin/payments/:payment_id/result", RequireSharedSecret(PaymentSignalSecretHeader, ""), h.ApplyResult)

		w := doJSON(r, http.MethodPost, "/v1/admin/payments/pay-1/result", `{"outcome":"success"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_ApplyResult(t *testing.T) {
	t.Run("invalid outcome", func(t *testing.T) {
		r, _ := newPaymentRouter(t)
		w := doSignal(r, "/v1/admin/payments/pay-1/result", `{"outcome":"refunded"}`, testSignalSecret)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already final", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().ApplyResult(gomock.Any(), gomock.Any()).Return(entities.Payment{}, usecase.ErrPaymentAlreadyFinal)

		w := doSignal(r, "/v1/admin/payments/pay-1/result", `{"outcome":"failure"}`, testSignalSecret)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newPaymentRouter(t)
		uc.EXPECT().ApplyResult(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, res entities.PaymentResult) (entities.Payment, error) {
			if res.PaymentID != "pay-1" || res.Outcome != entities.PaymentOutcomeSuccess || res.ProviderPaymentID != "mp-9" {
				t.Fatalf("unexpected result: %+v", res)
			}
			return entities.Payment{ID: "pay-1", Status: entities.PaymentStatusSucceeded}, nil
		})

		w := doSignal(r, "/v1/admin/payments/pay-1/result", `{"outcome":"success","provider_payment_id":"mp-9"}`, testSignalSecret)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
