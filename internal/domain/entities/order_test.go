package entities

import "testing"

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusSubmitted, OrderStatusPaid, true},
		{OrderStatusSubmitted, OrderStatusPaymentFailed, true},
		{OrderStatusSubmitted, OrderStatusCancelled, true},
		{OrderStatusSubmitted, OrderStatusCompleted, false},
		{OrderStatusPaymentFailed, OrderStatusSubmitted, true},
		{OrderStatusPaymentFailed, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusInProgress, true},
		{OrderStatusPaid, OrderStatusCompleted, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusPaymentFailed, false},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusSubmitted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestOrderStatus_Helpers(t *testing.T) {
	if !OrderStatusCompleted.IsAdminTarget() || OrderStatusPaid.IsAdminTarget() {
		t.Fatalf("unexpected admin targets")
	}
	if !OrderStatusPaymentFailed.AwaitingPayment() || OrderStatusPaid.AwaitingPayment() {
		t.Fatalf("unexpected AwaitingPayment")
	}
	if OrderStatus("draft").Valid() || !OrderStatusInProgress.Valid() {
		t.Fatalf("unexpected Valid")
	}
	if !PaymentStatusFailed.IsFinal() || PaymentStatusPending.IsFinal() {
		t.Fatalf("unexpected IsFinal")
	}
}
