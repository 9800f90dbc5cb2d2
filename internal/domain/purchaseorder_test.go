package domain_test

import (
	"testing"
	"time"

	"minimarket/internal/domain"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.OrderStatus
		to   domain.OrderStatus
		want bool
	}{
		{name: "pending to confirmed", from: domain.OrderStatusPending, to: domain.OrderStatusConfirmed, want: true},
		{name: "pending to cancelled", from: domain.OrderStatusPending, to: domain.OrderStatusCancelled, want: true},
		{name: "pending to delivered", from: domain.OrderStatusPending, to: domain.OrderStatusDelivered, want: false},
		{name: "pending to in_transit", from: domain.OrderStatusPending, to: domain.OrderStatusInTransit, want: false},
		{name: "in_transit to delivered", from: domain.OrderStatusInTransit, to: domain.OrderStatusDelivered, want: true},
		{name: "in_transit to cancelled", from: domain.OrderStatusInTransit, to: domain.OrderStatusCancelled, want: false},
		// Из confirmed операторских переходов нет.
		{name: "confirmed to in_transit", from: domain.OrderStatusConfirmed, to: domain.OrderStatusInTransit, want: false},
		{name: "confirmed to delivered", from: domain.OrderStatusConfirmed, to: domain.OrderStatusDelivered, want: false},
		{name: "delivered is terminal", from: domain.OrderStatusDelivered, to: domain.OrderStatusPending, want: false},
		{name: "cancelled is terminal", from: domain.OrderStatusCancelled, to: domain.OrderStatusConfirmed, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	terminal := []domain.OrderStatus{domain.OrderStatusDelivered, domain.OrderStatusCancelled}
	for _, status := range terminal {
		if !status.Terminal() {
			t.Errorf("expected %s to be terminal", status)
		}
		for _, next := range []domain.OrderStatus{
			domain.OrderStatusPending, domain.OrderStatusConfirmed,
			domain.OrderStatusInTransit, domain.OrderStatusDelivered, domain.OrderStatusCancelled,
		} {
			if status.CanTransitionTo(next) {
				t.Errorf("terminal %s must reject transition to %s", status, next)
			}
		}
	}

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusConfirmed, domain.OrderStatusInTransit,
	} {
		if status.Terminal() {
			t.Errorf("expected %s to be non-terminal", status)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusConfirmed, domain.OrderStatusInTransit,
		domain.OrderStatusDelivered, domain.OrderStatusCancelled,
	} {
		if !status.Valid() {
			t.Errorf("expected %s to be valid", status)
		}
	}
	if domain.OrderStatus("shipped").Valid() {
		t.Error("unexpected status must be invalid")
	}
}

func makePurchaseOrder() domain.PurchaseOrder {
	now := time.Now().UTC()
	return domain.PurchaseOrder{
		ID:         "order-1",
		SupplierID: "supplier-1",
		Status:     domain.OrderStatusPending,
		TotalMinor: 1200,
		Lines: []domain.OrderLine{
			{ProductID: "prod-1", Name: "Arroz", Qty: 4, PriceMinor: 300},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPurchaseOrderValidateInvariants_Ok(t *testing.T) {
	order := makePurchaseOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestPurchaseOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.PurchaseOrder)
	}{
		{
			name: "no supplier",
			mut:  func(o *domain.PurchaseOrder) { o.SupplierID = "" },
		},
		{
			name: "no lines",
			mut:  func(o *domain.PurchaseOrder) { o.Lines = nil },
		},
		{
			name: "qty invalid",
			mut:  func(o *domain.PurchaseOrder) { o.Lines[0].Qty = 0 },
		},
		{
			name: "price invalid",
			mut:  func(o *domain.PurchaseOrder) { o.Lines[0].PriceMinor = 0 },
		},
		{
			name: "new line without name",
			mut: func(o *domain.PurchaseOrder) {
				o.Lines[0] = domain.OrderLine{IsNew: true, Qty: 1, PriceMinor: 1200}
			},
		},
		{
			name: "total mismatch",
			mut:  func(o *domain.PurchaseOrder) { o.TotalMinor = 999 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makePurchaseOrder()
			tc.mut(&order)
			if len(order.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}
