package domain_test

import (
	"testing"
	"time"

	"minimarket/internal/domain"
)

// helper для создания базовой продажи с одной строкой.
func makeSale() domain.Sale {
	now := time.Now().UTC()
	return domain.Sale{
		ID:            "sale-1",
		Customer:      domain.Customer{Name: "Maria Lopez"},
		PaymentMethod: domain.PaymentMethodCash,
		TotalMinor:    1000,
		Lines: []domain.SaleLine{
			{ProductID: "prod-1", Name: "Arroz", Qty: 2, PriceMinor: 500},
		},
		CreatedAt: now,
	}
}

func TestSaleValidateInvariants_Ok(t *testing.T) {
	sale := makeSale()
	if errs := sale.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestSaleValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(s *domain.Sale)
	}{
		{
			name: "bad payment method",
			mut:  func(s *domain.Sale) { s.PaymentMethod = "cheque" },
		},
		{
			name: "no lines",
			mut:  func(s *domain.Sale) { s.Lines = nil },
		},
		{
			name: "qty invalid",
			mut:  func(s *domain.Sale) { s.Lines[0].Qty = -1 },
		},
		{
			name: "price invalid",
			mut:  func(s *domain.Sale) { s.Lines[0].PriceMinor = 0 },
		},
		{
			name: "total mismatch",
			mut:  func(s *domain.Sale) { s.TotalMinor = 1 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sale := makeSale()
			tc.mut(&sale)
			if len(sale.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestPaymentMethodValid(t *testing.T) {
	tests := []struct {
		name   string
		method domain.PaymentMethod
		want   bool
	}{
		{name: "cash", method: domain.PaymentMethodCash, want: true},
		{name: "card", method: domain.PaymentMethodCard, want: true},
		{name: "transfer", method: domain.PaymentMethodTransfer, want: true},
		{name: "invalid", method: domain.PaymentMethod("crypto"), want: false},
		{name: "empty", method: domain.PaymentMethod(""), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.method.Valid(); got != tc.want {
				t.Fatalf("method %q valid=%v, want %v", tc.method, got, tc.want)
			}
		})
	}
}

func TestProductLowStock(t *testing.T) {
	p := domain.Product{StockOnHand: 4, StockMinimum: 5}
	if !p.LowStock() {
		t.Error("expected low stock when on hand below minimum")
	}
	p.StockOnHand = 5
	if !p.LowStock() {
		t.Error("expected low stock at the minimum threshold")
	}
	p.StockOnHand = 6
	if p.LowStock() {
		t.Error("expected sufficient stock above threshold")
	}
}
