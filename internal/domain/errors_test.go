package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsStock(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "sentinel",
			err:  ErrInsufficientStock,
			want: true,
		},
		{
			name: "typed stock error",
			err:  &StockError{ProductID: "prod-1", Requested: 5, Available: 2},
			want: true,
		},
		{
			name: "wrapped stock error",
			err:  fmt.Errorf("commit sale: %w", &StockError{ProductID: "prod-1", Requested: 5, Available: 2}),
			want: true,
		},
		{
			name: "other error",
			err:  ErrSaleNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStock(tt.err); got != tt.want {
				t.Errorf("IsStock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsIllegalTransition(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "typed transition error",
			err:  &IllegalTransitionError{From: OrderStatusPending, To: OrderStatusDelivered},
			want: true,
		},
		{
			name: "wrapped transition error",
			err:  fmt.Errorf("update order: %w", &IllegalTransitionError{From: OrderStatusCancelled, To: OrderStatusConfirmed}),
			want: true,
		},
		{
			name: "other error",
			err:  ErrOrderNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIllegalTransition(tt.err); got != tt.want {
				t.Errorf("IsIllegalTransition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	for _, err := range []error{
		ErrQuantityInvalid, ErrPriceInvalid, ErrNameRequired,
		ErrSupplierRequired, ErrPaymentMethodInvalid,
	} {
		if !IsValidation(err) {
			t.Errorf("expected %v to be a validation error", err)
		}
		if !IsValidation(fmt.Errorf("add line: %w", err)) {
			t.Errorf("expected wrapped %v to be a validation error", err)
		}
	}

	if IsValidation(ErrInsufficientStock) {
		t.Error("stock error must not be reported as validation")
	}
	if IsValidation(nil) {
		t.Error("nil must not be reported as validation")
	}
}

func TestIsNotFound(t *testing.T) {
	for _, err := range []error{ErrProductNotFound, ErrSaleNotFound, ErrOrderNotFound, ErrSupplierNotFound} {
		if !IsNotFound(err) {
			t.Errorf("expected %v to be not-found", err)
		}
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("arbitrary error must not be reported as not-found")
	}
}

func TestIllegalTransitionError_DeleteMessage(t *testing.T) {
	err := &IllegalTransitionError{From: OrderStatusConfirmed}
	if err.Error() != `cannot delete order in status "confirmed"` {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
