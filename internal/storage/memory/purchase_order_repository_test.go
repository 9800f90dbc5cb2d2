package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"minimarket/internal/domain"
	"minimarket/internal/storage/memory"
)

func newPurchaseOrder(id string) domain.PurchaseOrder {
	now := time.Now().UTC()
	return domain.PurchaseOrder{
		ID:         id,
		SupplierID: "supplier-1",
		Status:     domain.OrderStatusPending,
		TotalMinor: 600,
		Lines: []domain.OrderLine{
			{ProductID: "prod-1", Name: "Arroz", Qty: 2, PriceMinor: 300},
		},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPurchaseOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewPurchaseOrderRepository()
	ctx := context.Background()
	order := newPurchaseOrder("order-1")

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending, got %s", stored.Status)
	}
	if len(stored.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(stored.Lines))
	}
}

func TestPurchaseOrderRepository_SaveVersionConflict(t *testing.T) {
	repo := memory.NewPurchaseOrderRepository()
	ctx := context.Background()
	order := newPurchaseOrder("order-1")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	order.Status = domain.OrderStatusConfirmed
	if err := repo.Save(ctx, order); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Повторное сохранение с устаревшей версией отклоняется.
	order.Status = domain.OrderStatusCancelled
	if err := repo.Save(ctx, order); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != domain.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", stored.Status)
	}
	if stored.Version != 1 {
		t.Fatalf("expected version 1, got %d", stored.Version)
	}
}

func TestPurchaseOrderRepository_Delete(t *testing.T) {
	repo := memory.NewPurchaseOrderRepository()
	ctx := context.Background()
	order := newPurchaseOrder("order-1")
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaleRepository_CreateUpdateMetaDelete(t *testing.T) {
	repo := memory.NewSaleRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	sale := domain.Sale{
		ID:            "sale-1",
		Customer:      domain.Customer{Name: "Maria"},
		PaymentMethod: domain.PaymentMethodCash,
		TotalMinor:    1000,
		Lines: []domain.SaleLine{
			{ProductID: "prod-1", Name: "Arroz", Qty: 2, PriceMinor: 500},
		},
		CreatedAt: now,
	}
	if err := repo.Create(ctx, sale); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	method := domain.PaymentMethodCard
	notes := "pago con tarjeta"
	if err := repo.UpdateMeta(ctx, sale.ID, domain.SaleUpdate{PaymentMethod: &method, Notes: &notes}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.Get(ctx, sale.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.PaymentMethod != domain.PaymentMethodCard || stored.Notes != notes {
		t.Fatalf("metadata update not applied: %+v", stored)
	}
	// Строки и сумма не затрагиваются редактированием метаданных.
	if len(stored.Lines) != 1 || stored.TotalMinor != 1000 {
		t.Fatalf("lines must be untouched: %+v", stored)
	}
	if stored.Customer.Name != "Maria" {
		t.Fatalf("customer must be untouched when not updated, got %q", stored.Customer.Name)
	}

	if err := repo.Delete(ctx, sale.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, sale.ID); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestStatusHistoryRepository_AppendList(t *testing.T) {
	repo := memory.NewStatusHistoryRepository()
	ctx := context.Background()
	base := time.Now().UTC()

	events := []domain.StatusEvent{
		{OrderID: "order-1", From: domain.OrderStatusPending, To: domain.OrderStatusConfirmed, Occurred: base.Add(time.Minute)},
		{OrderID: "order-1", From: "", To: domain.OrderStatusPending, Occurred: base},
		{OrderID: "order-2", From: "", To: domain.OrderStatusPending, Occurred: base},
	}
	for _, event := range events {
		if err := repo.Append(ctx, event); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	stored, err := repo.List(ctx, "order-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 events, got %d", len(stored))
	}
	// События возвращаются в хронологическом порядке.
	if stored[0].To != domain.OrderStatusPending || stored[1].To != domain.OrderStatusConfirmed {
		t.Fatalf("unexpected order of events: %v", stored)
	}
}
