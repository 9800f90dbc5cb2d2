package purchase

import (
	"context"
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"minimarket/internal/domain"
	"minimarket/internal/service/catalog"
	"minimarket/internal/storage/memory"
)

func newTestLifecycle(t *testing.T) (*Lifecycle, *catalog.MockService, *MockSupplierService, domain.SupplierRepository) {
	t.Helper()

	cat := catalog.NewMockService()
	cat.Products["prod-a"] = domain.Product{ID: "prod-a", Name: "Arroz", PriceMinor: 500, StockOnHand: 10}

	suppliers := memory.NewSupplierRepository()
	if err := suppliers.Create(context.Background(), domain.Supplier{ID: "sup-1", CompanyName: "Distribuidora Sur"}); err != nil {
		t.Fatalf("seed supplier: %v", err)
	}

	orders := NewMockSupplierService()
	logger := log.New().WithField("component", "purchase-test")
	return NewLifecycleWithoutMetrics(cat, orders, suppliers, logger), cat, orders, suppliers
}

func TestLifecycleAddCatalogLine_NegotiatedPrice(t *testing.T) {
	l, _, _, _ := newTestLifecycle(t)
	comp := domain.NewComposition()
	ctx := context.Background()

	if err := l.AddCatalogLine(ctx, comp, "prod-a", 5, 420); err != nil {
		t.Fatalf("add catalog line: %v", err)
	}
	line, ok := comp.Line("prod-a")
	if !ok {
		t.Fatal("line not found")
	}
	if line.PriceMinor != 420 {
		t.Errorf("expected negotiated price 420, got %d", line.PriceMinor)
	}

	// Нулевая договорная цена — закупка по каталожной, последняя цена побеждает.
	if err := l.AddCatalogLine(ctx, comp, "prod-a", 3, 0); err != nil {
		t.Fatalf("add catalog line: %v", err)
	}
	line, _ = comp.Line("prod-a")
	if line.Qty != 8 || line.PriceMinor != 500 {
		t.Errorf("expected merged qty 8 at catalog price 500, got qty %d price %d", line.Qty, line.PriceMinor)
	}
}

func TestLifecycleAddCatalogLine_NoStockCeiling(t *testing.T) {
	l, _, _, _ := newTestLifecycle(t)
	comp := domain.NewComposition()

	// Закупка пополняет склад: количество выше остатка допустимо.
	if err := l.AddCatalogLine(context.Background(), comp, "prod-a", 100, 0); err != nil {
		t.Fatalf("expected no ceiling on purchase lines, got %v", err)
	}
}

func TestLifecycleAddNewProductLine_MergesByName(t *testing.T) {
	l, _, _, _ := newTestLifecycle(t)
	comp := domain.NewComposition()

	if err := l.AddNewProductLine(comp, "Harina Integral", 4, 300); err != nil {
		t.Fatalf("add new line: %v", err)
	}
	if err := l.AddNewProductLine(comp, "  harina integral ", 2, 310); err != nil {
		t.Fatalf("add new line: %v", err)
	}

	if comp.Len() != 1 {
		t.Fatalf("expected name-merged single line, got %d", comp.Len())
	}
	lines := comp.Lines()
	if lines[0].Qty != 6 || lines[0].PriceMinor != 310 || !lines[0].IsNew {
		t.Errorf("unexpected merged line: %+v", lines[0])
	}
}

func TestLifecycleCommit(t *testing.T) {
	l, _, orders, _ := newTestLifecycle(t)
	comp := domain.NewComposition()
	ctx := context.Background()

	if err := l.AddCatalogLine(ctx, comp, "prod-a", 5, 420); err != nil {
		t.Fatalf("add catalog line: %v", err)
	}
	if err := l.AddNewProductLine(comp, "Harina Integral", 4, 300); err != nil {
		t.Fatalf("add new line: %v", err)
	}

	order, err := l.Commit(ctx, comp, "sup-1")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if order.TotalMinor != 5*420+4*300 {
		t.Errorf("expected total 3300, got %d", order.TotalMinor)
	}
	if orders.CreateCalls != 1 {
		t.Errorf("expected one persist call, got %d", orders.CreateCalls)
	}
	if comp.Len() != 0 {
		t.Errorf("expected composition cleared, got %d lines", comp.Len())
	}
}

func TestLifecycleCommit_EmptyOrder(t *testing.T) {
	l, _, orders, _ := newTestLifecycle(t)
	comp := domain.NewComposition()

	_, err := l.Commit(context.Background(), comp, "sup-1")
	if !errors.Is(err, domain.ErrEmptyTransaction) {
		t.Fatalf("expected empty transaction error, got %v", err)
	}
	if orders.CreateCalls != 0 {
		t.Error("empty commit must not touch the store")
	}
}

func TestLifecycleCommit_UnknownSupplier(t *testing.T) {
	l, _, orders, _ := newTestLifecycle(t)
	comp := domain.NewComposition()
	ctx := context.Background()

	if err := l.AddCatalogLine(ctx, comp, "prod-a", 1, 0); err != nil {
		t.Fatalf("add catalog line: %v", err)
	}

	_, err := l.Commit(ctx, comp, "sup-missing")
	if !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Fatalf("expected supplier not found, got %v", err)
	}
	if orders.CreateCalls != 0 {
		t.Error("commit with unknown supplier must not persist")
	}
	if comp.Len() != 1 {
		t.Error("composition must stay intact after rejected commit")
	}
}

func newStoreBackedService(t *testing.T) (*Service, domain.PurchaseOrder) {
	t.Helper()
	ctx := context.Background()

	svc := NewService(memory.NewPurchaseOrderRepository(), memory.NewStatusHistoryRepository())
	order, err := svc.CreateOrder(ctx, domain.PurchaseOrder{
		SupplierID: "sup-1",
		TotalMinor: 500,
		Lines:      []domain.OrderLine{{ProductID: "prod-a", Name: "Arroz", Qty: 1, PriceMinor: 500}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return svc, order
}

func TestServiceUpdateOrderStatus(t *testing.T) {
	svc, order := newStoreBackedService(t)
	ctx := context.Background()

	if err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusConfirmed); err != nil {
		t.Fatalf("pending->confirmed: %v", err)
	}

	// Из confirmed операторских переходов нет.
	err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusDelivered)
	var transErr *domain.IllegalTransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected illegal transition, got %v", err)
	}
	if transErr.From != domain.OrderStatusConfirmed || transErr.To != domain.OrderStatusDelivered {
		t.Errorf("unexpected transition details: %+v", transErr)
	}

	history, err := svc.OrderHistory(ctx, order.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history events, got %d", len(history))
	}
	if history[0].To != domain.OrderStatusPending || history[1].To != domain.OrderStatusConfirmed {
		t.Errorf("unexpected history order: %+v", history)
	}
	if history[1].From != domain.OrderStatusPending {
		t.Errorf("expected transition from pending, got %s", history[1].From)
	}
}

func TestServiceUpdateOrderStatus_UnknownStatus(t *testing.T) {
	svc, order := newStoreBackedService(t)

	err := svc.UpdateOrderStatus(context.Background(), order.ID, "misplaced")
	if !domain.IsIllegalTransition(err) {
		t.Fatalf("expected illegal transition for unknown status, got %v", err)
	}
}

func TestServiceDeleteOrder_OnlyPending(t *testing.T) {
	svc, order := newStoreBackedService(t)
	ctx := context.Background()

	if err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.DeleteOrder(ctx, order.ID); !domain.IsIllegalTransition(err) {
		t.Fatalf("expected deletion rejection, got %v", err)
	}

	pending, err := svc.CreateOrder(ctx, domain.PurchaseOrder{
		SupplierID: "sup-1",
		TotalMinor: 300,
		Lines:      []domain.OrderLine{{Name: "Harina Integral", Qty: 1, PriceMinor: 300, IsNew: true}},
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create pending order: %v", err)
	}
	if err := svc.DeleteOrder(ctx, pending.ID); err != nil {
		t.Fatalf("delete pending: %v", err)
	}
	if _, err := svc.GetOrder(ctx, pending.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected order gone, got %v", err)
	}
}

func TestSupplierRegistry(t *testing.T) {
	reg := NewSupplierRegistry(memory.NewSupplierRepository())
	ctx := context.Background()

	created, err := reg.Register(ctx, domain.Supplier{CompanyName: "Distribuidora Sur", ContactName: "Pablo"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == "" {
		t.Error("expected assigned id")
	}

	if _, err := reg.Register(ctx, domain.Supplier{}); err == nil {
		t.Fatal("expected validation failure for empty company name")
	}

	list, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].CompanyName != "Distribuidora Sur" {
		t.Errorf("unexpected list: %+v", list)
	}
}
