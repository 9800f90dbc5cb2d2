package catalog

import (
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"

	"minimarket/internal/domain"
	"minimarket/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, domain.ProductRepository) {
	t.Helper()
	repo := memory.NewProductRepository()
	logger := log.New().WithField("component", "catalog-test")
	// Без Redis сервис работает напрямую с хранилищем.
	return NewService(repo, nil, logger), repo
}

func TestServiceCreateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.Product{
		Name:        "Arroz",
		PriceMinor:  500,
		StockOnHand: 10,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ID == "" {
		t.Error("expected assigned id")
	}

	got, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != "Arroz" || got.PriceMinor != 500 {
		t.Errorf("unexpected product: %+v", got)
	}
}

func TestServiceCreateProduct_Validates(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), domain.Product{PriceMinor: 0})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("expected name error in chain, got %v", err)
	}
}

func TestServiceGetProduct_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProduct(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceAdjustStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.Product{Name: "Azucar", PriceMinor: 350, StockOnHand: 4})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.AdjustStock(ctx, created.ID, -3); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	got, _ := svc.GetProduct(ctx, created.ID)
	if got.StockOnHand != 1 {
		t.Errorf("expected stock 1, got %d", got.StockOnHand)
	}

	// Списание ниже нуля отклоняется без частичного применения.
	err = svc.AdjustStock(ctx, created.ID, -2)
	var stockErr *domain.StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected stock error, got %v", err)
	}
	if stockErr.Available != 1 || stockErr.Requested != 2 {
		t.Errorf("unexpected stock error details: %+v", stockErr)
	}

	got, _ = svc.GetProduct(ctx, created.ID)
	if got.StockOnHand != 1 {
		t.Errorf("stock must be unchanged after rejection, got %d", got.StockOnHand)
	}
}

func TestServiceListLowStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, domain.Product{Name: "Arroz", PriceMinor: 500, StockOnHand: 10, StockMinimum: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}
	low, err := svc.CreateProduct(ctx, domain.Product{Name: "Azucar", PriceMinor: 350, StockOnHand: 2, StockMinimum: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.ListLowStock(ctx)
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(list) != 1 || list[0].ID != low.ID {
		t.Errorf("unexpected low stock list: %+v", list)
	}
}
