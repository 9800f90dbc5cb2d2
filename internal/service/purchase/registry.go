package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"minimarket/internal/domain"
)

// SupplierRegistry ведёт реестр поставщиков, доступных для заказов.
type SupplierRegistry struct {
	suppliers domain.SupplierRepository
}

// NewSupplierRegistry создаёт реестр поверх хранилища поставщиков.
func NewSupplierRegistry(suppliers domain.SupplierRepository) *SupplierRegistry {
	return &SupplierRegistry{suppliers: suppliers}
}

// Register добавляет поставщика в реестр.
func (r *SupplierRegistry) Register(ctx context.Context, supplier domain.Supplier) (domain.Supplier, error) {
	if supplier.ID == "" {
		supplier.ID = uuid.NewString()
	}
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = time.Now().UTC()
	}

	if errs := supplier.ValidateInvariants(); len(errs) > 0 {
		return domain.Supplier{}, errors.Join(errs...)
	}

	if err := r.suppliers.Create(ctx, supplier); err != nil {
		return domain.Supplier{}, err
	}
	return supplier, nil
}

// Get возвращает поставщика по идентификатору.
func (r *SupplierRegistry) Get(ctx context.Context, id string) (domain.Supplier, error) {
	return r.suppliers.Get(ctx, id)
}

// List возвращает всех поставщиков, отсортированных по названию компании.
func (r *SupplierRegistry) List(ctx context.Context) ([]domain.Supplier, error) {
	return r.suppliers.List(ctx)
}
