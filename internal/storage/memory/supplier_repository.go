package memory

import (
	"context"
	"sort"
	"sync"

	"minimarket/internal/domain"
)

// supplierRepositoryInMemory — in-memory реестр поставщиков.
type supplierRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Supplier
}

// NewSupplierRepository возвращает in-memory реестр поставщиков.
func NewSupplierRepository() domain.SupplierRepository {
	return &supplierRepositoryInMemory{
		items: make(map[string]domain.Supplier),
	}
}

// Create сохраняет нового поставщика, если ID ещё не занят.
func (r *supplierRepositoryInMemory) Create(_ context.Context, supplier domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[supplier.ID]; exists {
		return domain.ErrVersionConflict
	}
	r.items[supplier.ID] = supplier
	return nil
}

// Get возвращает поставщика или ErrSupplierNotFound.
func (r *supplierRepositoryInMemory) Get(_ context.Context, id string) (domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	supplier, ok := r.items[id]
	if !ok {
		return domain.Supplier{}, domain.ErrSupplierNotFound
	}
	return supplier, nil
}

// List возвращает поставщиков, отсортированных по названию компании.
func (r *supplierRepositoryInMemory) List(_ context.Context) ([]domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Supplier, 0, len(r.items))
	for _, supplier := range r.items {
		result = append(result, supplier)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CompanyName != result[j].CompanyName {
			return result[i].CompanyName < result[j].CompanyName
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

var _ domain.SupplierRepository = (*supplierRepositoryInMemory)(nil)
