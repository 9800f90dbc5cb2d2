package memory

import (
	"context"
	"sort"
	"sync"

	"minimarket/internal/domain"
)

// saleRepositoryInMemory — простая in-memory реализация SaleRepository.
type saleRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Sale
}

// NewSaleRepository возвращает in-memory хранилище продаж для разработки и тестов.
func NewSaleRepository() domain.SaleRepository {
	return &saleRepositoryInMemory{
		items: make(map[string]domain.Sale),
	}
}

// Create сохраняет новую продажу, если ID ещё не занят.
func (r *saleRepositoryInMemory) Create(_ context.Context, sale domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[sale.ID]; exists {
		return domain.ErrVersionConflict
	}
	// Сохраняем копию строк, чтобы избежать мутаций извне.
	sale.Lines = copyLines(sale.Lines)
	r.items[sale.ID] = sale
	return nil
}

// Get возвращает продажу или ErrSaleNotFound, если её нет.
func (r *saleRepositoryInMemory) Get(_ context.Context, id string) (domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, ok := r.items[id]
	if !ok {
		return domain.Sale{}, domain.ErrSaleNotFound
	}
	sale.Lines = copyLines(sale.Lines)
	return sale, nil
}

// List возвращает продажи, новые первыми.
func (r *saleRepositoryInMemory) List(_ context.Context) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Sale, 0, len(r.items))
	for _, sale := range r.items {
		sale.Lines = copyLines(sale.Lines)
		result = append(result, sale)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// UpdateMeta применяет редактирование метаданных; строки не затрагиваются.
func (r *saleRepositoryInMemory) UpdateMeta(_ context.Context, id string, upd domain.SaleUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sale, ok := r.items[id]
	if !ok {
		return domain.ErrSaleNotFound
	}
	if upd.Customer != nil {
		sale.Customer = *upd.Customer
	}
	if upd.PaymentMethod != nil {
		sale.PaymentMethod = *upd.PaymentMethod
	}
	if upd.Notes != nil {
		sale.Notes = *upd.Notes
	}
	r.items[id] = sale
	return nil
}

// Delete удаляет продажу или возвращает ErrSaleNotFound.
func (r *saleRepositoryInMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(r.items, id)
	return nil
}

func copyLines(lines []domain.SaleLine) []domain.SaleLine {
	result := make([]domain.SaleLine, len(lines))
	copy(result, lines)
	return result
}

var _ domain.SaleRepository = (*saleRepositoryInMemory)(nil)
