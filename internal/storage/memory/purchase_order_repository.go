package memory

import (
	"context"
	"sort"
	"sync"

	"minimarket/internal/domain"
)

// purchaseOrderRepositoryInMemory — in-memory реализация PurchaseOrderRepository.
type purchaseOrderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.PurchaseOrder
}

// NewPurchaseOrderRepository возвращает in-memory хранилище заказов поставщикам.
func NewPurchaseOrderRepository() domain.PurchaseOrderRepository {
	return &purchaseOrderRepositoryInMemory{
		items: make(map[string]domain.PurchaseOrder),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *purchaseOrderRepositoryInMemory) Create(_ context.Context, order domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrVersionConflict
	}
	order.Lines = copyOrderLines(order.Lines)
	r.items[order.ID] = order
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *purchaseOrderRepositoryInMemory) Get(_ context.Context, id string) (domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.PurchaseOrder{}, domain.ErrOrderNotFound
	}
	order.Lines = copyOrderLines(order.Lines)
	return order, nil
}

// List возвращает заказы, новые первыми.
func (r *purchaseOrderRepositoryInMemory) List(_ context.Context) ([]domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.PurchaseOrder, 0, len(r.items))
	for _, order := range r.items {
		order.Lines = copyOrderLines(order.Lines)
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Save перезаписывает заказ, проверяя версию (optimistic locking).
func (r *purchaseOrderRepositoryInMemory) Save(_ context.Context, order domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if current.Version != order.Version {
		return domain.ErrVersionConflict
	}
	// Инкрементируем версию перед сохранением.
	order.Version++
	order.Lines = copyOrderLines(order.Lines)
	r.items[order.ID] = order
	return nil
}

// Delete удаляет заказ или возвращает ErrOrderNotFound.
func (r *purchaseOrderRepositoryInMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

func copyOrderLines(lines []domain.OrderLine) []domain.OrderLine {
	result := make([]domain.OrderLine, len(lines))
	copy(result, lines)
	return result
}

var _ domain.PurchaseOrderRepository = (*purchaseOrderRepositoryInMemory)(nil)
