package memory

import (
	"context"
	"sort"
	"sync"

	"minimarket/internal/domain"
)

// statusHistoryRepositoryInMemory хранит историю статусов в памяти.
type statusHistoryRepositoryInMemory struct {
	mu     sync.RWMutex
	events map[string][]domain.StatusEvent
}

// NewStatusHistoryRepository создаёт in-memory реализацию StatusHistoryRepository.
func NewStatusHistoryRepository() domain.StatusHistoryRepository {
	return &statusHistoryRepositoryInMemory{events: make(map[string][]domain.StatusEvent)}
}

// Append добавляет событие в историю заказа.
func (r *statusHistoryRepositoryInMemory) Append(_ context.Context, event domain.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.OrderID] = append(r.events[event.OrderID], event)

	sort.SliceStable(r.events[event.OrderID], func(i, j int) bool {
		return r.events[event.OrderID][i].Occurred.Before(r.events[event.OrderID][j].Occurred)
	})

	return nil
}

// List возвращает события заказа в хронологическом порядке.
func (r *statusHistoryRepositoryInMemory) List(_ context.Context, orderID string) ([]domain.StatusEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[orderID]
	result := make([]domain.StatusEvent, len(events))
	copy(result, events)
	return result, nil
}

var _ domain.StatusHistoryRepository = (*statusHistoryRepositoryInMemory)(nil)
