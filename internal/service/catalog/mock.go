package catalog

import (
	"context"

	"minimarket/internal/domain"
)

// AdjustCall фиксирует один вызов AdjustStock для проверок в тестах.
type AdjustCall struct {
	ProductID string
	Delta     int32
}

// MockService — конфигурируемая заглушка CatalogService для тестов.
type MockService struct {
	Products map[string]domain.Product

	GetErr error
	// AdjustErrs задаёт ошибку на конкретный по счёту вызов AdjustStock (с нуля).
	AdjustErrs map[int]error

	GetCalls    int
	AdjustCalls []AdjustCall
}

// NewMockService возвращает mock с успешным сценарием по умолчанию.
func NewMockService() *MockService {
	return &MockService{
		Products:   make(map[string]domain.Product),
		AdjustErrs: make(map[int]error),
	}
}

// GetProduct возвращает товар из настроенной карты и считает вызовы.
func (m *MockService) GetProduct(_ context.Context, id string) (domain.Product, error) {
	m.GetCalls++
	if m.GetErr != nil {
		return domain.Product{}, m.GetErr
	}
	product, ok := m.Products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// AdjustStock записывает вызов и применяет настроенную ошибку либо меняет остаток.
func (m *MockService) AdjustStock(_ context.Context, id string, delta int32) error {
	idx := len(m.AdjustCalls)
	m.AdjustCalls = append(m.AdjustCalls, AdjustCall{ProductID: id, Delta: delta})

	if err, ok := m.AdjustErrs[idx]; ok {
		return err
	}

	product, ok := m.Products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	next := product.StockOnHand + delta
	if next < 0 {
		return &domain.StockError{ProductID: id, Requested: -delta, Available: product.StockOnHand}
	}
	product.StockOnHand = next
	m.Products[id] = product
	return nil
}

var _ domain.CatalogService = (*MockService)(nil)
