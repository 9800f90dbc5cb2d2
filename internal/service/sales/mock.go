package sales

import (
	"context"

	"minimarket/internal/domain"
)

// MockSalesService — конфигурируемая заглушка SalesService для тестов.
type MockSalesService struct {
	Sales map[string]domain.Sale

	CreateErr error
	DeleteErr error
	UpdateErr error

	CreateCalls int
	DeleteCalls int
	UpdateCalls int
}

// NewMockSalesService возвращает mock с успешным сценарием по умолчанию.
func NewMockSalesService() *MockSalesService {
	return &MockSalesService{Sales: make(map[string]domain.Sale)}
}

// CreateSale сохраняет продажу в карту либо возвращает настроенную ошибку.
func (m *MockSalesService) CreateSale(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return domain.Sale{}, m.CreateErr
	}
	m.Sales[sale.ID] = sale
	return sale, nil
}

// GetSale возвращает продажу из карты.
func (m *MockSalesService) GetSale(_ context.Context, id string) (domain.Sale, error) {
	sale, ok := m.Sales[id]
	if !ok {
		return domain.Sale{}, domain.ErrSaleNotFound
	}
	return sale, nil
}

// ListSales возвращает все продажи без определённого порядка.
func (m *MockSalesService) ListSales(_ context.Context) ([]domain.Sale, error) {
	result := make([]domain.Sale, 0, len(m.Sales))
	for _, sale := range m.Sales {
		result = append(result, sale)
	}
	return result, nil
}

// UpdateSale применяет редактирование метаданных либо настроенную ошибку.
func (m *MockSalesService) UpdateSale(_ context.Context, id string, upd domain.SaleUpdate) error {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	sale, ok := m.Sales[id]
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
	m.Sales[id] = sale
	return nil
}

// DeleteSale удаляет продажу либо возвращает настроенную ошибку.
func (m *MockSalesService) DeleteSale(_ context.Context, id string) error {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(m.Sales, id)
	return nil
}

var _ domain.SalesService = (*MockSalesService)(nil)
