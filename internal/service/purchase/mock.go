package purchase

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"minimarket/internal/domain"
)

// MockSupplierService — управляемая реализация domain.SupplierService для тестов.
type MockSupplierService struct {
	Orders map[string]domain.PurchaseOrder

	CreateErr error
	UpdateErr error
	DeleteErr error

	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewMockSupplierService создаёт пустой мок-сервис заказов.
func NewMockSupplierService() *MockSupplierService {
	return &MockSupplierService{Orders: make(map[string]domain.PurchaseOrder)}
}

func (m *MockSupplierService) CreateOrder(_ context.Context, order domain.PurchaseOrder) (domain.PurchaseOrder, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return domain.PurchaseOrder{}, m.CreateErr
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	m.Orders[order.ID] = order
	return order, nil
}

func (m *MockSupplierService) GetOrder(_ context.Context, id string) (domain.PurchaseOrder, error) {
	order, ok := m.Orders[id]
	if !ok {
		return domain.PurchaseOrder{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (m *MockSupplierService) ListOrders(_ context.Context) ([]domain.PurchaseOrder, error) {
	out := make([]domain.PurchaseOrder, 0, len(m.Orders))
	for _, order := range m.Orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockSupplierService) UpdateOrderStatus(_ context.Context, id string, next domain.OrderStatus) error {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	order, ok := m.Orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(next) {
		return &domain.IllegalTransitionError{From: order.Status, To: next}
	}
	order.Status = next
	m.Orders[id] = order
	return nil
}

func (m *MockSupplierService) DeleteOrder(_ context.Context, id string) error {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	order, ok := m.Orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return &domain.IllegalTransitionError{From: order.Status}
	}
	delete(m.Orders, id)
	return nil
}

var _ domain.SupplierService = (*MockSupplierService)(nil)
