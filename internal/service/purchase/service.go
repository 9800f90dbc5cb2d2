package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"minimarket/internal/domain"
)

// Service реализует domain.SupplierService поверх хранилища заказов.
// Переходы статуса проверяются против сохранённого состояния, а не против
// того, что видел клиент, поэтому устаревший клиент получает отказ.
type Service struct {
	orders  domain.PurchaseOrderRepository
	history domain.StatusHistoryRepository
}

// NewService создаёт сервис заказов поставщикам.
func NewService(orders domain.PurchaseOrderRepository, history domain.StatusHistoryRepository) *Service {
	return &Service{orders: orders, history: history}
}

// CreateOrder сохраняет заказ. Пустой статус трактуется как pending.
func (s *Service) CreateOrder(ctx context.Context, order domain.PurchaseOrder) (domain.PurchaseOrder, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = order.CreatedAt

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.PurchaseOrder{}, errors.Join(errs...)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return domain.PurchaseOrder{}, err
	}

	if err := s.history.Append(ctx, domain.StatusEvent{
		OrderID:  order.ID,
		To:       order.Status,
		Occurred: order.CreatedAt,
	}); err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("append status history: %w", err)
	}

	return order, nil
}

// GetOrder возвращает заказ со строками.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.PurchaseOrder, error) {
	return s.orders.Get(ctx, id)
}

// ListOrders возвращает заказы, новые первыми.
func (s *Service) ListOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	return s.orders.List(ctx)
}

// UpdateOrderStatus выполняет переход статуса против сохранённого состояния.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, next domain.OrderStatus) error {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}

	if !order.Status.CanTransitionTo(next) {
		return &domain.IllegalTransitionError{From: order.Status, To: next}
	}

	from := order.Status
	order.Status = next
	order.UpdatedAt = time.Now().UTC()

	if err := s.orders.Save(ctx, order); err != nil {
		return err
	}

	if err := s.history.Append(ctx, domain.StatusEvent{
		OrderID:  order.ID,
		From:     from,
		To:       next,
		Occurred: order.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("append status history: %w", err)
	}

	return nil
}

// DeleteOrder удаляет заказ, но только пока он в pending. История статусов
// сохраняется для аудита даже после удаления заказа.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}

	if order.Status != domain.OrderStatusPending {
		return &domain.IllegalTransitionError{From: order.Status}
	}

	return s.orders.Delete(ctx, id)
}

// OrderHistory возвращает историю статусов заказа в хронологическом порядке.
func (s *Service) OrderHistory(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.history.List(ctx, orderID)
}

var _ domain.SupplierService = (*Service)(nil)
