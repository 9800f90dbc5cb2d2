package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"minimarket/internal/domain"
)

// Service — реализация SalesService поверх репозитория продаж.
type Service struct {
	repo domain.SaleRepository
}

// NewService создаёт хранилище продаж поверх репозитория.
func NewService(repo domain.SaleRepository) *Service {
	return &Service{repo: repo}
}

// CreateSale сохраняет снимок продажи, присваивая ID при необходимости.
func (s *Service) CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}
	if errs := sale.ValidateInvariants(); len(errs) > 0 {
		return domain.Sale{}, errors.Join(errs...)
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

// GetSale возвращает продажу со строками.
func (s *Service) GetSale(ctx context.Context, id string) (domain.Sale, error) {
	return s.repo.Get(ctx, id)
}

// ListSales возвращает продажи, новые первыми.
func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.List(ctx)
}

// UpdateSale применяет редактирование метаданных.
func (s *Service) UpdateSale(ctx context.Context, id string, upd domain.SaleUpdate) error {
	if upd.PaymentMethod != nil && !upd.PaymentMethod.Valid() {
		return domain.ErrPaymentMethodInvalid
	}
	return s.repo.UpdateMeta(ctx, id, upd)
}

// DeleteSale удаляет продажу.
func (s *Service) DeleteSale(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ domain.SalesService = (*Service)(nil)
