package domain

import "time"

// OrderStatus описывает жизненный цикл заказа поставщику.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ожидает подтверждения поставщика.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed — поставщик подтвердил заказ.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusInTransit — товары в пути. Переход в этот статус выполняется
	// вне моделируемых операторских операций (его инициирует поставщик).
	OrderStatusInTransit OrderStatus = "in_transit"
	// OrderStatusDelivered — заказ доставлен; терминальный статус.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён; терминальный статус.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// allowedTransitions задаёт допустимые операторские переходы. Из confirmed
// переходов нет, и в in_transit изнутри системы попасть нельзя — этот разрыв
// сохранён намеренно, пока поставщики не подтвердят обратное.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusInTransit: {OrderStatusDelivered},
}

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal сообщает, завершён ли жизненный цикл заказа.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo проверяет допустимость перехода в next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderLine — снимок строки заказа поставщику. Пустой ProductID вместе с
// IsNew помечает товар, которого ещё нет в каталоге.
type OrderLine struct {
	ProductID  string
	Name       string
	Qty        int32
	PriceMinor int64
	IsNew      bool
}

// LineTotal возвращает стоимость строки.
func (l OrderLine) LineTotal() int64 {
	return int64(l.Qty) * l.PriceMinor
}

// PurchaseOrder агрегирует заказ поставщику, его строки и статус.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     OrderStatus
	TotalMinor int64
	Lines      []OrderLine
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *PurchaseOrder) ValidateInvariants() []error {
	var errs []error

	if o.SupplierID == "" {
		errs = append(errs, ErrSupplierRequired)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrEmptyTransaction)
	}

	var calc int64
	for _, line := range o.Lines {
		if line.Qty <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if line.PriceMinor <= 0 {
			errs = append(errs, ErrPriceInvalid)
		}
		if line.IsNew && line.Name == "" {
			errs = append(errs, ErrNameRequired)
		}
		calc += line.LineTotal()
	}
	if calc != o.TotalMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
