package domain

import "time"

// PaymentMethod описывает способ оплаты продажи.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Valid проверяет, что способ оплаты относится к поддерживаемым значениям.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	default:
		return false
	}
}

// SaleLine — снимок строки зафиксированной продажи, отвязанный от живой
// композиции и от последующих изменений каталожных цен.
type SaleLine struct {
	ProductID  string
	Name       string
	Qty        int32
	PriceMinor int64
}

// LineTotal возвращает стоимость строки.
func (l SaleLine) LineTotal() int64 {
	return int64(l.Qty) * l.PriceMinor
}

// Sale агрегирует зафиксированную продажу и её строки.
type Sale struct {
	ID            string
	Customer      Customer
	PaymentMethod PaymentMethod
	Notes         string
	// TotalMinor — снимок суммы на момент фиксации.
	TotalMinor int64
	Lines      []SaleLine
	CreatedAt  time.Time
}

// ValidateInvariants проверяет базовые инварианты продажи и возвращает список замечаний.
func (s *Sale) ValidateInvariants() []error {
	var errs []error

	if !s.PaymentMethod.Valid() {
		errs = append(errs, ErrPaymentMethodInvalid)
	}
	if len(s.Lines) == 0 {
		errs = append(errs, ErrEmptyTransaction)
	}

	// Сверяем снимок суммы с суммой строк: qty * price.
	var calc int64
	for _, line := range s.Lines {
		if line.Qty <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if line.PriceMinor <= 0 {
			errs = append(errs, ErrPriceInvalid)
		}
		calc += line.LineTotal()
	}
	if calc != s.TotalMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}

// SaleUpdate описывает редактирование метаданных продажи. Строки и остатки
// при редактировании не затрагиваются. Nil-поле означает "не менять".
type SaleUpdate struct {
	Customer      *Customer
	PaymentMethod *PaymentMethod
	Notes         *string
}
