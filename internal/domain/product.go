package domain

import "time"

// Product — товар каталога с текущим остатком.
type Product struct {
	ID          string
	Name        string
	Description string
	// PriceMinor — каталожная цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	// StockOnHand — текущий остаток; каталог не допускает отрицательных значений.
	StockOnHand int32
	// StockMinimum — порог, ниже которого товар попадает в список на пополнение.
	StockMinimum int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock сообщает, нуждается ли товар в пополнении.
func (p *Product) LowStock() bool {
	return p.StockOnHand <= p.StockMinimum
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if p.PriceMinor <= 0 {
		errs = append(errs, ErrPriceInvalid)
	}
	if p.StockOnHand < 0 {
		errs = append(errs, ErrInsufficientStock)
	}

	return errs
}

// Customer — снимок данных покупателя, сохраняемый вместе с продажей.
// Все поля опциональны: розничная продажа возможна без идентификации клиента.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Supplier — зарегистрированный поставщик.
type Supplier struct {
	ID          string
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	CreatedAt   time.Time
}

// ValidateInvariants проверяет обязательные поля поставщика.
func (s *Supplier) ValidateInvariants() []error {
	var errs []error

	if s.CompanyName == "" {
		errs = append(errs, ErrNameRequired)
	}

	return errs
}
