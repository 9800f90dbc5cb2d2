package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка некорректного количества в строке (< 1).
	ErrQuantityInvalid = errors.New("line quantity must be greater than zero")
	// Ошибка некорректной цены за единицу (<= 0).
	ErrPriceInvalid = errors.New("unit price must be greater than zero")
	// Ошибка отсутствующего названия для нового товара в заказе поставщику.
	ErrNameRequired = errors.New("product name is required")
	// Ошибка отсутствующего поставщика при оформлении заказа.
	ErrSupplierRequired = errors.New("supplier_id is required")
	// Ошибка некорректного способа оплаты продажи.
	ErrPaymentMethodInvalid = errors.New("payment method must be one of cash, card, transfer")
	// Ошибка несоответствия снимка суммы и сумм строк.
	ErrAmountMismatch = errors.New("total does not match lines sum")
	// ErrEmptyTransaction возвращается при попытке зафиксировать пустую корзину или заказ.
	ErrEmptyTransaction = errors.New("transaction must contain at least one line")
	// ErrProductNotFound возвращается, если товар отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrSaleNotFound возвращается, если продажа не найдена.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrOrderNotFound возвращается, если заказ поставщику не найден.
	ErrOrderNotFound = errors.New("purchase order not found")
	// ErrSupplierNotFound возвращается, если поставщик не зарегистрирован.
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrInsufficientStock — запрошенное количество превышает доступный остаток.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrIllegalTransition — запрошенный переход статуса вне допустимого набора.
	ErrIllegalTransition = errors.New("status transition is not allowed")
	// ErrInconsistentState — удаление продажи и возврат остатков не подтверждены вместе.
	ErrInconsistentState = errors.New("sale deletion and stock restore disagree")
	// ErrVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrVersionConflict = errors.New("record version conflict")
)

// StockError уточняет отказ по остаткам: сколько запрошено, сколько уже в
// корзине и сколько доступно по данным каталога.
type StockError struct {
	ProductID string
	Requested int32
	InCart    int32
	Available int32
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, in cart %d, available %d",
		e.ProductID, e.Requested, e.InCart, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// IllegalTransitionError уточняет отклонённый переход статуса заказа.
// Пустой To означает попытку удаления заказа.
type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("cannot delete order in status %q", e.From)
	}
	return fmt.Sprintf("transition %q -> %q is not allowed", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error { return ErrIllegalTransition }

// IsValidation проверяет, относится ли ошибка к отказам валидации входных данных.
func IsValidation(err error) bool {
	return errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrPriceInvalid) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrSupplierRequired) ||
		errors.Is(err, ErrPaymentMethodInvalid)
}

// IsStock проверяет, является ли ошибка отказом по остаткам.
func IsStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}

// IsIllegalTransition проверяет, является ли ошибка отказом статусной машины.
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrIllegalTransition)
}

// IsNotFound проверяет, относится ли ошибка к отсутствующим записям.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrSaleNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrSupplierNotFound)
}
