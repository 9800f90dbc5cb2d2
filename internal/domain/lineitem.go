package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const newProductKeyPrefix = "new:"

// LineItem представляет одну строку корзины продажи или заказа поставщику.
type LineItem struct {
	// Key — ключ слияния: ID товара каталога либо синтетический ключ нового товара.
	Key string
	// ProductID — идентификатор товара каталога; пустой для новых товаров.
	ProductID string
	// Name — отображаемое название (копия из каталога либо введённое оператором).
	Name string
	// Qty — количество единиц, всегда >= 1.
	Qty int32
	// PriceMinor — цена за единицу в минимальных денежных единицах.
	// Для продаж это снимок каталожной цены, для заказов — договорная цена.
	PriceMinor int64
	// IsNew помечает строку с товаром, которого ещё нет в каталоге.
	IsNew bool
}

// LineTotal возвращает стоимость строки. Значение всегда вычисляется, не хранится.
func (li LineItem) LineTotal() int64 {
	return int64(li.Qty) * li.PriceMinor
}

// Candidate описывает строку-кандидата для добавления в композицию.
type Candidate struct {
	ProductID  string
	Name       string
	Qty        int32
	PriceMinor int64
	IsNew      bool
	// StockCeiling — известный остаток товара для оптимистичной проверки
	// при продаже; 0 отключает проверку (заказы поставщику).
	StockCeiling int32
}

// MergeKey вычисляет ключ слияния кандидата.
func (c Candidate) MergeKey() string {
	if c.IsNew {
		return NewProductKey(c.Name)
	}
	return c.ProductID
}

// NewProductKey возвращает стабильный синтетический ключ для товара вне
// каталога: повторный ввод того же названия в рамках одного заказа сливается
// в одну строку.
func NewProductKey(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	sum := sha256.Sum256([]byte(normalized))
	return newProductKeyPrefix + hex.EncodeToString(sum[:])[:12]
}
