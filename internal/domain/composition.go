package domain

import "strings"

// Composition — незавершённая корзина продажи или заказ поставщику.
// Строки хранятся под ключом слияния, поэтому один товар никогда не
// появляется двумя строками с разными ценами.
//
// Экземпляр принадлежит одной сессии оператора и не рассчитан на
// конкурентное использование из нескольких горутин.
type Composition struct {
	lines map[string]*LineItem
	order []string
}

// NewComposition возвращает пустую композицию.
func NewComposition() *Composition {
	return &Composition{lines: make(map[string]*LineItem)}
}

// AddLine добавляет кандидата либо сливает его с существующей строкой:
// количество складывается, цена перезаписывается последней введённой.
// При заданном StockCeiling суммарное количество проверяется против
// известного остатка; отказ не меняет композицию.
func (c *Composition) AddLine(cand Candidate) error {
	if cand.Qty < 1 {
		return ErrQuantityInvalid
	}
	if cand.PriceMinor <= 0 {
		return ErrPriceInvalid
	}
	if cand.IsNew && strings.TrimSpace(cand.Name) == "" {
		return ErrNameRequired
	}

	key := cand.MergeKey()
	existing := c.lines[key]

	var inCart int32
	if existing != nil {
		inCart = existing.Qty
	}
	if cand.StockCeiling > 0 && inCart+cand.Qty > cand.StockCeiling {
		return &StockError{
			ProductID: cand.ProductID,
			Requested: cand.Qty,
			InCart:    inCart,
			Available: cand.StockCeiling,
		}
	}

	if existing != nil {
		existing.Qty += cand.Qty
		existing.PriceMinor = cand.PriceMinor
		return nil
	}

	c.lines[key] = &LineItem{
		Key:        key,
		ProductID:  cand.ProductID,
		Name:       cand.Name,
		Qty:        cand.Qty,
		PriceMinor: cand.PriceMinor,
		IsNew:      cand.IsNew,
	}
	c.order = append(c.order, key)
	return nil
}

// UpdateQty заменяет количество строки. Значение <= 0 удаляет строку —
// это документированное удобство, а не ошибка. Ненулевой ceiling включает
// проверку остатка. Отсутствующий ключ игнорируется.
func (c *Composition) UpdateQty(key string, qty int32, ceiling int32) error {
	line, ok := c.lines[key]
	if !ok {
		return nil
	}
	if qty <= 0 {
		c.RemoveLine(key)
		return nil
	}
	if ceiling > 0 && qty > ceiling {
		return &StockError{
			ProductID: line.ProductID,
			Requested: qty,
			InCart:    line.Qty,
			Available: ceiling,
		}
	}
	line.Qty = qty
	return nil
}

// RemoveLine удаляет строку безусловно; отсутствующий ключ не считается ошибкой.
func (c *Composition) RemoveLine(key string) {
	if _, ok := c.lines[key]; !ok {
		return
	}
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Line возвращает копию строки по ключу.
func (c *Composition) Line(key string) (LineItem, bool) {
	line, ok := c.lines[key]
	if !ok {
		return LineItem{}, false
	}
	return *line, true
}

// Lines возвращает копии строк в порядке добавления.
func (c *Composition) Lines() []LineItem {
	result := make([]LineItem, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, *c.lines[key])
	}
	return result
}

// Len возвращает количество строк.
func (c *Composition) Len() int {
	return len(c.lines)
}

// TotalMinor возвращает сумму композиции одним проходом по строкам.
func (c *Composition) TotalMinor() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// Clear опустошает композицию; используется после фиксации или при сбросе.
func (c *Composition) Clear() {
	c.lines = make(map[string]*LineItem)
	c.order = nil
}
