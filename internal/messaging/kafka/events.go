package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Sale события
	EventTypeSaleCommitted EventType = "sale.committed"
	EventTypeSaleVoided    EventType = "sale.voided"
	EventTypeSaleEdited    EventType = "sale.edited"

	// Order события
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderDeleted       EventType = "order.deleted"
)

// Topics для Kafka
const (
	TopicSaleEvents  = "minimarket.sale.events"
	TopicOrderEvents = "minimarket.order.events"
)

// SaleEvent представляет событие продажи
type SaleEvent struct {
	EventType  EventType              `json:"event_type"`
	SaleID     string                 `json:"sale_id"`
	TotalMinor int64                  `json:"total_minor"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// OrderEvent представляет событие заказа поставщику
type OrderEvent struct {
	EventType  EventType `json:"event_type"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	TotalMinor int64     `json:"total_minor"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewSaleEvent создает новое событие продажи
func NewSaleEvent(eventType EventType, saleID string, totalMinor int64, metadata map[string]interface{}) *SaleEvent {
	return &SaleEvent{
		EventType:  eventType,
		SaleID:     saleID,
		TotalMinor: totalMinor,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, status string, totalMinor int64) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		Status:     status,
		TotalMinor: totalMinor,
		Timestamp:  time.Now(),
	}
}
