package domain

import "time"

// StatusEvent описывает одно изменение статуса заказа поставщику.
type StatusEvent struct {
	OrderID  string
	From     OrderStatus
	To       OrderStatus
	Occurred time.Time
}
