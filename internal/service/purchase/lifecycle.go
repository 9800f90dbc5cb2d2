package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"minimarket/internal/domain"
	"minimarket/internal/messaging/kafka"
	"minimarket/internal/metrics"
)

// Lifecycle оркестрирует составление и жизненный цикл заказа поставщику.
// В отличие от продаж заказ пополняет склад, поэтому потолок по остаткам
// при составлении не применяется, а приёмка товара остаётся вне системы.
type Lifecycle struct {
	catalog   domain.CatalogService
	orders    domain.SupplierService
	suppliers domain.SupplierRepository
	logger    *log.Entry
	metrics   *metrics.RetailMetrics
	producer  *kafka.Producer
}

// NewLifecycle создаёт оркестратор заказов без Kafka-продюсера.
func NewLifecycle(catalog domain.CatalogService, orders domain.SupplierService, suppliers domain.SupplierRepository, logger *log.Entry) *Lifecycle {
	return &Lifecycle{
		catalog:   catalog,
		orders:    orders,
		suppliers: suppliers,
		logger:    logger,
		metrics:   metrics.NewRetailMetrics(),
	}
}

// NewLifecycleWithKafka создаёт оркестратор с публикацией доменных событий.
func NewLifecycleWithKafka(catalog domain.CatalogService, orders domain.SupplierService, suppliers domain.SupplierRepository, logger *log.Entry, producer *kafka.Producer) *Lifecycle {
	l := NewLifecycle(catalog, orders, suppliers, logger)
	l.producer = producer
	return l
}

// NewLifecycleWithoutMetrics нужен в тестах, где регистрация метрик мешает.
func NewLifecycleWithoutMetrics(catalog domain.CatalogService, orders domain.SupplierService, suppliers domain.SupplierRepository, logger *log.Entry) *Lifecycle {
	l := NewLifecycle(catalog, orders, suppliers, logger)
	l.metrics = nil
	return l
}

// AddCatalogLine добавляет в заказ товар каталога. Нулевая договорная цена
// означает закупку по текущей каталожной цене.
func (l *Lifecycle) AddCatalogLine(ctx context.Context, comp *domain.Composition, productID string, qty int32, negotiatedPriceMinor int64) error {
	product, err := l.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product %s: %w", productID, err)
	}

	price := negotiatedPriceMinor
	if price == 0 {
		price = product.PriceMinor
	}

	return comp.AddLine(domain.Candidate{
		ProductID:  product.ID,
		Name:       product.Name,
		Qty:        qty,
		PriceMinor: price,
	})
}

// AddNewProductLine добавляет в заказ товар, которого ещё нет в каталоге.
// Строки с одинаковым нормализованным именем сливаются.
func (l *Lifecycle) AddNewProductLine(comp *domain.Composition, name string, qty int32, priceMinor int64) error {
	return comp.AddLine(domain.Candidate{
		Name:       name,
		Qty:        qty,
		PriceMinor: priceMinor,
		IsNew:      true,
	})
}

// Commit фиксирует составленный заказ за поставщиком в статусе pending.
// Остатки каталога при создании заказа не меняются.
func (l *Lifecycle) Commit(ctx context.Context, comp *domain.Composition, supplierID string) (domain.PurchaseOrder, error) {
	if comp.Len() == 0 {
		return domain.PurchaseOrder{}, domain.ErrEmptyTransaction
	}
	if supplierID == "" {
		return domain.PurchaseOrder{}, domain.ErrSupplierRequired
	}
	if _, err := l.suppliers.Get(ctx, supplierID); err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("get supplier %s: %w", supplierID, err)
	}

	now := time.Now().UTC()
	order := domain.PurchaseOrder{
		ID:         uuid.NewString(),
		SupplierID: supplierID,
		Status:     domain.OrderStatusPending,
		TotalMinor: comp.TotalMinor(),
		Lines:      toOrderLines(comp.Lines()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := l.orders.CreateOrder(ctx, order)
	if err != nil {
		return domain.PurchaseOrder{}, fmt.Errorf("persist order: %w", err)
	}

	comp.Clear()

	if l.metrics != nil {
		l.metrics.RecordOrderCreated()
	}
	l.publishOrderEvent(kafka.EventTypeOrderCreated, created)

	l.logger.WithField("order_id", created.ID).
		WithField("supplier_id", created.SupplierID).
		WithField("total_minor", created.TotalMinor).
		Info("purchase order committed")

	return created, nil
}

// UpdateStatus выполняет операторский переход статуса заказа.
func (l *Lifecycle) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) error {
	if err := l.orders.UpdateOrderStatus(ctx, orderID, next); err != nil {
		if domain.IsIllegalTransition(err) {
			l.logger.WithField("order_id", orderID).
				WithField("next_status", string(next)).
				WithError(err).Warn("status transition rejected")
		}
		return err
	}

	if l.metrics != nil {
		l.metrics.RecordOrderTransition(string(next))
	}

	order, err := l.orders.GetOrder(ctx, orderID)
	if err == nil {
		l.publishOrderEvent(kafka.EventTypeOrderStatusChanged, order)
	}

	l.logger.WithField("order_id", orderID).
		WithField("status", string(next)).
		Info("purchase order status updated")
	return nil
}

// Delete удаляет заказ. Разрешено только из pending; остатки не трогаются.
func (l *Lifecycle) Delete(ctx context.Context, orderID string) error {
	if err := l.orders.DeleteOrder(ctx, orderID); err != nil {
		return err
	}

	if l.metrics != nil {
		l.metrics.RecordOrderDeleted()
	}

	l.logger.WithField("order_id", orderID).Info("purchase order deleted")
	return nil
}

func (l *Lifecycle) publishOrderEvent(eventType kafka.EventType, order domain.PurchaseOrder) {
	if l.producer == nil {
		return
	}
	event := kafka.NewOrderEvent(eventType, order.ID, string(order.Status), order.TotalMinor)
	if err := l.producer.PublishEvent(kafka.TopicOrderEvents, order.ID, event); err != nil {
		l.logger.WithField("order_id", order.ID).WithError(err).Warn("failed to publish order event")
	}
}

func toOrderLines(lines []domain.LineItem) []domain.OrderLine {
	out := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, domain.OrderLine{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Qty:        line.Qty,
			PriceMinor: line.PriceMinor,
			IsNew:      line.IsNew,
		})
	}
	return out
}
