package sales

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

// Lifecycle управляет жизненным циклом продажи: набор корзины, фиксация со
// списанием остатков и аннулирование с их возвратом.
//
// Каталог — единственный авторитет по остаткам: проверка при добавлении
// строки оптимистична и служит только для обратной связи оператору,
// окончательное решение принимает AdjustStock при фиксации.
type Lifecycle struct {
	catalog  domain.CatalogService
	sales    domain.SalesService
	logger   *log.Entry
	metrics  *metrics.RetailMetrics
	producer *kafka.Producer // опциональный Kafka producer для событий продаж
}

// NewLifecycle создаёт рабочий экземпляр жизненного цикла продаж.
func NewLifecycle(catalog domain.CatalogService, sales domain.SalesService, logger *log.Entry) *Lifecycle {
	if logger == nil {
		logger = log.New().WithField("component", "sales")
	}
	return &Lifecycle{
		catalog: catalog,
		sales:   sales,
		logger:  logger,
		metrics: metrics.NewRetailMetrics(),
	}
}

// NewLifecycleWithKafka создаёт жизненный цикл с producer'ом событий.
func NewLifecycleWithKafka(catalog domain.CatalogService, sales domain.SalesService, producer *kafka.Producer, logger *log.Entry) *Lifecycle {
	l := NewLifecycle(catalog, sales, logger)
	l.producer = producer
	return l
}

// NewLifecycleWithoutMetrics создаёт жизненный цикл без метрик (для тестов).
func NewLifecycleWithoutMetrics(catalog domain.CatalogService, sales domain.SalesService, logger *log.Entry) *Lifecycle {
	l := NewLifecycle(catalog, sales, logger)
	l.metrics = nil
	return l
}

// AddLine добавляет товар каталога в корзину. Цена снимается с каталога на
// момент выбора, остаток используется как потолок для слияния строк.
func (l *Lifecycle) AddLine(ctx context.Context, comp *domain.Composition, productID string, qty int32) error {
	product, err := l.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	err = comp.AddLine(domain.Candidate{
		ProductID:    product.ID,
		Name:         product.Name,
		Qty:          qty,
		PriceMinor:   product.PriceMinor,
		StockCeiling: product.StockOnHand,
	})
	if domain.IsStock(err) && l.metrics != nil {
		l.metrics.RecordStockConflict()
	}
	return err
}

// UpdateQty заменяет количество строки корзины с проверкой против свежего
// остатка каталога. Нулевое количество удаляет строку.
func (l *Lifecycle) UpdateQty(ctx context.Context, comp *domain.Composition, productID string, qty int32) error {
	if qty <= 0 {
		return comp.UpdateQty(productID, qty, 0)
	}
	product, err := l.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	return comp.UpdateQty(productID, qty, product.StockOnHand)
}

// Commit фиксирует продажу: списывает остатки по каждой строке и сохраняет
// снимок. Списания выполняются по принципу "всё или ничего" — отказ на любой
// строке компенсируется возвратом уже применённых списаний, корзина остаётся
// нетронутой и пригодной для повторной попытки.
func (l *Lifecycle) Commit(ctx context.Context, comp *domain.Composition, customer domain.Customer, method domain.PaymentMethod, notes string) (domain.Sale, error) {
	start := time.Now()
	defer func() {
		if l.metrics != nil {
			l.metrics.RecordCommitDuration(time.Since(start))
		}
	}()

	if !method.Valid() {
		return domain.Sale{}, domain.ErrPaymentMethodInvalid
	}
	if comp.Len() == 0 {
		return domain.Sale{}, domain.ErrEmptyTransaction
	}

	lines := comp.Lines()
	if err := l.decrementStock(ctx, lines); err != nil {
		if domain.IsStock(err) && l.metrics != nil {
			l.metrics.RecordStockConflict()
		}
		return domain.Sale{}, err
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		ID:            uuid.NewString(),
		Customer:      customer,
		PaymentMethod: method,
		Notes:         notes,
		TotalMinor:    comp.TotalMinor(),
		Lines:         toSaleLines(lines),
		CreatedAt:     now,
	}

	persisted, err := l.sales.CreateSale(ctx, sale)
	if err != nil {
		// Продажа не сохранилась — возвращаем уже списанные остатки.
		l.restoreStock(ctx, lines, len(lines))
		l.logger.WithError(err).Error("failed to persist sale")
		return domain.Sale{}, fmt.Errorf("persist sale: %w", err)
	}

	comp.Clear()
	if l.metrics != nil {
		l.metrics.RecordSaleCommitted()
	}
	l.publishSaleEvent(kafka.EventTypeSaleCommitted, persisted)
	l.logger.WithFields(log.Fields{
		"sale_id":     persisted.ID,
		"total_minor": persisted.TotalMinor,
		"lines":       len(persisted.Lines),
	}).Info("sale committed")

	return persisted, nil
}

// Void аннулирует сохранённую продажу: возвращает остатки по всем строкам и
// удаляет запись. Возврат выполняется до удаления, чтобы сбой оставлял
// остатки нетронутыми, а не потерянными.
func (l *Lifecycle) Void(ctx context.Context, saleID string) error {
	sale, err := l.sales.GetSale(ctx, saleID)
	if err != nil {
		return err
	}

	for i, line := range sale.Lines {
		if err := l.catalog.AdjustStock(ctx, line.ProductID, line.Qty); err != nil {
			// Откатываем уже возвращённые строки и оставляем продажу как есть.
			l.decrementRestored(ctx, sale.Lines[:i])
			l.logger.WithError(err).WithFields(log.Fields{
				"sale_id":    saleID,
				"product_id": line.ProductID,
			}).Error("stock restore failed, sale left intact")
			return fmt.Errorf("restore stock for product %s: %w", line.ProductID, err)
		}
	}

	if err := l.sales.DeleteSale(ctx, saleID); err != nil {
		// Остатки уже возвращены, а продажа осталась — компенсируем возврат,
		// иначе остатки разойдутся с историей продаж.
		l.decrementRestored(ctx, sale.Lines)
		l.logger.WithError(err).WithField("sale_id", saleID).Error("sale deletion failed after stock restore")
		return fmt.Errorf("%w: delete sale %s: %v", domain.ErrInconsistentState, saleID, err)
	}

	if l.metrics != nil {
		l.metrics.RecordSaleVoided()
	}
	l.publishSaleEvent(kafka.EventTypeSaleVoided, sale)
	l.logger.WithField("sale_id", saleID).Info("sale voided, stock restored")
	return nil
}

// Edit применяет редактирование метаданных продажи. Строки и остатки не
// затрагиваются: изменение количеств после фиксации не поддерживается.
func (l *Lifecycle) Edit(ctx context.Context, saleID string, upd domain.SaleUpdate) error {
	if upd.PaymentMethod != nil && !upd.PaymentMethod.Valid() {
		return domain.ErrPaymentMethodInvalid
	}
	return l.sales.UpdateSale(ctx, saleID, upd)
}

// decrementStock списывает остатки построчно; первый отказ компенсируется
// возвратом строк [0..i) и прерывает фиксацию.
func (l *Lifecycle) decrementStock(ctx context.Context, lines []domain.LineItem) error {
	for i, line := range lines {
		if err := l.catalog.AdjustStock(ctx, line.ProductID, -line.Qty); err != nil {
			l.restoreStock(ctx, lines, i)
			return fmt.Errorf("decrement stock for product %s: %w", line.ProductID, err)
		}
	}
	return nil
}

func (l *Lifecycle) restoreStock(ctx context.Context, lines []domain.LineItem, upTo int) {
	for _, line := range lines[:upTo] {
		if err := l.catalog.AdjustStock(ctx, line.ProductID, line.Qty); err != nil {
			l.logger.WithError(err).WithField("product_id", line.ProductID).Error("compensating stock restore failed")
		}
	}
}

func (l *Lifecycle) decrementRestored(ctx context.Context, lines []domain.SaleLine) {
	for _, line := range lines {
		if err := l.catalog.AdjustStock(ctx, line.ProductID, -line.Qty); err != nil {
			l.logger.WithError(err).WithField("product_id", line.ProductID).Error("compensating stock decrement failed")
		}
	}
}

func (l *Lifecycle) publishSaleEvent(eventType kafka.EventType, sale domain.Sale) {
	if l.producer == nil {
		return
	}
	event := kafka.NewSaleEvent(eventType, sale.ID, sale.TotalMinor, map[string]interface{}{
		"payment_method": string(sale.PaymentMethod),
		"lines":          len(sale.Lines),
	})
	if err := l.producer.PublishEvent(kafka.TopicSaleEvents, sale.ID, event); err != nil {
		// Kafka опциональна, сбой публикации не прерывает операцию.
		l.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"sale_id":    sale.ID,
		}).Warn("failed to publish sale event to kafka")
	}
}

func toSaleLines(lines []domain.LineItem) []domain.SaleLine {
	result := make([]domain.SaleLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, domain.SaleLine{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Qty:        line.Qty,
			PriceMinor: line.PriceMinor,
		})
	}
	return result
}
