package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RetailMetrics содержит метрики продаж и заказов поставщикам.
type RetailMetrics struct {
	// Счётчики операций продаж
	salesCommitted prometheus.Counter
	salesVoided    prometheus.Counter
	stockConflicts prometheus.Counter

	// Счётчики операций заказов
	ordersCreated    prometheus.Counter
	ordersDeleted    prometheus.Counter
	orderTransitions *prometheus.CounterVec

	// Гистограмма времени фиксации продажи
	commitDuration prometheus.Histogram

	// Gauge для товаров ниже минимального остатка
	lowStockProducts prometheus.Gauge
}

// NewRetailMetrics создаёт новый экземпляр метрик магазина.
func NewRetailMetrics() *RetailMetrics {
	return newRetailMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newRetailMetricsWithRegisterer(registerer prometheus.Registerer) *RetailMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &RetailMetrics{
		salesCommitted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "minimarket_sales_committed_total",
			Help: "Total number of sales committed",
		}),
		salesVoided: registerCounter(registerer, prometheus.CounterOpts{
			Name: "minimarket_sales_voided_total",
			Help: "Total number of sales voided with stock restored",
		}),
		stockConflicts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "minimarket_stock_conflicts_total",
			Help: "Total number of operations rejected by stock checks",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "minimarket_orders_created_total",
			Help: "Total number of purchase orders created",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "minimarket_orders_deleted_total",
			Help: "Total number of pending purchase orders deleted",
		}),
		orderTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "minimarket_order_transitions_total",
			Help: "Total number of purchase order status transitions",
		}, []string{"status"}),
		commitDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "minimarket_sale_commit_duration_seconds",
			Help:    "Duration of sale commit operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		lowStockProducts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "minimarket_low_stock_products",
			Help: "Number of products at or below their minimum stock level",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordSaleCommitted увеличивает счётчик зафиксированных продаж.
func (m *RetailMetrics) RecordSaleCommitted() {
	m.salesCommitted.Inc()
}

// RecordSaleVoided увеличивает счётчик аннулированных продаж.
func (m *RetailMetrics) RecordSaleVoided() {
	m.salesVoided.Inc()
}

// RecordStockConflict увеличивает счётчик отказов по остаткам.
func (m *RetailMetrics) RecordStockConflict() {
	m.stockConflicts.Inc()
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *RetailMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *RetailMetrics) RecordOrderDeleted() {
	m.ordersDeleted.Inc()
}

// RecordOrderTransition увеличивает счётчик переходов в указанный статус.
func (m *RetailMetrics) RecordOrderTransition(status string) {
	m.orderTransitions.WithLabelValues(status).Inc()
}

// RecordCommitDuration записывает время фиксации продажи.
func (m *RetailMetrics) RecordCommitDuration(duration time.Duration) {
	m.commitDuration.Observe(duration.Seconds())
}

// SetLowStockProducts выставляет число товаров с низким остатком.
func (m *RetailMetrics) SetLowStockProducts(count int) {
	m.lowStockProducts.Set(float64(count))
}
