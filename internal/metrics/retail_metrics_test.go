package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRetailMetrics(t *testing.T) {
	metrics := NewRetailMetrics()

	if metrics == nil {
		t.Fatal("NewRetailMetrics should not return nil")
	}

	if metrics.salesCommitted == nil {
		t.Error("salesCommitted counter should not be nil")
	}

	if metrics.salesVoided == nil {
		t.Error("salesVoided counter should not be nil")
	}

	if metrics.stockConflicts == nil {
		t.Error("stockConflicts counter should not be nil")
	}

	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}

	if metrics.ordersDeleted == nil {
		t.Error("ordersDeleted counter should not be nil")
	}

	if metrics.orderTransitions == nil {
		t.Error("orderTransitions counter vec should not be nil")
	}

	if metrics.commitDuration == nil {
		t.Error("commitDuration histogram should not be nil")
	}

	if metrics.lowStockProducts == nil {
		t.Error("lowStockProducts gauge should not be nil")
	}
}

func TestNewRetailMetrics_Rereads(t *testing.T) {
	// Повторный вызов переиспользует уже зарегистрированные коллекторы.
	first := NewRetailMetrics()
	second := NewRetailMetrics()

	if first == nil || second == nil {
		t.Fatal("constructors should not return nil")
	}
	if first.salesCommitted != second.salesCommitted {
		t.Error("expected reuse of already registered counter")
	}
}

func TestRecordSaleCommitted(t *testing.T) {
	reg := prometheus.NewRegistry()

	salesCommitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_sales_committed_total",
		Help: "Test counter",
	})

	reg.MustRegister(salesCommitted)

	metrics := &RetailMetrics{
		salesCommitted: salesCommitted,
	}

	metrics.RecordSaleCommitted()
	metrics.RecordSaleCommitted()

	metric := &dto.Metric{}
	if err := salesCommitted.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordStockConflict(t *testing.T) {
	reg := prometheus.NewRegistry()

	stockConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_stock_conflicts_total",
		Help: "Test counter",
	})

	reg.MustRegister(stockConflicts)

	metrics := &RetailMetrics{
		stockConflicts: stockConflicts,
	}

	metrics.RecordStockConflict()
	metrics.RecordStockConflict()
	metrics.RecordStockConflict()

	metric := &dto.Metric{}
	if err := stockConflicts.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 3.0 {
		t.Errorf("expected counter value 3.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordOrderTransition(t *testing.T) {
	reg := prometheus.NewRegistry()

	orderTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_order_transitions_total",
		Help: "Test counter vec",
	}, []string{"status"})

	reg.MustRegister(orderTransitions)

	metrics := &RetailMetrics{
		orderTransitions: orderTransitions,
	}

	metrics.RecordOrderTransition("confirmed")
	metrics.RecordOrderTransition("confirmed")
	metrics.RecordOrderTransition("cancelled")

	metric := &dto.Metric{}
	if err := orderTransitions.WithLabelValues("confirmed").Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 confirmed transitions, got %f", metric.Counter.GetValue())
	}
}

func TestRecordCommitDuration(t *testing.T) {
	reg := prometheus.NewRegistry()

	commitDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_sale_commit_duration_seconds",
		Help:    "Test histogram",
		Buckets: prometheus.DefBuckets,
	})

	reg.MustRegister(commitDuration)

	metrics := &RetailMetrics{
		commitDuration: commitDuration,
	}

	metrics.RecordCommitDuration(100 * time.Millisecond)
	metrics.RecordCommitDuration(500 * time.Millisecond)
	metrics.RecordCommitDuration(1 * time.Second)

	metric := &dto.Metric{}
	if err := commitDuration.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 samples, got %d", metric.Histogram.GetSampleCount())
	}

	// Сумма приблизительно 0.1 + 0.5 + 1.0 = 1.6
	sum := metric.Histogram.GetSampleSum()
	if sum < 1.5 || sum > 1.7 {
		t.Errorf("expected sum around 1.6, got %f", sum)
	}
}

func TestSetLowStockProducts(t *testing.T) {
	reg := prometheus.NewRegistry()

	lowStockProducts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_low_stock_products",
		Help: "Test gauge",
	})

	reg.MustRegister(lowStockProducts)

	metrics := &RetailMetrics{
		lowStockProducts: lowStockProducts,
	}

	metrics.SetLowStockProducts(4)

	gaugeMetric := &dto.Metric{}
	if err := lowStockProducts.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}

	if gaugeMetric.Gauge.GetValue() != 4.0 {
		t.Errorf("expected gauge value 4.0, got %f", gaugeMetric.Gauge.GetValue())
	}
}
