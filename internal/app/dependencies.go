package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"minimarket/internal/domain"
	"minimarket/internal/messaging/kafka"
	"minimarket/internal/service/catalog"
	"minimarket/internal/service/purchase"
	"minimarket/internal/service/sales"
	"minimarket/internal/storage/memory"
	"minimarket/internal/storage/postgres"
)

// Dependencies собирает сервисный слой и внешние подключения приложения.
type Dependencies struct {
	Catalog           *catalog.Service
	SalesLifecycle    *sales.Lifecycle
	SalesRead         domain.SalesService
	PurchaseLifecycle *purchase.Lifecycle
	Orders            *purchase.Service
	Suppliers         *purchase.SupplierRegistry

	Store    *postgres.Store // nil при in-memory хранилище
	Redis    *redis.Client
	Producer *kafka.Producer

	logger *log.Entry
}

// NewDependencies строит граф зависимостей согласно конфигурации.
// Kafka и Redis опциональны: при недоступности брокера приложение
// продолжает работу без публикации событий.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	deps := &Dependencies{logger: logger}

	var (
		products  domain.ProductRepository
		saleRepo  domain.SaleRepository
		orderRepo domain.PurchaseOrderRepository
		suppliers domain.SupplierRepository
		history   domain.StatusHistoryRepository
	)

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("подключение к postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				store.Close()
				return nil, fmt.Errorf("применение миграций: %w", err)
			}
		}
		deps.Store = store
		products = postgres.NewProductRepository(store)
		saleRepo = postgres.NewSaleRepository(store)
		orderRepo = postgres.NewPurchaseOrderRepository(store)
		suppliers = postgres.NewSupplierRepository(store)
		history = postgres.NewStatusHistoryRepository(store)
		logger.Info("Хранилище: PostgreSQL")
	case StorageDriverMemory, "":
		products = memory.NewProductRepository()
		saleRepo = memory.NewSaleRepository()
		orderRepo = memory.NewPurchaseOrderRepository()
		suppliers = memory.NewSupplierRepository()
		history = memory.NewStatusHistoryRepository()
		logger.Info("Хранилище: in-memory")
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %s", cfg.StorageDriver)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("Redis недоступен, кэш каталога отключён")
			client.Close()
		} else {
			deps.Redis = client
			logger.WithField("addr", cfg.RedisAddr).Info("Кэш каталога: Redis")
		}
	}

	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("Kafka недоступна, события публиковаться не будут")
		} else {
			deps.Producer = producer
			logger.WithField("brokers", brokers).Info("Kafka producer подключен")
		}
	}

	deps.Catalog = catalog.NewService(products, deps.Redis, logger)
	deps.SalesRead = sales.NewService(saleRepo)
	deps.Orders = purchase.NewService(orderRepo, history)
	deps.Suppliers = purchase.NewSupplierRegistry(suppliers)

	if deps.Producer != nil {
		deps.SalesLifecycle = sales.NewLifecycleWithKafka(deps.Catalog, deps.SalesRead, deps.Producer, logger)
		deps.PurchaseLifecycle = purchase.NewLifecycleWithKafka(deps.Catalog, deps.Orders, suppliers, logger, deps.Producer)
	} else {
		deps.SalesLifecycle = sales.NewLifecycle(deps.Catalog, deps.SalesRead, logger)
		deps.PurchaseLifecycle = purchase.NewLifecycle(deps.Catalog, deps.Orders, suppliers, logger)
	}

	return deps, nil
}

// Close освобождает внешние подключения.
func (d *Dependencies) Close() {
	if d.Producer != nil {
		if err := d.Producer.Close(); err != nil {
			d.logger.WithError(err).Error("Ошибка закрытия kafka producer")
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.logger.WithError(err).Error("Ошибка закрытия redis-клиента")
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.logger.WithError(err).Error("Ошибка закрытия подключения к postgres")
		}
	}
}
