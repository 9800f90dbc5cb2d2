package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"minimarket/internal/domain"
)

const (
	productCacheKeyPrefix = "minimarket:product:"
	productCacheTTL       = 30 * time.Second
)

// Service реализует CatalogService поверх репозитория каталога.
// Атомарность "проверить и списать" обеспечивает репозиторий; сервис лишь
// транслирует вызовы, ведёт опциональный кэш чтения и журналирует отказы.
type Service struct {
	products domain.ProductRepository
	cache    *redis.Client // опциональный кэш чтения
	logger   *log.Entry
}

// NewService создаёт каталог поверх репозитория. Кэш может быть nil.
func NewService(products domain.ProductRepository, cache *redis.Client, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{products: products, cache: cache, logger: logger}
}

// GetProduct возвращает товар, при включённом кэше — через read-through.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, productCacheKeyPrefix+id).Bytes(); err == nil {
			var product domain.Product
			if err := json.Unmarshal(cached, &product); err == nil {
				return product, nil
			}
			// Повреждённая запись не должна ломать чтение из репозитория.
			s.cache.Del(ctx, productCacheKeyPrefix+id)
		}
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	s.cacheProduct(ctx, product)
	return product, nil
}

// AdjustStock атомарно изменяет остаток. Отказ по остаткам возвращается как
// StockError без каких-либо частичных изменений.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int32) error {
	product, err := s.products.AdjustStock(ctx, id, delta)
	if err != nil {
		if domain.IsStock(err) {
			s.logger.WithFields(log.Fields{
				"product_id": id,
				"delta":      delta,
			}).Warn("stock adjustment rejected")
		}
		return err
	}

	s.cacheProduct(ctx, product)
	if product.LowStock() {
		s.logger.WithFields(log.Fields{
			"product_id":    product.ID,
			"stock_on_hand": product.StockOnHand,
			"stock_minimum": product.StockMinimum,
		}).Warn("product below replenishment threshold")
	}
	return nil
}

// CreateProduct регистрирует товар в каталоге.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.products.Create(ctx, product); err != nil {
		return domain.Product{}, err
	}
	s.cacheProduct(ctx, product)
	return product, nil
}

// ListProducts возвращает весь каталог.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ListLowStock возвращает товары, нуждающиеся в пополнении.
func (s *Service) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListLowStock(ctx)
}

func (s *Service) cacheProduct(ctx context.Context, product domain.Product) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, productCacheKeyPrefix+product.ID, data, productCacheTTL).Err(); err != nil {
		s.logger.WithError(err).WithField("product_id", product.ID).Debug("product cache write failed")
	}
}

var _ domain.CatalogService = (*Service)(nil)
