package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"minimarket/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, description, price_minor, stock_on_hand, stock_minimum, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		product.ID, product.Name, product.Description, product.PriceMinor,
		product.StockOnHand, product.StockMinimum, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price_minor, stock_on_hand, stock_minimum, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.PriceMinor,
		&product.StockOnHand, &product.StockMinimum, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `
		SELECT id, name, description, price_minor, stock_on_hand, stock_minimum, created_at, updated_at
		FROM products
		ORDER BY name ASC, id ASC
	`)
}

func (r *productRepository) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `
		SELECT id, name, description, price_minor, stock_on_hand, stock_minimum, created_at, updated_at
		FROM products
		WHERE stock_on_hand <= stock_minimum
		ORDER BY name ASC, id ASC
	`)
}

// AdjustStock выполняет атомарную проверку и изменение остатка одним
// условным UPDATE: уход в минус невозможен даже при конкурирующих продажах.
func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int32) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET stock_on_hand = stock_on_hand + $2,
		    updated_at = NOW()
		WHERE id = $1
		  AND stock_on_hand + $2 >= 0
		RETURNING id, name, description, price_minor, stock_on_hand, stock_minimum, created_at, updated_at
	`, id, delta).Scan(
		&product.ID, &product.Name, &product.Description, &product.PriceMinor,
		&product.StockOnHand, &product.StockMinimum, &product.CreatedAt, &product.UpdatedAt,
	)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("adjust stock: %w", err)
	}

	// Либо товара нет, либо остатка не хватает.
	current, getErr := r.Get(ctx, id)
	if getErr != nil {
		return domain.Product{}, getErr
	}
	return domain.Product{}, &domain.StockError{
		ProductID: id,
		Requested: -delta,
		Available: current.StockOnHand,
	}
}

func (r *productRepository) list(ctx context.Context, query string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.PriceMinor,
			&product.StockOnHand, &product.StockMinimum, &product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.ProductRepository = (*productRepository)(nil)
