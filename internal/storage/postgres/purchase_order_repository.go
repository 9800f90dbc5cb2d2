package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minimarket/internal/domain"
)

type purchaseOrderRepository struct {
	db *sql.DB
}

// NewPurchaseOrderRepository создаёт PostgreSQL-реализацию PurchaseOrderRepository.
func NewPurchaseOrderRepository(store *Store) domain.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: store.DB()}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order domain.PurchaseOrder) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO purchase_orders (
			id, supplier_id, status, total_minor, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		order.ID, order.SupplierID, string(order.Status), order.TotalMinor,
		order.Version, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	for i, line := range order.Lines {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (
				order_id, position, product_id, name, qty, price_minor, is_new
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			order.ID, i, line.ProductID, line.Name, line.Qty, line.PriceMinor, line.IsNew,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create purchase order: %w", err)
	}

	return nil
}

func (r *purchaseOrderRepository) Get(ctx context.Context, id string) (domain.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		order  domain.PurchaseOrder
		status string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, status, total_minor, version, created_at, updated_at
		FROM purchase_orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.SupplierID, &status, &order.TotalMinor,
		&order.Version, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PurchaseOrder{}, domain.ErrOrderNotFound
		}
		return domain.PurchaseOrder{}, fmt.Errorf("select purchase order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return domain.PurchaseOrder{}, err
	}
	order.Lines = lines

	return order, nil
}

func (r *purchaseOrderRepository) List(ctx context.Context) ([]domain.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_id, status, total_minor, version, created_at, updated_at
		FROM purchase_orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.PurchaseOrder, 0)
	for rows.Next() {
		var (
			order  domain.PurchaseOrder
			status string
		)
		if err := rows.Scan(
			&order.ID, &order.SupplierID, &status, &order.TotalMinor,
			&order.Version, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)

		lines, err := r.loadLines(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Lines = lines
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase order rows: %w", err)
	}

	return orders, nil
}

// Save применяет изменения с optimistic locking: строка обновляется только
// при совпадении версии, иначе возвращается конфликт.
func (r *purchaseOrderRepository) Save(ctx context.Context, order domain.PurchaseOrder) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE purchase_orders
		SET status = $1,
		    total_minor = $2,
		    version = version + 1,
		    updated_at = $3
		WHERE id = $4
		  AND version = $5
	`,
		string(order.Status), order.TotalMinor, order.UpdatedAt, order.ID, order.Version,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		exists, err := r.orderExists(ctx, order.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrOrderNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *purchaseOrderRepository) loadLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, qty, price_minor, is_new
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Qty, &line.PriceMinor, &line.IsNew); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, nil
}

func (r *purchaseOrderRepository) orderExists(ctx context.Context, id string) (bool, error) {
	var found string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM purchase_orders WHERE id = $1`, id).Scan(&found)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check purchase order exists: %w", err)
}

var _ domain.PurchaseOrderRepository = (*purchaseOrderRepository)(nil)
