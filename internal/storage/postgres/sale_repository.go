package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minimarket/internal/domain"
)

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository создаёт PostgreSQL-реализацию SaleRepository.
func NewSaleRepository(store *Store) domain.SaleRepository {
	return &saleRepository{db: store.DB()}
}

func (r *saleRepository) Create(ctx context.Context, sale domain.Sale) error {
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
		INSERT INTO sales (
			id, customer_name, customer_email, customer_phone, payment_method, notes, total_minor, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		sale.ID, sale.Customer.Name, sale.Customer.Email, sale.Customer.Phone,
		string(sale.PaymentMethod), sale.Notes, sale.TotalMinor, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	for i, line := range sale.Lines {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO sale_lines (
				sale_id, position, product_id, name, qty, price_minor
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			sale.ID, i, line.ProductID, line.Name, line.Qty, line.PriceMinor,
		); err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create sale: %w", err)
	}

	return nil
}

func (r *saleRepository) Get(ctx context.Context, id string) (domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		sale   domain.Sale
		method string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_email, customer_phone, payment_method, notes, total_minor, created_at
		FROM sales
		WHERE id = $1
	`, id).Scan(
		&sale.ID, &sale.Customer.Name, &sale.Customer.Email, &sale.Customer.Phone,
		&method, &sale.Notes, &sale.TotalMinor, &sale.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Sale{}, domain.ErrSaleNotFound
		}
		return domain.Sale{}, fmt.Errorf("select sale: %w", err)
	}
	sale.PaymentMethod = domain.PaymentMethod(method)

	lines, err := r.loadLines(ctx, sale.ID)
	if err != nil {
		return domain.Sale{}, err
	}
	sale.Lines = lines

	return sale, nil
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, customer_email, customer_phone, payment_method, notes, total_minor, created_at
		FROM sales
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		var (
			sale   domain.Sale
			method string
		)
		if err := rows.Scan(
			&sale.ID, &sale.Customer.Name, &sale.Customer.Email, &sale.Customer.Phone,
			&method, &sale.Notes, &sale.TotalMinor, &sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		sale.PaymentMethod = domain.PaymentMethod(method)

		lines, err := r.loadLines(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Lines = lines
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale rows: %w", err)
	}

	return sales, nil
}

// UpdateMeta обновляет только метаданные продажи; строки не затрагиваются.
func (r *saleRepository) UpdateMeta(ctx context.Context, id string, upd domain.SaleUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if upd.Customer != nil {
		current.Customer = *upd.Customer
	}
	if upd.PaymentMethod != nil {
		current.PaymentMethod = *upd.PaymentMethod
	}
	if upd.Notes != nil {
		current.Notes = *upd.Notes
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE sales
		SET customer_name = $1,
		    customer_email = $2,
		    customer_phone = $3,
		    payment_method = $4,
		    notes = $5
		WHERE id = $6
	`,
		current.Customer.Name, current.Customer.Email, current.Customer.Phone,
		string(current.PaymentMethod), current.Notes, id,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (r *saleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (r *saleRepository) loadLines(ctx context.Context, saleID string) ([]domain.SaleLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, qty, price_minor
		FROM sale_lines
		WHERE sale_id = $1
		ORDER BY position ASC
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("load sale lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.SaleLine, 0)
	for rows.Next() {
		var line domain.SaleLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Qty, &line.PriceMinor); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale lines: %w", err)
	}

	return lines, nil
}

var _ domain.SaleRepository = (*saleRepository)(nil)
