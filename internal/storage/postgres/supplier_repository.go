package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minimarket/internal/domain"
)

type supplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository создаёт PostgreSQL-реализацию SupplierRepository.
func NewSupplierRepository(store *Store) domain.SupplierRepository {
	return &supplierRepository{db: store.DB()}
}

func (r *supplierRepository) Create(ctx context.Context, supplier domain.Supplier) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, company_name, contact_name, email, phone, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		supplier.ID, supplier.CompanyName, supplier.ContactName,
		supplier.Email, supplier.Phone, supplier.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *supplierRepository) Get(ctx context.Context, id string) (domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var supplier domain.Supplier
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_name, contact_name, email, phone, created_at
		FROM suppliers
		WHERE id = $1
	`, id).Scan(
		&supplier.ID, &supplier.CompanyName, &supplier.ContactName,
		&supplier.Email, &supplier.Phone, &supplier.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Supplier{}, domain.ErrSupplierNotFound
		}
		return domain.Supplier{}, fmt.Errorf("select supplier: %w", err)
	}
	return supplier, nil
}

func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_name, contact_name, email, phone, created_at
		FROM suppliers
		ORDER BY company_name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0)
	for rows.Next() {
		var supplier domain.Supplier
		if err := rows.Scan(
			&supplier.ID, &supplier.CompanyName, &supplier.ContactName,
			&supplier.Email, &supplier.Phone, &supplier.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier row: %w", err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supplier rows: %w", err)
	}

	return suppliers, nil
}

var _ domain.SupplierRepository = (*supplierRepository)(nil)
