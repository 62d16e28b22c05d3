package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.TaxOverrideRepository = (*TaxOverrideRepo)(nil)

// TaxOverrideRepo implementación de TaxOverrideRepository (usable con pool o tx).
type TaxOverrideRepo struct {
	q Querier
}

// NewTaxOverrideRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxOverrideRepository(q Querier) *TaxOverrideRepo {
	return &TaxOverrideRepo{q: q}
}

const taxOverrideColumns = `
	id, company_id, customer_id, tax_definition_id, rate, active, created_at, updated_at`

func scanTaxOverride(row pgx.Row) (*entity.CustomerTaxOverride, error) {
	var ov entity.CustomerTaxOverride
	err := row.Scan(
		&ov.ID, &ov.CompanyID, &ov.CustomerID, &ov.TaxDefinitionID,
		&ov.Rate, &ov.Active, &ov.CreatedAt, &ov.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

// Create persiste un override. El constraint único (customer_id,
// tax_definition_id) garantiza a lo sumo uno por par.
func (r *TaxOverrideRepo) Create(ov *entity.CustomerTaxOverride) error {
	query := `
		INSERT INTO customer_tax_overrides (` + taxOverrideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ov.ID, ov.CompanyID, ov.CustomerID, ov.TaxDefinitionID,
		ov.Rate, ov.Active, ov.CreatedAt, ov.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax override: %w", err)
	}
	return nil
}

// Update actualiza tarifa y vigencia de un override.
func (r *TaxOverrideRepo) Update(ov *entity.CustomerTaxOverride) error {
	query := `
		UPDATE customer_tax_overrides
		SET rate = $2, active = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, ov.ID, ov.Rate, ov.Active, ov.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tax override: %w", err)
	}
	return nil
}

// GetByCustomerAndDefinition obtiene el override del par (cliente, definición).
func (r *TaxOverrideRepo) GetByCustomerAndDefinition(customerID, taxDefinitionID string) (*entity.CustomerTaxOverride, error) {
	query := `SELECT ` + taxOverrideColumns + `
		FROM customer_tax_overrides WHERE customer_id = $1 AND tax_definition_id = $2`
	ov, err := scanTaxOverride(r.q.QueryRow(context.Background(), query, customerID, taxDefinitionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax override: %w", err)
	}
	return ov, nil
}

// ListByCustomer lista los overrides de un cliente.
func (r *TaxOverrideRepo) ListByCustomer(customerID string) ([]*entity.CustomerTaxOverride, error) {
	query := `SELECT ` + taxOverrideColumns + ` FROM customer_tax_overrides WHERE customer_id = $1`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list tax overrides: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerTaxOverride
	for rows.Next() {
		ov, err := scanTaxOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax override: %w", err)
		}
		list = append(list, ov)
	}
	return list, rows.Err()
}
