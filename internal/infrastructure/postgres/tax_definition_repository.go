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

var _ repository.TaxDefinitionRepository = (*TaxDefinitionRepo)(nil)

// TaxDefinitionRepo implementación de TaxDefinitionRepository (usable con pool o tx).
type TaxDefinitionRepo struct {
	q Querier
}

// NewTaxDefinitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxDefinitionRepository(q Querier) *TaxDefinitionRepo {
	return &TaxDefinitionRepo{q: q}
}

const taxDefinitionColumns = `
	id, company_id, code, name, kind, rate, basis, scope, application_order, active, created_at, updated_at`

func scanTaxDefinition(row pgx.Row) (*entity.TaxDefinition, error) {
	var d entity.TaxDefinition
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.Code, &d.Name, &d.Kind, &d.Rate, &d.Basis, &d.Scope,
		&d.ApplicationOrder, &d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste una definición del catálogo.
func (r *TaxDefinitionRepo) Create(def *entity.TaxDefinition) error {
	query := `
		INSERT INTO tax_definitions (` + taxDefinitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		def.ID, def.CompanyID, def.Code, def.Name, def.Kind, def.Rate, def.Basis, def.Scope,
		def.ApplicationOrder, def.Active, def.CreatedAt, def.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax definition: %w", err)
	}
	return nil
}

// Update actualiza una definición. El código nunca cambia.
func (r *TaxDefinitionRepo) Update(def *entity.TaxDefinition) error {
	query := `
		UPDATE tax_definitions
		SET name = $2, kind = $3, rate = $4, basis = $5, scope = $6,
		    application_order = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		def.ID, def.Name, def.Kind, def.Rate, def.Basis, def.Scope,
		def.ApplicationOrder, def.Active, def.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tax definition: %w", err)
	}
	return nil
}

// GetByID obtiene una definición por ID.
func (r *TaxDefinitionRepo) GetByID(id string) (*entity.TaxDefinition, error) {
	query := `SELECT ` + taxDefinitionColumns + ` FROM tax_definitions WHERE id = $1`
	d, err := scanTaxDefinition(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax definition: %w", err)
	}
	return d, nil
}

// GetByCompanyAndCode obtiene una definición por empresa y código.
func (r *TaxDefinitionRepo) GetByCompanyAndCode(companyID, code string) (*entity.TaxDefinition, error) {
	query := `SELECT ` + taxDefinitionColumns + ` FROM tax_definitions WHERE company_id = $1 AND code = $2`
	d, err := scanTaxDefinition(r.q.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax definition by code: %w", err)
	}
	return d, nil
}

// ListByCompany lista el catálogo de la empresa en orden de aplicación.
func (r *TaxDefinitionRepo) ListByCompany(companyID string, onlyActive bool) ([]*entity.TaxDefinition, error) {
	query := `SELECT ` + taxDefinitionColumns + ` FROM tax_definitions WHERE company_id = $1`
	if onlyActive {
		query += ` AND active`
	}
	query += ` ORDER BY kind, application_order, code`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list tax definitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.TaxDefinition
	for rows.Next() {
		d, err := scanTaxDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax definition: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
