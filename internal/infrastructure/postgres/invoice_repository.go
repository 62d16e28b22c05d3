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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, company_id, customer_id, number, issue_date, due_date,
	subtotal, discount, taxable_base, charges_total, withholdings_total, total,
	amount_paid, outstanding, payment_status, payment_method, paid_at,
	annulled_by, annulled_at, annul_reason,
	submission_status, submission_ref, submission_response,
	created_at, updated_at`

// scanInvoice vuelca una fila de invoices al agregado.
func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var paymentMethod, annulledBy, annulReason, submissionRef, submissionResponse *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.IssueDate, &inv.DueDate,
		&inv.Subtotal, &inv.Discount, &inv.TaxableBase, &inv.ChargesTotal, &inv.WithholdingsTotal, &inv.Total,
		&inv.AmountPaid, &inv.Outstanding, &inv.PaymentStatus, &paymentMethod, &inv.PaidAt,
		&annulledBy, &inv.AnnulledAt, &annulReason,
		&inv.SubmissionStatus, &submissionRef, &submissionResponse,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.PaymentMethod = derefStr(paymentMethod)
	inv.AnnulledBy = derefStr(annulledBy)
	inv.AnnulReason = derefStr(annulReason)
	inv.SubmissionRef = derefStr(submissionRef)
	inv.SubmissionResponse = derefStr(submissionResponse)
	return &inv, nil
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.Number, invoice.IssueDate, invoice.DueDate,
		invoice.Subtotal, invoice.Discount, invoice.TaxableBase, invoice.ChargesTotal, invoice.WithholdingsTotal, invoice.Total,
		invoice.AmountPaid, invoice.Outstanding, invoice.PaymentStatus, nullIfEmpty(invoice.PaymentMethod), invoice.PaidAt,
		nullIfEmpty(invoice.AnnulledBy), invoice.AnnulledAt, nullIfEmpty(invoice.AnnulReason),
		invoice.SubmissionStatus, nullIfEmpty(invoice.SubmissionRef), nullIfEmpty(invoice.SubmissionResponse),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de tributo congelada. Solo se llama en la
// emisión: no existe UPDATE ni DELETE para estas filas.
func (r *InvoiceRepo) CreateLine(line *entity.AppliedTaxLine) error {
	query := `
		INSERT INTO applied_tax_lines (id, invoice_id, tax_code, tax_name, kind, rate, base, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.TaxCode, line.TaxName, line.Kind,
		line.Rate, line.Base, line.Amount, line.Position,
	)
	if err != nil {
		return fmt.Errorf("insert applied tax line: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate bloquea la fila de la factura hasta el fin de la
// transacción. Fuera de una tx el FOR UPDATE no aporta nada: usar solo
// dentro de TxRunner.RunBilling.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

// GetByCompanyAndNumber obtiene una factura por empresa y número.
func (r *InvoiceRepo) GetByCompanyAndNumber(companyID, number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND number = $2`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, companyID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by number: %w", err)
	}
	return inv, nil
}

// GetLinesByInvoiceID obtiene las líneas de tributo en su orden de aplicación.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.AppliedTaxLine, error) {
	query := `
		SELECT id, invoice_id, tax_code, tax_name, kind, rate, base, amount, position
		FROM applied_tax_lines WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list applied tax lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.AppliedTaxLine
	for rows.Next() {
		var l entity.AppliedTaxLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.TaxCode, &l.TaxName, &l.Kind, &l.Rate, &l.Base, &l.Amount, &l.Position); err != nil {
			return nil, fmt.Errorf("scan applied tax line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateSettlement persiste los campos de cobro y anulación. Los montos y
// líneas de la emisión nunca se tocan.
func (r *InvoiceRepo) UpdateSettlement(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET amount_paid    = $2,
		    outstanding    = $3,
		    payment_status = $4,
		    paid_at        = $5,
		    annulled_by    = $6,
		    annulled_at    = $7,
		    annul_reason   = $8,
		    updated_at     = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.AmountPaid, invoice.Outstanding, invoice.PaymentStatus, invoice.PaidAt,
		nullIfEmpty(invoice.AnnulledBy), invoice.AnnulledAt, nullIfEmpty(invoice.AnnulReason),
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice settlement: %w", err)
	}
	return nil
}

// UpdateSubmission persiste los campos del colaborador de facturación electrónica.
func (r *InvoiceRepo) UpdateSubmission(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET submission_status   = $2,
		    submission_ref      = COALESCE($3, submission_ref),
		    submission_response = COALESCE($4, submission_response),
		    updated_at          = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.SubmissionStatus,
		nullIfEmpty(invoice.SubmissionRef), nullIfEmpty(invoice.SubmissionResponse),
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice submission: %w", err)
	}
	return nil
}

// ListUnsettledByCompany lista facturas con saldo para el informe de cartera.
func (r *InvoiceRepo) ListUnsettledByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND payment_status IN ('PENDING', 'PARTIAL', 'OVERDUE')
		ORDER BY due_date, number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list unsettled invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
