package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
// El libro es append-only: no hay DELETE, anular es UpdateVoid.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, company_id, invoice_id, customer_id, receipt_number, amount, method,
	reference, bank, received_by, applied_at, status,
	voided_by, voided_at, void_reason, created_at`

func scanPayment(row pgx.Row) (*entity.PaymentEntry, error) {
	var p entity.PaymentEntry
	var reference, bank, voidedBy, voidReason *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.InvoiceID, &p.CustomerID, &p.ReceiptNumber, &p.Amount, &p.Method,
		&reference, &bank, &p.ReceivedBy, &p.AppliedAt, &p.Status,
		&voidedBy, &p.VoidedAt, &voidReason, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Reference = derefStr(reference)
	p.Bank = derefStr(bank)
	p.VoidedBy = derefStr(voidedBy)
	p.VoidReason = derefStr(voidReason)
	return &p, nil
}

// Create persiste un asiento del libro de pagos.
func (r *PaymentRepo) Create(entry *entity.PaymentEntry) error {
	query := `
		INSERT INTO payment_entries (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CompanyID, entry.InvoiceID, entry.CustomerID, entry.ReceiptNumber, entry.Amount, entry.Method,
		nullIfEmpty(entry.Reference), nullIfEmpty(entry.Bank), entry.ReceivedBy, entry.AppliedAt, entry.Status,
		nullIfEmpty(entry.VoidedBy), entry.VoidedAt, nullIfEmpty(entry.VoidReason), entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_entries WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment entry: %w", err)
	}
	return p, nil
}

// GetByIDForUpdate bloquea la fila del asiento hasta el fin de la transacción.
func (r *PaymentRepo) GetByIDForUpdate(id string) (*entity.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_entries WHERE id = $1 FOR UPDATE`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment entry for update: %w", err)
	}
	return p, nil
}

// ListByInvoice lista todos los asientos de una factura, aplicados y anulados.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_entries WHERE invoice_id = $1 ORDER BY applied_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payment entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentEntry
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment entry: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SumAppliedByInvoice suma los asientos APPLIED de la factura. COALESCE
// devuelve cero cuando no hay asientos.
func (r *PaymentRepo) SumAppliedByInvoice(invoiceID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_entries WHERE invoice_id = $1 AND status = 'APPLIED'`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum applied payments: %w", err)
	}
	return sum, nil
}

// UpdateVoid persiste el paso a VOIDED con su auditoría.
func (r *PaymentRepo) UpdateVoid(entry *entity.PaymentEntry) error {
	query := `
		UPDATE payment_entries
		SET status = $2, voided_by = $3, voided_at = $4, void_reason = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Status, nullIfEmpty(entry.VoidedBy), entry.VoidedAt, nullIfEmpty(entry.VoidReason),
	)
	if err != nil {
		return fmt.Errorf("void payment entry: %w", err)
	}
	return nil
}
