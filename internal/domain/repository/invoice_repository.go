package repository

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus
// líneas de tributo congeladas. Las líneas se insertan una sola vez (emisión)
// y no existe operación para modificarlas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.AppliedTaxLine) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate bloquea la fila de la factura (SELECT ... FOR UPDATE)
	// dentro de la transacción actual: serializa apply/void concurrentes sobre
	// la misma factura dejando facturas distintas en paralelo.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	GetByCompanyAndNumber(companyID, number string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.AppliedTaxLine, error)
	// UpdateSettlement persiste los campos de cobro: amount_paid, outstanding,
	// payment_status, paid_at y los metadatos de anulación.
	UpdateSettlement(invoice *entity.Invoice) error
	// UpdateSubmission persiste solo los campos del colaborador de facturación
	// electrónica: submission_status, submission_ref, submission_response.
	UpdateSubmission(invoice *entity.Invoice) error
	// ListUnsettledByCompany devuelve facturas con saldo (PENDING, PARTIAL u
	// OVERDUE) para el informe de cartera.
	ListUnsettledByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
}
