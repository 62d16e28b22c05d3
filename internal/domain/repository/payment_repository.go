package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia del libro de pagos.
// Los asientos nunca se borran: anular un pago es UpdateVoid, no Delete.
type PaymentRepository interface {
	Create(entry *entity.PaymentEntry) error
	GetByID(id string) (*entity.PaymentEntry, error)
	// GetByIDForUpdate bloquea la fila del pago dentro de la transacción actual.
	GetByIDForUpdate(id string) (*entity.PaymentEntry, error)
	ListByInvoice(invoiceID string) ([]*entity.PaymentEntry, error)
	// SumAppliedByInvoice suma los asientos APPLIED de una factura leyendo el
	// libro directamente; es la fuente de verdad para recalcular el estado.
	SumAppliedByInvoice(invoiceID string) (decimal.Decimal, error)
	// UpdateVoid persiste el paso a VOIDED con sus metadatos (quién, cuándo, por qué).
	UpdateVoid(entry *entity.PaymentEntry) error
}
