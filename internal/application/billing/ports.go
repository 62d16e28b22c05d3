package billing

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función con los repositorios de factura y libro
// de pagos atados a una misma transacción. Emisión (factura + líneas) y
// mutaciones del libro (pago + actualización de saldo + estado) son unidades
// atómicas: o se confirma todo o nada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
