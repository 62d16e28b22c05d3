package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del libro de pagos y del ciclo de vida de la factura.
// Todos son variantes de conflicto: el estado no cambia y el caller debe resolver.
var (
	ErrOverpayment     = errors.New("el pago excede el saldo pendiente de la factura")
	ErrAlreadyVoided   = errors.New("el pago ya fue anulado")
	ErrInvoiceAnnulled = errors.New("la factura está anulada")
	ErrPaymentsApplied = errors.New("la factura tiene pagos aplicados; anule los pagos primero")
)

// ErrLedgerInconsistent indica que el libro de pagos y la factura no cuadran
// (ej.: un pago referencia una factura inexistente). No se repara en caliente:
// se propaga y la transacción hace rollback.
var ErrLedgerInconsistent = errors.New("libro de pagos inconsistente con la factura")
