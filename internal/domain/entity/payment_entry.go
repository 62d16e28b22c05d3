package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago. Un pago anulado no se borra: la anulación es un evento
// auditable, no un borrado.
const (
	PaymentEntryApplied = "APPLIED"
	PaymentEntryVoided  = "VOIDED"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCard     = "CARD"
	PaymentMethodCheck    = "CHECK"
	PaymentMethodOther    = "OTHER"
)

// PaymentEntry es un asiento del libro de pagos contra una factura.
// Referencia la factura por identidad (no es propiedad de ella), de modo que el
// libro puede consultarse de forma independiente.
type PaymentEntry struct {
	ID            string
	CompanyID     string
	InvoiceID     string
	CustomerID    string
	ReceiptNumber string // Único por empresa
	Amount        decimal.Decimal
	Method        string
	Reference     string // Número de transferencia, cheque, etc.
	Bank          string
	ReceivedBy    string // Usuario que registró el pago
	AppliedAt     time.Time
	Status        string // PaymentEntryApplied | PaymentEntryVoided
	VoidedBy      string
	VoidedAt      *time.Time
	VoidReason    string
	CreatedAt     time.Time
}

// ValidPaymentMethod reporta si s es un método de pago conocido.
func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCard, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}
