package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de la factura. PENDING, PARTIAL y OVERDUE son transitorios;
// PAID y ANNULLED son terminales. El estado siempre se recalcula desde el
// libro de pagos, nunca se parchea incrementalmente.
const (
	PaymentStatusPending  = "PENDING"  // Sin pagos, dentro del plazo
	PaymentStatusPartial  = "PARTIAL"  // Con pagos, saldo pendiente
	PaymentStatusPaid     = "PAID"     // Saldo en cero
	PaymentStatusOverdue  = "OVERDUE"  // Sin pagos suficientes y vencida
	PaymentStatusAnnulled = "ANNULLED" // Anulada explícitamente (sin pagos aplicados)
)

// Estados de envío al colaborador de facturación electrónica (DIAN).
// El motor no los deriva: solo acepta la actualización externa.
const (
	SubmissionStatusPending  = "PENDING"
	SubmissionStatusSent     = "SENT"
	SubmissionStatusApproved = "APPROVED"
	SubmissionStatusRejected = "REJECTED"
)

// Invoice representa la factura B2B con sus totales y estado de cobro.
// Los montos monetarios usan 2 decimales (convención de moneda colombiana).
// Invariantes: Outstanding = Total − AmountPaid ≥ 0 mientras no esté anulada;
// Total = TaxableBase + impuestos − retenciones.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string
	Number     string // Único por empresa
	IssueDate  time.Time
	DueDate    time.Time

	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	TaxableBase       decimal.Decimal // Subtotal − Discount
	ChargesTotal      decimal.Decimal
	WithholdingsTotal decimal.Decimal
	Total             decimal.Decimal

	AmountPaid    decimal.Decimal
	Outstanding   decimal.Decimal
	PaymentStatus string
	PaymentMethod string
	PaidAt        *time.Time

	AnnulledBy  string
	AnnulledAt  *time.Time
	AnnulReason string

	SubmissionStatus   string
	SubmissionRef      string // Referencia opaca devuelta por el colaborador externo
	SubmissionResponse string // Payload de respuesta sin interpretar

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidSubmissionStatus reporta si s es un estado de envío conocido.
func ValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusSent, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}
