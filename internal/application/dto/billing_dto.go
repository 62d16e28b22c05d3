package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name   string `json:"name"`
	TaxID  string `json:"tax_id"`
	Regime string `json:"regime"` // COMUN | SIMPLIFICADO
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Regime    string `json:"regime"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// IssueInvoiceRequest body para POST /api/invoices.
// La base gravable se deriva como Subtotal − Discount; el motor de impuestos
// corre una sola vez con ella.
type IssueInvoiceRequest struct {
	CustomerID    string          `json:"customer_id"`
	Number        string          `json:"number"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	DueDate       time.Time       `json:"due_date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// AppliedTaxLineResponse línea de tributo congelada en la respuesta.
type AppliedTaxLineResponse struct {
	ID       string          `json:"id"`
	TaxCode  string          `json:"tax_code"`
	TaxName  string          `json:"tax_name"`
	Kind     string          `json:"kind"`
	Rate     decimal.Decimal `json:"rate"`
	Base     decimal.Decimal `json:"base"`
	Amount   decimal.Decimal `json:"amount"`
	Position int             `json:"position"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID                string                   `json:"id"`
	CompanyID         string                   `json:"company_id"`
	CustomerID        string                   `json:"customer_id"`
	CustomerName      string                   `json:"customer_name,omitempty"`
	Number            string                   `json:"number"`
	IssueDate         string                   `json:"issue_date"`
	DueDate           string                   `json:"due_date"`
	Subtotal          decimal.Decimal          `json:"subtotal"`
	Discount          decimal.Decimal          `json:"discount"`
	TaxableBase       decimal.Decimal          `json:"taxable_base"`
	ChargesTotal      decimal.Decimal          `json:"charges_total"`
	WithholdingsTotal decimal.Decimal          `json:"withholdings_total"`
	Total             decimal.Decimal          `json:"total"`
	AmountPaid        decimal.Decimal          `json:"amount_paid"`
	Outstanding       decimal.Decimal          `json:"outstanding"`
	PaymentStatus     string                   `json:"payment_status"`
	DaysOverdue       int                      `json:"days_overdue"`
	SubmissionStatus  string                   `json:"submission_status"`
	SubmissionRef     string                   `json:"submission_ref,omitempty"`
	Lines             []AppliedTaxLineResponse `json:"lines"`
	Payments          []PaymentResponse        `json:"payments,omitempty"`
}

// RecordPaymentRequest body para POST /api/payments.
type RecordPaymentRequest struct {
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	ReceiptNumber string          `json:"receipt_number,omitempty"` // Opcional; si va vacío se genera
	Reference     string          `json:"reference,omitempty"`
	Bank          string          `json:"bank,omitempty"`
}

// PaymentResponse asiento del libro de pagos en respuestas.
type PaymentResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	ReceiptNumber string          `json:"receipt_number"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference,omitempty"`
	Bank          string          `json:"bank,omitempty"`
	ReceivedBy    string          `json:"received_by"`
	AppliedAt     string          `json:"applied_at"`
	Status        string          `json:"status"`
	VoidedBy      string          `json:"voided_by,omitempty"`
	VoidReason    string          `json:"void_reason,omitempty"`
}

// VoidPaymentRequest body para POST /api/payments/:id/void.
type VoidPaymentRequest struct {
	Reason string `json:"reason"`
}

// AnnulInvoiceRequest body para POST /api/invoices/:id/annul.
type AnnulInvoiceRequest struct {
	Reason string `json:"reason"`
}

// InvoiceStateResponse respuesta ligera tras aplicar/anular pagos o refrescar
// el estado de una factura.
type InvoiceStateResponse struct {
	ID            string          `json:"id"`
	PaymentStatus string          `json:"payment_status"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	DaysOverdue   int             `json:"days_overdue"`
}

// SubmissionStatusUpdate body para PUT /api/invoices/:id/submission.
// Lo envía el colaborador externo de facturación electrónica; el motor no
// interpreta Response, solo lo guarda.
type SubmissionStatusUpdate struct {
	Status   string `json:"status"` // PENDING | SENT | APPROVED | REJECTED
	Ref      string `json:"ref,omitempty"`
	Response string `json:"response,omitempty"`
}

// AgingRowResponse una factura con saldo en el informe de cartera.
type AgingRowResponse struct {
	InvoiceID     string          `json:"invoice_id"`
	Number        string          `json:"number"`
	CustomerID    string          `json:"customer_id"`
	DueDate       string          `json:"due_date"`
	Total         decimal.Decimal `json:"total"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	PaymentStatus string          `json:"payment_status"`
	DaysOverdue   int             `json:"days_overdue"`
}
