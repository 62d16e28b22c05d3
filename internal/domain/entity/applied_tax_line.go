package entity

import "github.com/shopspring/decimal"

// AppliedTaxLine es la fotografía histórica e inmutable de un tributo aplicado
// a una factura. Copia código, nombre, tipo y tarifa vigentes al momento de la
// emisión: ediciones posteriores del catálogo no la alteran. Se escribe una
// sola vez, en la misma transacción que la factura.
type AppliedTaxLine struct {
	ID        string
	InvoiceID string
	TaxCode   string
	TaxName   string
	Kind      string // TaxKindCharge | TaxKindWithholding
	Rate      decimal.Decimal
	Base      decimal.Decimal // Monto sobre el que se aplicó la tarifa
	Amount    decimal.Decimal
	Position  int // Orden de aplicación dentro de la factura (1..n)
}
