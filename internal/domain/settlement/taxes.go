package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ComputeResult es el resultado del cálculo de tributos de una factura.
type ComputeResult struct {
	Lines             []entity.AppliedTaxLine
	ChargesTotal      decimal.Decimal
	WithholdingsTotal decimal.Decimal
	InvoiceTotal      decimal.Decimal
}

// Compute aplica el catálogo ya ordenado (ActiveTaxes) sobre la base gravable
// y produce las líneas congeladas y los totales derivados. Se ejecuta una sola
// vez por factura, al emitirla; ediciones posteriores del catálogo no la
// re-disparan.
//
// La base de cada línea depende de su definición: SUBTOTAL y TAXABLE_BASE usan
// la base gravable del caller; TOTAL usa la base gravable más los impuestos
// acumulados hasta esa línea, lo que permite que un impuesto componga sobre
// otro (ej. IVA sobre el valor con INC incluido). Como las retenciones van
// siempre al final del catálogo, ninguna base de impuesto incluye montos
// retenidos.
//
// Redondeo: mitad lejos de cero a 2 decimales (decimal.Round), la convención
// de la unidad mínima de la moneda.
//
// Un catálogo vacío produce InvoiceTotal = base gravable sin líneas; una
// tarifa 0 produce una línea con monto 0 (la auditoría registra que el tributo
// se evaluó).
func Compute(taxableBase decimal.Decimal, entries []CatalogEntry) ComputeResult {
	res := ComputeResult{
		ChargesTotal:      decimal.Zero,
		WithholdingsTotal: decimal.Zero,
	}
	for i, e := range entries {
		basis := taxableBase
		if e.Definition.Basis == entity.TaxBasisTotal {
			basis = taxableBase.Add(res.ChargesTotal)
		}
		amount := basis.Mul(e.Rate).Div(hundred).Round(2)

		res.Lines = append(res.Lines, entity.AppliedTaxLine{
			TaxCode:  e.Definition.Code,
			TaxName:  e.Definition.Name,
			Kind:     e.Definition.Kind,
			Rate:     e.Rate,
			Base:     basis,
			Amount:   amount,
			Position: i + 1,
		})

		if e.Definition.Kind == entity.TaxKindWithholding {
			res.WithholdingsTotal = res.WithholdingsTotal.Add(amount)
		} else {
			res.ChargesTotal = res.ChargesTotal.Add(amount)
		}
	}
	res.InvoiceTotal = taxableBase.Add(res.ChargesTotal).Sub(res.WithholdingsTotal).Round(2)
	return res
}
