package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de tributo: los impuestos suman al total, las retenciones restan.
const (
	TaxKindCharge      = "CHARGE"      // Impuesto (IVA, INC)
	TaxKindWithholding = "WITHHOLDING" // Retención (ReteFuente, ReteIVA, ReteICA)
)

// Base de cálculo de la tarifa.
const (
	TaxBasisSubtotal    = "SUBTOTAL"     // Base gravable entregada por el caller
	TaxBasisTotal       = "TOTAL"        // Base gravable + impuestos acumulados hasta esta línea
	TaxBasisTaxableBase = "TAXABLE_BASE" // Base gravable sin modificar
)

// Ámbito de aplicación según el régimen tributario del cliente.
const (
	TaxScopeAll               = "ALL"
	TaxScopeRegimenComun      = "COMUN"
	TaxScopeRegimenSimplificado = "SIMPLIFICADO"
)

// TaxDefinition es una definición del catálogo de impuestos y retenciones.
// La tarifa es un porcentaje (19 = 19%). ApplicationOrder define el orden de
// aplicación dentro de su tipo; los impuestos siempre se aplican antes que las
// retenciones. Se desactiva con Active=false, nunca se borra si hay facturas
// históricas que la referencian.
type TaxDefinition struct {
	ID               string
	CompanyID        string
	Code             string // Único por empresa (ej. "IVA19")
	Name             string
	Kind             string // TaxKindCharge | TaxKindWithholding
	Rate             decimal.Decimal
	Basis            string // TaxBasisSubtotal | TaxBasisTotal | TaxBasisTaxableBase
	Scope            string // TaxScopeAll o un régimen específico
	ApplicationOrder int
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidTaxKind reporta si s es un tipo de tributo conocido.
func ValidTaxKind(s string) bool {
	return s == TaxKindCharge || s == TaxKindWithholding
}

// ValidTaxBasis reporta si s es una base de cálculo conocida.
func ValidTaxBasis(s string) bool {
	return s == TaxBasisSubtotal || s == TaxBasisTotal || s == TaxBasisTaxableBase
}

// ValidTaxScope reporta si s es un ámbito conocido.
func ValidTaxScope(s string) bool {
	return s == TaxScopeAll || s == TaxScopeRegimenComun || s == TaxScopeRegimenSimplificado
}
