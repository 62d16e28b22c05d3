package entity

import "time"

// Customer representa un cliente B2B de la empresa (facturación).
// Regime determina qué tributos del catálogo le aplican.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // NIT o Cédula (Colombia)
	Regime    string // TaxScopeRegimenComun | TaxScopeRegimenSimplificado
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
