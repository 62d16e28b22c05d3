package dto

import "github.com/shopspring/decimal"

// CreateTaxDefinitionRequest body para POST /api/taxes.
type CreateTaxDefinitionRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`  // CHARGE | WITHHOLDING
	Rate             decimal.Decimal `json:"rate"`  // Porcentaje (19 = 19%)
	Basis            string          `json:"basis"` // SUBTOTAL | TOTAL | TAXABLE_BASE
	Scope            string          `json:"scope,omitempty"`
	ApplicationOrder int             `json:"application_order"`
}

// UpdateTaxDefinitionRequest body para PUT /api/taxes/:id.
// El código es inmutable: las líneas históricas lo referencian por valor.
type UpdateTaxDefinitionRequest struct {
	Name             string           `json:"name,omitempty"`
	Rate             *decimal.Decimal `json:"rate,omitempty"`
	Basis            string           `json:"basis,omitempty"`
	Scope            string           `json:"scope,omitempty"`
	ApplicationOrder *int             `json:"application_order,omitempty"`
	Active           *bool            `json:"active,omitempty"`
}

// TaxDefinitionResponse definición del catálogo en respuestas.
type TaxDefinitionResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	Rate             decimal.Decimal `json:"rate"`
	Basis            string          `json:"basis"`
	Scope            string          `json:"scope"`
	ApplicationOrder int             `json:"application_order"`
	Active           bool            `json:"active"`
}

// SetTaxOverrideRequest body para PUT /api/customers/:id/tax-overrides.
// Rate nulo significa "usar la tarifa del catálogo".
type SetTaxOverrideRequest struct {
	TaxDefinitionID string           `json:"tax_definition_id"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

// TaxOverrideResponse override de tarifa en respuestas.
type TaxOverrideResponse struct {
	ID              string           `json:"id"`
	CustomerID      string           `json:"customer_id"`
	TaxDefinitionID string           `json:"tax_definition_id"`
	TaxCode         string           `json:"tax_code,omitempty"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	Active          bool             `json:"active"`
}
