package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerTaxOverride asocia un cliente con una TaxDefinition y una tarifa
// especial opcional. Rate nil significa "usar la tarifa del catálogo".
// Existe a lo sumo un override por par (cliente, definición); el constraint
// único lo garantiza la base de datos. Editarlo no afecta facturas ya emitidas.
type CustomerTaxOverride struct {
	ID              string
	CompanyID       string
	CustomerID      string
	TaxDefinitionID string
	Rate            *decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
